package catalog

import (
	"net/url"
	"strings"
)

const (
	NoDateLabel        = "Sin fecha"
	UnknownAuthorLabel = "Autor desconocido"

	PlaceholderCoverURL = "https://placehold.co/200x280/e0e0e0/777777?text=Sin+Portada"
	ErrorCoverURL       = "https://placehold.co/200x280/e0e0e0/777777?text=Error"
)

// FormatDate turns a YYYY-MM-DD date into DD/MM/YYYY. Input that does not
// split into three parts is returned unchanged.
func FormatDate(s string) string {
	if s == "" {
		return NoDateLabel
	}
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return s
	}
	return parts[2] + "/" + parts[1] + "/" + parts[0]
}

// CoverURL resolves a cover image reference against base.
func CoverURL(base *url.URL, raw string) string {
	if raw == "" {
		return PlaceholderCoverURL
	}
	ref, err := url.Parse(raw)
	if err != nil {
		return ErrorCoverURL
	}
	if base == nil {
		return ref.String()
	}
	return base.ResolveReference(ref).String()
}

// TargetURL resolves an entry link against base. Relative links point into
// the published catalog site, not this server.
func TargetURL(base *url.URL, raw string) string {
	if raw == "" || base == nil {
		return raw
	}
	ref, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return base.ResolveReference(ref).String()
}

func DisplayTitle(e Entry) string {
	if e.Title != "" {
		return e.Title
	}
	return e.ID
}

func DisplayAuthor(e Entry) string {
	if e.Author != "" {
		return e.Author
	}
	return UnknownAuthorLabel
}

func CoverAlt(e Entry) string {
	return "Portada de " + e.Title
}
