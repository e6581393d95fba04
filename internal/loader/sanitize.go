package loader

import (
	"strings"

	"catalogweb/internal/catalog"
)

// Schemes a browser would execute or inline instead of navigating to.
var (
	unsafeLinkSchemes  = []string{"javascript:", "vbscript:", "data:"}
	unsafeCoverSchemes = []string{"javascript:", "vbscript:"}
)

// Sanitizer trims feed entries and clears links a browser should not follow.
// Text is kept as published; templates escape it when rendering.
type Sanitizer struct{}

func NewSanitizer() *Sanitizer {
	return &Sanitizer{}
}

// Entries returns cleaned copies of in, one per input entry and in the same
// order. dropped counts the links that were cleared.
func (s *Sanitizer) Entries(in []catalog.Entry) (out []catalog.Entry, dropped int) {
	out = make([]catalog.Entry, len(in))
	for i, e := range in {
		target, ok := link(e.TargetURL, unsafeLinkSchemes)
		if !ok {
			dropped++
		}
		cover, ok := link(e.CoverImageURL, unsafeCoverSchemes)
		if !ok {
			dropped++
		}
		out[i] = catalog.Entry{
			ID:            strings.TrimSpace(e.ID),
			Title:         strings.TrimSpace(e.Title),
			Author:        strings.TrimSpace(e.Author),
			Collection:    strings.TrimSpace(e.Collection),
			TargetURL:     target,
			CoverImageURL: cover,
			PublishDate:   strings.TrimSpace(e.PublishDate),
		}
	}
	return out, dropped
}

// link returns raw trimmed, or "" and false when its scheme is listed in
// unsafe. Relative references and any other scheme pass through.
func link(raw string, unsafe []string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", true
	}
	scheme := schemeOf(raw)
	for _, s := range unsafe {
		if scheme == s {
			return "", false
		}
	}
	return raw, true
}

// schemeOf lowercases the scheme part of raw including its colon, ignoring
// the whitespace and control characters browsers skip ("java\tscript:").
// It returns "" when raw has no scheme.
func schemeOf(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		switch {
		case r <= ' ' || r == 0x7f:
			continue
		case r == ':':
			b.WriteRune(r)
			return strings.ToLower(b.String())
		case r == '/' || r == '?' || r == '#':
			return ""
		}
		b.WriteRune(r)
	}
	return ""
}
