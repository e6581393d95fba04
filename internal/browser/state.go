package browser

import (
	"time"

	"catalogweb/internal/catalog"
)

const (
	LoadFailedMessage = "Error al cargar la biblioteca. Usando datos de ejemplo."
	NoTargetMessage   = "Este elemento no tiene una URL de destino."

	// TransientMessageTTL is how long transient messages stay visible.
	TransientMessageTTL = 5 * time.Second
)

// State is the user-controlled part of a browsing session.
type State struct {
	Collection string
	Sort       string
	Search     string
}

func DefaultState() State {
	return State{Collection: catalog.AllCollections, Sort: catalog.SortAlpha}
}

// SearchActive reports whether the search term filters anything.
func (s State) SearchActive() bool {
	return normalizeSearch(s.Search) != ""
}

func (s State) query() catalog.ViewQuery {
	return catalog.ViewQuery{
		Search:     s.Search,
		Collection: s.Collection,
		Sort:       s.Sort,
	}
}

type MessageKind string

const (
	MessageWarning MessageKind = "warning"
	MessageError   MessageKind = "error"
)

// Message is a dismissible status line. A zero AutoHide keeps it visible.
type Message struct {
	Kind     MessageKind
	Text     string
	AutoHide time.Duration
}

// Card is an entry prepared for display.
type Card struct {
	ID            string
	Title         string
	Author        string
	Date          string
	CoverURL      string
	CoverAlt      string
	ErrorCoverURL string
	TargetURL     string
}

// View is everything a Renderer needs to draw the catalog.
type View struct {
	State        State
	Cards        []Card
	Empty        bool
	EmptyMessage string
	Collections  []string
	Status       *Message
}
