package browser

import (
	"fmt"
	"strings"

	"catalogweb/internal/catalog"
)

//go:generate mockgen -destination=mock_renderer_test.go -package=browser -self_package=catalogweb/internal/browser catalogweb/internal/browser Renderer

// Renderer draws views and follows entry links.
type Renderer interface {
	Render(v View) error
	Open(targetURL string) error
}

// Catalog is the read side the controller computes views from.
type Catalog interface {
	Search(q catalog.ViewQuery) []catalog.Entry
	GetByID(id string) (catalog.Entry, error)
	Collections() []string
	Report() catalog.LoadReport
	CoverURL(e catalog.Entry) string
	TargetURL(e catalog.Entry) string
}

// Controller owns a session's State and turns commands into renders.
type Controller struct {
	catalog   Catalog
	renderer  Renderer
	state     State
	transient *Message
}

type Option func(*Controller)

// WithState starts the controller from a previously captured state.
func WithState(s State) Option {
	return func(c *Controller) { c.state = s }
}

func NewController(cat Catalog, renderer Renderer, opts ...Option) *Controller {
	c := &Controller{
		catalog:  cat,
		renderer: renderer,
		state:    DefaultState(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) State() State {
	return c.state
}

// Dispatch applies the commands in order, then recomputes and renders once
// if any of them changed what is shown.
func (c *Controller) Dispatch(cmds ...Command) error {
	render := false
	for _, cmd := range cmds {
		switch cmd := cmd.(type) {
		case SetCollectionFilter:
			c.state.Collection = cmd.Collection
			render = true
		case SetSortMethod:
			c.state.Sort = cmd.Method
			render = true
		case SetSearchTerm:
			c.state.Search = cmd.Term
			render = true
		case ViewEntry:
			opened, err := c.viewEntry(cmd.ID)
			if err != nil {
				return err
			}
			if !opened {
				render = true
			}
		default:
			return fmt.Errorf("unsupported command %T", cmd)
		}
	}
	if !render {
		return nil
	}
	return c.Refresh()
}

func (c *Controller) viewEntry(id string) (bool, error) {
	e, err := c.catalog.GetByID(id)
	if err != nil {
		return false, fmt.Errorf("view entry %q: %w", id, err)
	}
	if e.TargetURL == "" {
		c.transient = &Message{Kind: MessageError, Text: NoTargetMessage, AutoHide: TransientMessageTTL}
		return false, nil
	}
	target := c.catalog.TargetURL(e)
	if err := c.renderer.Open(target); err != nil {
		return false, fmt.Errorf("open %s: %w", target, err)
	}
	return true, nil
}

// Refresh recomputes the view from the current state and renders it.
func (c *Controller) Refresh() error {
	v := c.View()
	c.transient = nil
	return c.renderer.Render(v)
}

// View computes what would be rendered for the current state.
func (c *Controller) View() View {
	entries := c.catalog.Search(c.state.query())

	cards := make([]Card, len(entries))
	for i, e := range entries {
		cards[i] = Card{
			ID:            e.ID,
			Title:         catalog.DisplayTitle(e),
			Author:        catalog.DisplayAuthor(e),
			Date:          catalog.FormatDate(e.PublishDate),
			CoverURL:      c.catalog.CoverURL(e),
			CoverAlt:      catalog.CoverAlt(e),
			ErrorCoverURL: catalog.ErrorCoverURL,
			TargetURL:     c.catalog.TargetURL(e),
		}
	}

	v := View{
		State:       c.state,
		Cards:       cards,
		Empty:       len(cards) == 0,
		Collections: c.catalog.Collections(),
		Status:      c.status(),
	}
	if v.Empty {
		v.EmptyMessage = EmptyMessage(c.state)
	}
	return v
}

func (c *Controller) status() *Message {
	if c.transient != nil {
		return c.transient
	}
	if c.catalog.Report().Degraded() {
		return &Message{Kind: MessageWarning, Text: LoadFailedMessage}
	}
	return nil
}

// EmptyMessage explains an empty result, quoting the search text as typed
// when a search is active.
func EmptyMessage(s State) string {
	if s.SearchActive() {
		return fmt.Sprintf(`No se encontraron resultados para "%s".`, s.Search)
	}
	return fmt.Sprintf(`No hay elementos en la colección "%s".`, s.Collection)
}

func normalizeSearch(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
