package web

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"catalogweb/internal/browser"
	"catalogweb/internal/catalog"
	"catalogweb/internal/httpx"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const pageTitle = "Catálogo"

var sortOptions = []struct{ Value, Label string }{
	{catalog.SortAlpha, "A-Z"},
	{catalog.SortDate, "Fecha"},
}

// Handler serves the catalog page. Every request rebuilds the session state
// from the query string and renders through a browser.Controller.
type Handler struct {
	svc    *catalog.Service
	tmpl   *template.Template
	static fs.FS
	logger *zap.Logger
}

func NewHandler(svc *catalog.Service, logger *zap.Logger) (*Handler, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("open static assets: %w", err)
	}
	return &Handler{svc: svc, tmpl: tmpl, static: static, logger: logger}, nil
}

func parseTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"autohideMs": func(d time.Duration) int64 { return d.Milliseconds() },
		"viewHref":   viewHref,
	}
	tmpl, err := template.New("_root").Funcs(funcMap).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return tmpl, nil
}

// Register mounts the page routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(h.static))))
	mux.HandleFunc("GET /{$}", h.Index)
	mux.HandleFunc("GET /entries/view", h.ViewEntry)
}

// Index handles GET /
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	if !h.svc.Loaded() {
		h.renderLoading(w, r)
		return
	}

	ctrl := browser.NewController(h.svc, h.newRenderer(w, r))
	cmds := commandsFromQuery(r.URL.Query())

	var err error
	if len(cmds) == 0 {
		err = ctrl.Refresh()
	} else {
		err = ctrl.Dispatch(cmds...)
	}
	if err != nil {
		h.fail(w, r, err)
	}
}

// ViewEntry handles GET /entries/view?id=. The id travels in the query so
// entries published without one stay addressable.
func (h *Handler) ViewEntry(w http.ResponseWriter, r *http.Request) {
	if !h.svc.Loaded() {
		h.renderLoading(w, r)
		return
	}

	query := r.URL.Query()
	if !query.Has("id") {
		http.Error(w, "missing id", http.StatusBadRequest)
		return
	}
	state := stateFromQuery(query)
	ctrl := browser.NewController(h.svc, h.newRenderer(w, r), browser.WithState(state))

	err := ctrl.Dispatch(browser.ViewEntry{ID: query.Get("id")})
	if errors.Is(err, catalog.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.fail(w, r, err)
	}
}

func (h *Handler) newRenderer(w http.ResponseWriter, r *http.Request) *pageRenderer {
	return &pageRenderer{
		w:       w,
		r:       r,
		tmpl:    h.tmpl,
		partial: r.Header.Get("HX-Request") == "true",
	}
}

func (h *Handler) renderLoading(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("HX-Request") == "true" {
		http.Error(w, "loading", http.StatusServiceUnavailable)
		return
	}
	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, "loading", map[string]string{"Title": pageTitle}); err != nil {
		h.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("render catalog page",
		zap.Error(err),
		zap.String("path", r.URL.Path),
		zap.String("request_id", httpx.RequestIDFrom(r)),
	)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

// commandsFromQuery maps the page controls to commands. Absent parameters
// leave the default state alone.
func commandsFromQuery(q url.Values) []browser.Command {
	var cmds []browser.Command
	if q.Has("collection") && q.Get("collection") != "" {
		cmds = append(cmds, browser.SetCollectionFilter{Collection: q.Get("collection")})
	}
	if q.Has("sort") && q.Get("sort") != "" {
		cmds = append(cmds, browser.SetSortMethod{Method: q.Get("sort")})
	}
	if q.Has("q") {
		cmds = append(cmds, browser.SetSearchTerm{Term: q.Get("q")})
	}
	return cmds
}

func stateFromQuery(q url.Values) browser.State {
	s := browser.DefaultState()
	if v := q.Get("collection"); v != "" {
		s.Collection = v
	}
	if v := q.Get("sort"); v != "" {
		s.Sort = v
	}
	s.Search = q.Get("q")
	return s
}

func stateQuery(s browser.State) url.Values {
	q := url.Values{}
	q.Set("collection", s.Collection)
	q.Set("sort", s.Sort)
	if s.Search != "" {
		q.Set("q", s.Search)
	}
	return q
}

func viewHref(id string, s browser.State) string {
	q := stateQuery(s)
	q.Set("id", id)
	return "/entries/view?" + q.Encode()
}
