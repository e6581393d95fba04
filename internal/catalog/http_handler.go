package catalog

import (
	"errors"
	"net/http"

	"catalogweb/internal/httpx"
)

type HTTPHandler struct {
	svc *Service
}

func NewHTTPHandler(svc *Service) *HTTPHandler {
	return &HTTPHandler{svc: svc}
}

// entryResponse is an entry plus its display fields.
type entryResponse struct {
	Entry
	DisplayTitle  string `json:"displayTitle"`
	DisplayAuthor string `json:"displayAuthor"`
	DisplayDate   string `json:"displayDate"`
	CoverURL      string `json:"coverUrl"`
}

func (h *HTTPHandler) toResponse(e Entry) entryResponse {
	return entryResponse{
		Entry:         e,
		DisplayTitle:  DisplayTitle(e),
		DisplayAuthor: DisplayAuthor(e),
		DisplayDate:   FormatDate(e.PublishDate),
		CoverURL:      h.svc.CoverURL(e),
	}
}

// Search handles GET /v1/catalog/search
// @Summary Search the catalog
// @Description Filter, search and sort the loaded catalog entries
// @Tags catalog
// @Produce json
// @Param q query string false "Search term matched against title and author"
// @Param collection query string false "Collection name or all" default(all)
// @Param sort query string false "alpha or date" default(alpha)
// @Success 200 {object} httpx.SuccessResponse
// @Failure 503 {object} httpx.ErrorResponse
// @Router /v1/catalog/search [get]
func (h *HTTPHandler) Search(w http.ResponseWriter, r *http.Request) {
	if !h.svc.Loaded() {
		httpx.JSONError(w, r, http.StatusServiceUnavailable, "LOADING", "Catalog is still loading", nil)
		return
	}

	query := r.URL.Query()
	q := ViewQuery{
		Search:     query.Get("q"),
		Collection: query.Get("collection"),
		Sort:       query.Get("sort"),
	}
	if q.Collection == "" {
		q.Collection = AllCollections
	}
	if q.Sort == "" {
		q.Sort = SortAlpha
	}

	entries := h.svc.Search(q)
	out := make([]entryResponse, len(entries))
	for i, e := range entries {
		out[i] = h.toResponse(e)
	}

	httpx.JSONSuccess(w, r, out, map[string]any{
		"total":       len(out),
		"collections": h.svc.Collections(),
		"source":      string(h.svc.Report().Source),
	})
}

// GetByID handles GET /v1/catalog/entries/{id}
// @Summary Get catalog entry by id
// @Tags catalog
// @Produce json
// @Param id path string true "Entry id"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /v1/catalog/entries/{id} [get]
func (h *HTTPHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "id is required", nil)
		return
	}

	e, err := h.svc.GetByID(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Entry not found in catalog", nil)
			return
		}
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccess(w, r, h.toResponse(e), nil)
}

// Status handles GET /v1/catalog/status
func (h *HTTPHandler) Status(w http.ResponseWriter, r *http.Request) {
	report := h.svc.Report()
	body := map[string]any{
		"loaded":  h.svc.Loaded(),
		"source":  string(report.Source),
		"entries": report.Entries,
	}
	if report.Err != nil {
		body["error"] = report.Err.Error()
	}
	if !report.FinishedAt.IsZero() {
		body["finished_at"] = report.FinishedAt
	}
	httpx.JSONSuccess(w, r, body, nil)
}
