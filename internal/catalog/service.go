package catalog

import (
	"errors"
	"net/url"

	"golang.org/x/text/language"
)

// ErrNotFound is returned when an entry is not in the store.
var ErrNotFound = errors.New("entry not found")

// Reader is the read side of the store used by the service.
type Reader interface {
	Entries() []Entry
	Get(id string) (Entry, bool)
	Report() LoadReport
	IsLoaded() bool
}

// Service answers catalog queries against the in-memory store.
type Service struct {
	store   Reader
	locale  language.Tag
	baseURL *url.URL
}

func NewService(store Reader, locale language.Tag, baseURL *url.URL) *Service {
	return &Service{store: store, locale: locale, baseURL: baseURL}
}

// Search runs the view pipeline over the stored entries.
func (s *Service) Search(q ViewQuery) []Entry {
	q.Locale = s.locale
	return ComputeView(s.store.Entries(), q)
}

func (s *Service) GetByID(id string) (Entry, error) {
	e, ok := s.store.Get(id)
	if !ok {
		return Entry{}, ErrNotFound
	}
	return e, nil
}

func (s *Service) Collections() []string {
	return Collections(s.store.Entries(), s.locale)
}

func (s *Service) Report() LoadReport {
	return s.store.Report()
}

func (s *Service) Loaded() bool {
	return s.store.IsLoaded()
}

// CoverURL resolves an entry's cover against the configured base URL.
func (s *Service) CoverURL(e Entry) string {
	return CoverURL(s.baseURL, e.CoverImageURL)
}

// TargetURL resolves an entry's link against the configured base URL.
func (s *Service) TargetURL(e Entry) string {
	return TargetURL(s.baseURL, e.TargetURL)
}

func (s *Service) Locale() language.Tag {
	return s.locale
}
