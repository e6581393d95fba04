package catalog

import (
	"time"
)

// AllCollections is the collection filter value that matches every entry.
const AllCollections = "all"

const (
	SortAlpha = "alpha"
	SortDate  = "date"
)

// Entry is one published item of the index document.
type Entry struct {
	ID            string `json:"id" yaml:"id"`
	Title         string `json:"title,omitempty" yaml:"title"`
	Author        string `json:"author,omitempty" yaml:"author"`
	Collection    string `json:"collection,omitempty" yaml:"collection"`
	TargetURL     string `json:"targetUrl,omitempty" yaml:"targetUrl"`
	CoverImageURL string `json:"coverImageUrl,omitempty" yaml:"coverImageUrl"`
	PublishDate   string `json:"publishDate,omitempty" yaml:"publishDate"`
}

// Source tells where the entries in the store came from.
type Source string

const (
	SourceNone     Source = ""
	SourceRemote   Source = "remote"
	SourceFallback Source = "fallback"
)

// LoadReport describes the last load of the store.
type LoadReport struct {
	Source     Source
	Err        error
	Entries    int
	StartedAt  time.Time
	FinishedAt time.Time
}

// Degraded reports whether the store is serving the fallback dataset.
func (r LoadReport) Degraded() bool {
	return r.Source == SourceFallback
}
