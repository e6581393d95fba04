package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStore_ReplaceIsWholesale(t *testing.T) {
	s := NewStore()
	s.Replace([]Entry{{ID: "a"}, {ID: "b"}}, LoadReport{Source: SourceRemote})
	s.Replace([]Entry{{ID: "c"}}, LoadReport{Source: SourceFallback})

	assert.Equal(t, []Entry{{ID: "c"}}, s.Entries())
	assert.Equal(t, SourceFallback, s.Report().Source)
	assert.Equal(t, 1, s.Report().Entries)
}

func TestStore_ReplaceCopiesInput(t *testing.T) {
	in := []Entry{{ID: "a"}}
	s := NewStore()
	s.Replace(in, LoadReport{})

	in[0].ID = "changed"

	assert.Equal(t, "a", s.Entries()[0].ID)
}

func TestStore_Get(t *testing.T) {
	s := NewStore()
	s.Replace([]Entry{{ID: "a", Title: "A"}}, LoadReport{})

	e, ok := s.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "A", e.Title)

	_, ok = s.Get("missing")
	assert.False(t, ok)
}

func TestStore_MarkLoaded(t *testing.T) {
	s := NewStore()
	assert.False(t, s.IsLoaded())

	s.MarkLoaded()
	s.MarkLoaded()

	assert.True(t, s.IsLoaded())
	select {
	case <-s.Loaded():
	default:
		t.Fatal("loaded channel not closed")
	}
}

func TestFallbackEntries(t *testing.T) {
	entries := FallbackEntries()
	if assert.NotEmpty(t, entries) {
		assert.Equal(t, "agendas-de-ordenamiento-ambiental-id", entries[0].ID)
		assert.Equal(t, "Sociedad en movimiento", entries[0].Collection)
		assert.Equal(t, "2019-02-10", entries[0].PublishDate)
	}

	_, err := decodeFallback([]byte("entries: []\n"))
	assert.Error(t, err)
}
