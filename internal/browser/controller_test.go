package browser

import (
	"errors"
	"net/url"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"catalogweb/internal/catalog"
)

func newCatalog(t *testing.T, source catalog.Source, entries ...catalog.Entry) *catalog.Service {
	t.Helper()
	base, err := url.Parse("https://EdUNLu-editorial.github.io/catalogo-web/")
	require.NoError(t, err)

	store := catalog.NewStore()
	store.Replace(entries, catalog.LoadReport{Source: source})
	store.MarkLoaded()
	return catalog.NewService(store, language.Spanish, base)
}

var (
	agendas = catalog.Entry{
		ID:            "agendas-de-ordenamiento-ambiental-id",
		Title:         "Agendas de ordenamiento ambiental",
		Author:        "Nélida da Costa Pereira y María Cecilia Poggi",
		Collection:    "Sociedad en movimiento",
		TargetURL:     "https://www.edunlu.unlu.edu.ar/?q=node/174/",
		CoverImageURL: "covers/agendas-ordenamiento.gif",
		PublishDate:   "2019-02-10",
	}
	biologia = catalog.Entry{
		ID:          "biologia",
		Title:       "Biología celular",
		Collection:  "Ciencia",
		PublishDate: "2021-05-03",
	}
)

// captureRenders records every rendered view.
func captureRenders(r *MockRenderer, views *[]View) {
	r.EXPECT().Render(gomock.Any()).DoAndReturn(func(v View) error {
		*views = append(*views, v)
		return nil
	}).AnyTimes()
}

func cardIDs(v View) []string {
	out := make([]string, len(v.Cards))
	for i, c := range v.Cards {
		out[i] = c.ID
	}
	return out
}

func TestController_Refresh_DefaultState(t *testing.T) {
	ctrl := gomock.NewController(t)
	renderer := NewMockRenderer(ctrl)
	var views []View
	captureRenders(renderer, &views)

	c := NewController(newCatalog(t, catalog.SourceRemote, biologia, agendas), renderer)
	require.NoError(t, c.Refresh())

	require.Len(t, views, 1)
	v := views[0]
	assert.Equal(t, DefaultState(), v.State)
	assert.Equal(t, []string{agendas.ID, biologia.ID}, cardIDs(v))
	assert.False(t, v.Empty)
	assert.Nil(t, v.Status)
	assert.Equal(t, []string{"Ciencia", "Sociedad en movimiento"}, v.Collections)

	card := v.Cards[0]
	assert.Equal(t, "10/02/2019", card.Date)
	assert.Equal(t, "https://EdUNLu-editorial.github.io/catalogo-web/covers/agendas-ordenamiento.gif", card.CoverURL)
	assert.Equal(t, catalog.ErrorCoverURL, card.ErrorCoverURL)
	assert.Equal(t, "Portada de Agendas de ordenamiento ambiental", card.CoverAlt)
	assert.Equal(t, catalog.UnknownAuthorLabel, v.Cards[1].Author)
	assert.Equal(t, catalog.PlaceholderCoverURL, v.Cards[1].CoverURL)
}

func TestController_SetCollectionFilter(t *testing.T) {
	ctrl := gomock.NewController(t)
	renderer := NewMockRenderer(ctrl)
	var views []View
	captureRenders(renderer, &views)

	c := NewController(newCatalog(t, catalog.SourceRemote, agendas, biologia), renderer)
	require.NoError(t, c.Dispatch(SetCollectionFilter{Collection: "Sociedad en movimiento"}))

	require.Len(t, views, 1)
	assert.Equal(t, []string{agendas.ID}, cardIDs(views[0]))
	assert.Equal(t, "Sociedad en movimiento", c.State().Collection)
}

func TestController_SetSearchTerm(t *testing.T) {
	ctrl := gomock.NewController(t)
	renderer := NewMockRenderer(ctrl)
	var views []View
	captureRenders(renderer, &views)

	c := NewController(newCatalog(t, catalog.SourceRemote, agendas, biologia), renderer)

	for _, term := range []string{"agendas", "AGENDAS", "poggi"} {
		require.NoError(t, c.Dispatch(SetSearchTerm{Term: term}))
		assert.Equal(t, []string{agendas.ID}, cardIDs(views[len(views)-1]), term)
	}
	assert.Len(t, views, 3, "every input re-renders")
}

func TestController_SetSortMethod(t *testing.T) {
	ctrl := gomock.NewController(t)
	renderer := NewMockRenderer(ctrl)
	var views []View
	captureRenders(renderer, &views)

	c := NewController(newCatalog(t, catalog.SourceRemote, agendas, biologia), renderer)

	require.NoError(t, c.Dispatch(SetSortMethod{Method: catalog.SortDate}))
	assert.Equal(t, []string{biologia.ID, agendas.ID}, cardIDs(views[0]))

	require.NoError(t, c.Dispatch(SetSortMethod{Method: "whatever"}))
	assert.Equal(t, "whatever", c.State().Sort)
	assert.Equal(t, []string{agendas.ID, biologia.ID}, cardIDs(views[1]))
}

func TestController_EmptyMessages(t *testing.T) {
	ctrl := gomock.NewController(t)
	renderer := NewMockRenderer(ctrl)
	var views []View
	captureRenders(renderer, &views)

	c := NewController(newCatalog(t, catalog.SourceRemote, agendas), renderer)

	require.NoError(t, c.Dispatch(SetSearchTerm{Term: "  Borges "}))
	v := views[len(views)-1]
	assert.True(t, v.Empty)
	assert.Equal(t, `No se encontraron resultados para "  Borges ".`, v.EmptyMessage)

	require.NoError(t, c.Dispatch(SetSearchTerm{Term: ""}, SetCollectionFilter{Collection: "Poesía"}))
	v = views[len(views)-1]
	assert.True(t, v.Empty)
	assert.Equal(t, `No hay elementos en la colección "Poesía".`, v.EmptyMessage)
}

func TestController_DispatchBatchRendersOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	renderer := NewMockRenderer(ctrl)
	var views []View
	captureRenders(renderer, &views)

	c := NewController(newCatalog(t, catalog.SourceRemote, agendas, biologia), renderer)
	require.NoError(t, c.Dispatch(
		SetCollectionFilter{Collection: "Ciencia"},
		SetSortMethod{Method: catalog.SortDate},
		SetSearchTerm{Term: "bio"},
	))

	require.Len(t, views, 1)
	assert.Equal(t, State{Collection: "Ciencia", Sort: catalog.SortDate, Search: "bio"}, views[0].State)
	assert.Equal(t, []string{biologia.ID}, cardIDs(views[0]))
}

func TestController_FallbackWarningPersists(t *testing.T) {
	ctrl := gomock.NewController(t)
	renderer := NewMockRenderer(ctrl)
	var views []View
	captureRenders(renderer, &views)

	c := NewController(newCatalog(t, catalog.SourceFallback, agendas), renderer)
	require.NoError(t, c.Refresh())
	require.NoError(t, c.Dispatch(SetSearchTerm{Term: "x"}))

	for _, v := range views {
		require.NotNil(t, v.Status)
		assert.Equal(t, LoadFailedMessage, v.Status.Text)
		assert.Equal(t, MessageWarning, v.Status.Kind)
		assert.Zero(t, v.Status.AutoHide)
	}
}

func TestController_ViewEntry(t *testing.T) {
	t.Run("opens target url without re-rendering", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		renderer := NewMockRenderer(ctrl)
		renderer.EXPECT().Open(agendas.TargetURL).Return(nil)

		c := NewController(newCatalog(t, catalog.SourceRemote, agendas), renderer)
		require.NoError(t, c.Dispatch(ViewEntry{ID: agendas.ID}))
	})

	t.Run("relative target resolves against the catalog site", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		renderer := NewMockRenderer(ctrl)
		renderer.EXPECT().Open("https://EdUNLu-editorial.github.io/catalogo-web/libros/x.html").Return(nil)

		entry := catalog.Entry{Title: "Sin id", TargetURL: "libros/x.html"}
		c := NewController(newCatalog(t, catalog.SourceRemote, agendas, entry), renderer)
		require.NoError(t, c.Dispatch(ViewEntry{ID: ""}))
	})

	t.Run("missing target shows transient message", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		renderer := NewMockRenderer(ctrl)
		var views []View
		captureRenders(renderer, &views)

		c := NewController(newCatalog(t, catalog.SourceFallback, biologia), renderer)
		require.NoError(t, c.Dispatch(ViewEntry{ID: biologia.ID}))
		require.NoError(t, c.Refresh())

		require.Len(t, views, 2)
		require.NotNil(t, views[0].Status)
		assert.Equal(t, NoTargetMessage, views[0].Status.Text)
		assert.Equal(t, TransientMessageTTL, views[0].Status.AutoHide)

		require.NotNil(t, views[1].Status)
		assert.Equal(t, LoadFailedMessage, views[1].Status.Text)
	})

	t.Run("unknown entry", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		renderer := NewMockRenderer(ctrl)

		c := NewController(newCatalog(t, catalog.SourceRemote, agendas), renderer)
		err := c.Dispatch(ViewEntry{ID: "nope"})

		assert.True(t, errors.Is(err, catalog.ErrNotFound))
	})

	t.Run("open failure is returned", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		renderer := NewMockRenderer(ctrl)
		renderer.EXPECT().Open(gomock.Any()).Return(errors.New("blocked"))

		c := NewController(newCatalog(t, catalog.SourceRemote, agendas), renderer)
		assert.Error(t, c.Dispatch(ViewEntry{ID: agendas.ID}))
	})
}

func TestController_WithState(t *testing.T) {
	ctrl := gomock.NewController(t)
	renderer := NewMockRenderer(ctrl)
	var views []View
	captureRenders(renderer, &views)

	state := State{Collection: "Ciencia", Sort: catalog.SortAlpha}
	c := NewController(newCatalog(t, catalog.SourceRemote, agendas, biologia), renderer, WithState(state))
	require.NoError(t, c.Refresh())

	assert.Equal(t, state, views[0].State)
	assert.Equal(t, []string{biologia.ID}, cardIDs(views[0]))
}

func TestController_RefreshIsIdempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	renderer := NewMockRenderer(ctrl)
	var views []View
	captureRenders(renderer, &views)

	c := NewController(newCatalog(t, catalog.SourceRemote, agendas, biologia), renderer)
	require.NoError(t, c.Refresh())
	require.NoError(t, c.Refresh())

	assert.Equal(t, views[0], views[1])
}
