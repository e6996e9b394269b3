// nolint: funlen
package movie_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"testing"

	"cinefind/errs"
	"cinefind/movie"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) List(ctx context.Context, u *url.URL) (movie.Listing, error) {
	args := m.Called(ctx, u)
	return args.Get(0).(movie.Listing), args.Error(1)
}

func (m *MockCatalog) Genres(ctx context.Context, u *url.URL) ([]movie.Genre, error) {
	args := m.Called(ctx, u)
	return args.Get(0).([]movie.Genre), args.Error(1)
}

func (m *MockCatalog) Details(ctx context.Context, u *url.URL) (movie.Details, error) {
	args := m.Called(ctx, u)
	return args.Get(0).(movie.Details), args.Error(1)
}

var testCatalogConfig = movie.CatalogConfig{
	BaseURL:  "https://api.themoviedb.org/3",
	Language: "it-IT",
	APIKey:   "token",
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newUsecase(t *testing.T, cfg movie.CatalogConfig, c movie.Catalog) *movie.Usecase {
	t.Helper()
	uc, err := movie.NewUsecase(cfg, c, discardLogger())
	require.NoError(t, err)
	return uc
}

func pathIs(path string) interface{} {
	return mock.MatchedBy(func(u *url.URL) bool { return u.Path == path })
}

func TestUsecase_Search(t *testing.T) {
	t.Run("returns results from the search endpoint", func(t *testing.T) {
		c := new(MockCatalog)
		uc := newUsecase(t, testCatalogConfig, c)
		movies := []movie.Movie{{ID: 268, Title: "Batman"}}
		c.On("List", mock.Anything, mock.MatchedBy(func(u *url.URL) bool {
			return u.Path == "/3/search/movie" && u.Query().Get("query") == "batman"
		})).Return(movie.Listing{Results: movies, TotalPages: 7}, nil).Once()

		res, err := uc.Search(context.Background(), movie.QueryState{Term: "batman", Page: 1})

		require.NoError(t, err)
		assert.Equal(t, movies, res.Movies)
		assert.Equal(t, 7, res.TotalPages)
		assert.Equal(t, movie.EndpointSearch, res.Endpoint)
		assert.Empty(t, res.Advisory)
		c.AssertExpectations(t)
	})

	t.Run("missing credential short-circuits without I/O", func(t *testing.T) {
		for _, key := range []string{"", "undefined", "  "} {
			c := new(MockCatalog)
			cfg := testCatalogConfig
			cfg.APIKey = key
			uc := newUsecase(t, cfg, c)

			_, err := uc.Search(context.Background(), movie.QueryState{Page: 1})

			assert.Equal(t, movie.ErrMissingAPIKey, err)
			c.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
		}
	})

	t.Run("invalid filters are rejected before I/O", func(t *testing.T) {
		c := new(MockCatalog)
		uc := newUsecase(t, testCatalogConfig, c)

		_, err := uc.Search(context.Background(), movie.QueryState{Filters: movie.Filters{Year: "20"}, Page: 1})

		assert.Equal(t, movie.ErrInvalidYear, err)
		c.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	})

	t.Run("term with filters reports an advisory", func(t *testing.T) {
		c := new(MockCatalog)
		uc := newUsecase(t, testCatalogConfig, c)
		c.On("List", mock.Anything, pathIs("/3/discover/movie")).
			Return(movie.Listing{Results: []movie.Movie{{ID: 1}}, TotalPages: 2}, nil).Once()

		res, err := uc.Search(context.Background(), movie.QueryState{
			Term:    "batman",
			Filters: movie.Filters{Genres: []int{28}},
			Page:    1,
		})

		require.NoError(t, err)
		assert.Equal(t, movie.EndpointDiscover, res.Endpoint)
		assert.Contains(t, res.Advisory, `"batman"`)
	})

	t.Run("total pages are capped", func(t *testing.T) {
		c := new(MockCatalog)
		uc := newUsecase(t, testCatalogConfig, c)
		c.On("List", mock.Anything, mock.Anything).
			Return(movie.Listing{Results: []movie.Movie{}, TotalPages: 10000}, nil).Once()

		res, err := uc.Search(context.Background(), movie.QueryState{Page: 1})

		require.NoError(t, err)
		assert.Equal(t, 500, res.TotalPages)
	})

	t.Run("missing results become an empty list", func(t *testing.T) {
		c := new(MockCatalog)
		uc := newUsecase(t, testCatalogConfig, c)
		c.On("List", mock.Anything, mock.Anything).Return(movie.Listing{}, nil).Once()

		res, err := uc.Search(context.Background(), movie.QueryState{Page: 1})

		require.NoError(t, err)
		assert.NotNil(t, res.Movies)
		assert.Empty(t, res.Movies)
		assert.Equal(t, 1, res.TotalPages)
	})

	t.Run("logical failure passes the upstream message through", func(t *testing.T) {
		c := new(MockCatalog)
		uc := newUsecase(t, testCatalogConfig, c)
		c.On("List", mock.Anything, mock.Anything).
			Return(movie.Listing{Response: "False", Error: "msg"}, nil).Once()

		_, err := uc.Search(context.Background(), movie.QueryState{Page: 1})

		assert.Equal(t, errs.EUPSTREAM, errs.ErrorCode(err))
		assert.Equal(t, "msg", errs.ErrorMessage(err))
	})

	t.Run("logical failure without message uses fallback", func(t *testing.T) {
		c := new(MockCatalog)
		uc := newUsecase(t, testCatalogConfig, c)
		c.On("List", mock.Anything, mock.Anything).
			Return(movie.Listing{Response: "False"}, nil).Once()

		_, err := uc.Search(context.Background(), movie.QueryState{Page: 1})

		assert.Equal(t, "Errore nel recupero dei film", errs.ErrorMessage(err))
	})

	t.Run("unauthorized status maps to invalid credential", func(t *testing.T) {
		c := new(MockCatalog)
		uc := newUsecase(t, testCatalogConfig, c)
		c.On("List", mock.Anything, mock.Anything).
			Return(movie.Listing{}, &movie.StatusError{StatusCode: http.StatusUnauthorized}).Once()

		_, err := uc.Search(context.Background(), movie.QueryState{Page: 1})

		assert.Equal(t, movie.ErrInvalidAPIKey, err)
	})

	t.Run("other status carries the code", func(t *testing.T) {
		c := new(MockCatalog)
		uc := newUsecase(t, testCatalogConfig, c)
		c.On("List", mock.Anything, mock.Anything).
			Return(movie.Listing{}, &movie.StatusError{StatusCode: http.StatusServiceUnavailable}).Once()

		_, err := uc.Search(context.Background(), movie.QueryState{Page: 1})

		assert.Equal(t, errs.EUNAVAILABLE, errs.ErrorCode(err))
		assert.Contains(t, errs.ErrorMessage(err), "503")
	})

	t.Run("transport failure is reported generically", func(t *testing.T) {
		c := new(MockCatalog)
		uc := newUsecase(t, testCatalogConfig, c)
		c.On("List", mock.Anything, mock.Anything).
			Return(movie.Listing{}, errors.New("connection reset")).Once()

		_, err := uc.Search(context.Background(), movie.QueryState{Page: 1})

		assert.Equal(t, errs.EUNAVAILABLE, errs.ErrorCode(err))
		assert.Equal(t, "Errore nel recupero dei film", errs.ErrorMessage(err))
	})
}

func TestUsecase_Genres(t *testing.T) {
	t.Run("returns live genres", func(t *testing.T) {
		c := new(MockCatalog)
		uc := newUsecase(t, testCatalogConfig, c)
		live := []movie.Genre{{ID: 28, Name: "Action"}}
		c.On("Genres", mock.Anything, pathIs("/3/genre/movie/list")).Return(live, nil).Once()

		assert.Equal(t, live, uc.Genres(context.Background()))
	})

	t.Run("falls back on error", func(t *testing.T) {
		c := new(MockCatalog)
		uc := newUsecase(t, testCatalogConfig, c)
		c.On("Genres", mock.Anything, mock.Anything).
			Return([]movie.Genre(nil), &movie.StatusError{StatusCode: http.StatusInternalServerError}).Once()

		assert.Equal(t, movie.DefaultGenres, uc.Genres(context.Background()))
	})

	t.Run("falls back without credential", func(t *testing.T) {
		c := new(MockCatalog)
		uc := newUsecase(t, movie.CatalogConfig{BaseURL: testCatalogConfig.BaseURL}, c)

		assert.Equal(t, movie.DefaultGenres, uc.Genres(context.Background()))
		c.AssertNotCalled(t, "Genres", mock.Anything, mock.Anything)
	})
}

func TestUsecase_Details(t *testing.T) {
	t.Run("returns details", func(t *testing.T) {
		c := new(MockCatalog)
		uc := newUsecase(t, testCatalogConfig, c)
		d := movie.Details{Movie: movie.Movie{ID: 550, Title: "Fight Club"}, Runtime: 139}
		c.On("Details", mock.Anything, pathIs("/3/movie/550")).Return(d, nil).Once()

		got, err := uc.Details(context.Background(), 550)

		require.NoError(t, err)
		assert.Equal(t, d, got)
	})

	t.Run("rejects invalid id", func(t *testing.T) {
		uc := newUsecase(t, testCatalogConfig, new(MockCatalog))

		_, err := uc.Details(context.Background(), 0)

		assert.Equal(t, movie.ErrInvalidMovie, err)
	})

	t.Run("not found", func(t *testing.T) {
		c := new(MockCatalog)
		uc := newUsecase(t, testCatalogConfig, c)
		c.On("Details", mock.Anything, mock.Anything).
			Return(movie.Details{}, &movie.StatusError{StatusCode: http.StatusNotFound}).Once()

		_, err := uc.Details(context.Background(), 1)

		assert.Equal(t, errs.ENOTFOUND, errs.ErrorCode(err))
	})

	t.Run("other failures use the details message", func(t *testing.T) {
		c := new(MockCatalog)
		uc := newUsecase(t, testCatalogConfig, c)
		c.On("Details", mock.Anything, mock.Anything).
			Return(movie.Details{}, errors.New("boom")).Once()

		_, err := uc.Details(context.Background(), 1)

		assert.Equal(t, movie.ErrDetailsUnavailable, err)
	})
}
