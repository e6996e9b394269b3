package httpserver

import (
	"net/http"
	"strconv"
	"time"

	"cinefind/errs"
	"cinefind/movie"

	"github.com/labstack/echo/v4"
)

const detailsCastSize = 10

type listMeta struct {
	Endpoint movie.Endpoint `json:"endpoint"`
	Advisory string         `json:"advisory,omitempty"`
}

type movieCard struct {
	movie.Movie
	DisplayTitle    string `json:"display_title"`
	DisplayOverview string `json:"display_overview"`
	PosterURL       string `json:"poster_url,omitempty"`
	Year            string `json:"year"`
	Rating          string `json:"rating"`
}

type detailsView struct {
	movie.Details
	DisplayTitle string `json:"display_title"`
	PosterURL    string `json:"poster_url,omitempty"`
	BackdropURL  string `json:"backdrop_url,omitempty"`
	Year         string `json:"year"`
	Rating       string `json:"rating"`
	RuntimeText  string `json:"runtime_text"`
	BudgetText   string `json:"budget_text"`
	RevenueText  string `json:"revenue_text"`
}

type filterOptions struct {
	Sort      []movie.Option[movie.SortKey]  `json:"sort"`
	Languages []movie.Option[movie.Language] `json:"languages"`
	Ratings   []string                       `json:"ratings"`
	Years     []string                       `json:"years"`
	Genres    []movie.Genre                  `json:"genres"`
}

func (s *Server) RegisterMovieRoutes(g *echo.Group) {
	g.GET("/movies", s.handleListMovies)
	g.GET("/movies/:id", s.handleMovieDetails)
	g.POST("/movies/:id/open", s.handleOpenMovie)
	g.GET("/genres", s.handleListGenres)
	g.GET("/filters", s.handleFilterOptions)
}

// handleListMovies godoc
// @Summary List Movies
// @Description Search by title, or discover with filters when any filter is active
// @Tags movies
// @Produce json
// @Param query query string false "Search text"
// @Param genres query string false "Comma separated genre ids"
// @Param year query string false "Release year"
// @Param min_rating query string false "Minimum vote average"
// @Param language query string false "Original language"
// @Param sort_by query string false "Sort key"
// @Param page query int false "Page (1-500)"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 502 {object} APIResponse
// @Router /api/movies [get]
func (s *Server) handleListMovies(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}

	var req SearchRequest
	if err := c.Bind(&req); err != nil {
		return movie.ErrInvalidQuery
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	q, err := req.ToQuery()
	if err != nil {
		return err
	}

	res, err := s.MovieService.Search(c.Request().Context(), q)
	if err != nil {
		return err
	}

	cards := make([]movieCard, len(res.Movies))
	for i, m := range res.Movies {
		cards[i] = newMovieCard(m)
	}
	return writePagedList(c, http.StatusOK, cards, listMeta{
		Endpoint: res.Endpoint,
		Advisory: res.Advisory,
	}, res.Page, res.TotalPages)
}

// handleMovieDetails godoc
// @Summary Movie Details
// @Tags movies
// @Produce json
// @Param id path int true "Movie id"
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/movies/{id} [get]
func (s *Server) handleMovieDetails(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return movie.ErrInvalidMovie
	}

	d, err := s.MovieService.Details(c.Request().Context(), id)
	if err != nil {
		return err
	}

	d.Cast = d.TopCast(detailsCastSize)
	return writeSuccess(c, http.StatusOK, detailsView{
		Details:      d,
		DisplayTitle: movie.ResolveTitle(d.Movie),
		PosterURL:    d.PosterURL(),
		BackdropURL:  d.BackdropURL(),
		Year:         d.Year(),
		Rating:       d.Rating(),
		RuntimeText:  movie.FormatRuntime(d.Runtime),
		BudgetText:   movie.FormatCurrency(d.Budget),
		RevenueText:  movie.FormatCurrency(d.Revenue),
	})
}

// handleOpenMovie godoc
// @Summary Record Opened Movie
// @Description Counts the opened movie against its title in the trending list
// @Tags movies
// @Accept json
// @Param id path int true "Movie id"
// @Success 202 {object} APIResponse
// @Router /api/movies/{id}/open [post]
func (s *Server) handleOpenMovie(c echo.Context) error {
	var req OpenMovieRequest
	if err := c.Bind(&req); err != nil {
		return movie.ErrInvalidMovie
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if s.TrendingService != nil {
		m := req.ToMovie()
		s.TrendingService.RecordOpen(c.Request().Context(), movie.ResolveTitle(m), m)
	}

	return writeSuccess(c, http.StatusAccepted, map[string]string{
		"status": "accepted",
	})
}

// handleListGenres godoc
// @Summary List Genres
// @Tags movies
// @Produce json
// @Success 200 {object} APIResponse
// @Router /api/genres [get]
func (s *Server) handleListGenres(c echo.Context) error {
	return writeList(c, http.StatusOK, s.genres(c))
}

func (s *Server) handleFilterOptions(c echo.Context) error {
	return writeSuccess(c, http.StatusOK, filterOptions{
		Sort:      movie.SortOptions,
		Languages: movie.LanguageOptions,
		Ratings:   movie.RatingThresholds,
		Years:     movie.YearOptions(time.Now()),
		Genres:    s.genres(c),
	})
}

func (s *Server) genres(c echo.Context) []movie.Genre {
	if s.MovieService == nil {
		return movie.DefaultGenres
	}
	return s.MovieService.Genres(c.Request().Context())
}

func newMovieCard(m movie.Movie) movieCard {
	return movieCard{
		Movie:           m,
		DisplayTitle:    movie.ResolveTitle(m),
		DisplayOverview: movie.ResolveOverview(m),
		PosterURL:       m.PosterURL(),
		Year:            m.Year(),
		Rating:          m.Rating(),
	}
}
