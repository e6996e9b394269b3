package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	componentUp       = "up"
	componentDisabled = "disabled"
	componentMissing  = "missing_api_key"
)

type catalogStatus interface {
	Configured() bool
}

type trendingStatus interface {
	Enabled() bool
}

type healthView struct {
	Status   string `json:"status"`
	Catalog  string `json:"catalog"`
	Trending string `json:"trending"`
}

func (s *Server) RegisterHealthRoutes() {
	s.Router.GET("/healthcheck", s.healthCheck)
}

// healthCheck never fails: a missing API key or counter store degrades the
// reported components but the process is still serving.
func (s *Server) healthCheck(c echo.Context) error {
	return writeSuccess(c, http.StatusOK, healthView{
		Status:   "OK",
		Catalog:  s.catalogHealth(),
		Trending: s.trendingHealth(),
	})
}

func (s *Server) catalogHealth() string {
	if s.MovieService == nil {
		return componentDisabled
	}
	if cs, ok := s.MovieService.(catalogStatus); ok && !cs.Configured() {
		return componentMissing
	}
	return componentUp
}

func (s *Server) trendingHealth() string {
	if s.TrendingService == nil {
		return componentDisabled
	}
	if ts, ok := s.TrendingService.(trendingStatus); ok && !ts.Enabled() {
		return componentDisabled
	}
	return componentUp
}
