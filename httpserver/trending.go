package httpserver

import (
	"net/http"

	"cinefind/trending"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterTrendingRoutes(g *echo.Group) {
	g.GET("/trending", s.handleListTrending)
}

// handleListTrending godoc
// @Summary Trending Searches
// @Description The most opened search terms, highest count first
// @Tags trending
// @Produce json
// @Success 200 {object} APIResponse
// @Router /api/trending [get]
func (s *Server) handleListTrending(c echo.Context) error {
	if s.TrendingService == nil {
		return writeList(c, http.StatusOK, []trending.Entry{})
	}
	return writeList(c, http.StatusOK, s.TrendingService.Top(c.Request().Context()))
}
