package httpserver_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"cinefind/httpserver"

	"github.com/stretchr/testify/assert"
)

type healthResult struct {
	Status   string `json:"status"`
	Catalog  string `json:"catalog"`
	Trending string `json:"trending"`
}

type unconfiguredCatalog struct {
	MockMovieService
}

func (*unconfiguredCatalog) Configured() bool { return false }

type disabledTrending struct {
	MockTrendingService
}

func (*disabledTrending) Enabled() bool { return false }

func TestHealthcheck(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(s *httpserver.Server)
		expected healthResult
	}{
		{
			name:     "nothing wired",
			setup:    func(*httpserver.Server) {},
			expected: healthResult{Status: "OK", Catalog: "disabled", Trending: "disabled"},
		},
		{
			name: "all components up",
			setup: func(s *httpserver.Server) {
				s.MovieService = &MockMovieService{}
				s.TrendingService = &MockTrendingService{}
			},
			expected: healthResult{Status: "OK", Catalog: "up", Trending: "up"},
		},
		{
			name: "degraded components",
			setup: func(s *httpserver.Server) {
				s.MovieService = &unconfiguredCatalog{}
				s.TrendingService = &disabledTrending{}
			},
			expected: healthResult{Status: "OK", Catalog: "missing_api_key", Trending: "disabled"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httpserver.Default(testConfig())
			tt.setup(server)

			req := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
			rec := httptest.NewRecorder()
			server.Router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "200", decodeAPIResponse(t, rec).Code)
			assert.Equal(t, tt.expected, decodeResult[healthResult](t, rec))
		})
	}
}
