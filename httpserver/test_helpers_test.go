package httpserver_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"cinefind/httpserver"
	"cinefind/pkg/config"

	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{Port: 8080}
}

type pagedResult[T any] struct {
	Data       []T `json:"data"`
	Page       int `json:"page"`
	TotalPages int `json:"total_pages"`
	Meta       struct {
		Endpoint string `json:"endpoint"`
		Advisory string `json:"advisory"`
	} `json:"meta"`
}

type apiEnvelope[T any] struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Result  T      `json:"result"`
}

func decodeAPIResponse(t *testing.T, rec *httptest.ResponseRecorder) httpserver.APIResponse {
	t.Helper()
	var resp httpserver.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func decodeResult[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var env apiEnvelope[T]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env.Result
}
