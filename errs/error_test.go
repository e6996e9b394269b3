package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"cinefind/errs"

	"github.com/stretchr/testify/assert"
)

func TestError_Error(t *testing.T) {
	err := errs.Errorf(errs.EUNAVAILABLE, "Errore nel recupero dei film (%d)", 503)

	assert.Equal(t, errs.EUNAVAILABLE, err.Code)
	assert.Equal(t, "Errore nel recupero dei film (503)", err.Message)
	assert.Equal(t, "application error: code=unavailable message=Errore nel recupero dei film (503)", err.Error())
}

func TestErrorf_KeepsVerbsInArguments(t *testing.T) {
	err := errs.Errorf(errs.EUPSTREAM, "%s", "100% match")

	assert.Equal(t, "100% match", err.Message)
}

func TestErrorCodeAndMessage(t *testing.T) {
	invalidSort := errs.Errorf(errs.EINVALID, "movie: invalid sort key")

	tests := []struct {
		name    string
		err     error
		code    string
		message string
	}{
		{name: "nil", err: nil, code: "", message: ""},
		{name: "application error", err: invalidSort, code: errs.EINVALID, message: "movie: invalid sort key"},
		{
			name:    "wrapped with fmt",
			err:     fmt.Errorf("search: %w", errs.Errorf(errs.EUNAUTHORIZED, "API key non valida")),
			code:    errs.EUNAUTHORIZED,
			message: "API key non valida",
		},
		{
			name:    "joined",
			err:     errors.Join(errors.New("cancelled"), errs.Errorf(errs.ENOTFOUND, "movie 550 not found")),
			code:    errs.ENOTFOUND,
			message: "movie 550 not found",
		},
		{name: "plain error", err: errors.New("dial tcp: timeout"), code: errs.EINTERNAL, message: "Internal error."},
		{name: "empty message", err: errs.Errorf(errs.EINTERNAL, ""), code: errs.EINTERNAL, message: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, errs.ErrorCode(tt.err))
			assert.Equal(t, tt.message, errs.ErrorMessage(tt.err))
		})
	}
}
