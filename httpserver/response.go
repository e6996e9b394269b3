package httpserver

import (
	"errors"
	"fmt"
	"strconv"

	"cinefind/errs"

	"github.com/labstack/echo/v4"
)

const (
	successMessage   = "OK"
	defaultErrorCode = "100500"
)

// APIResponse is the envelope of every JSON body. Info carries the request
// id on errors so a failure can be matched to the server log.
type APIResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Result  interface{} `json:"result,omitempty"`
	Info    string      `json:"info,omitempty"`
}

type listResult struct {
	Data interface{} `json:"data"`
}

type pagedResult struct {
	Data       interface{} `json:"data"`
	Page       int         `json:"page"`
	TotalPages int         `json:"total_pages"`
	Meta       interface{} `json:"meta,omitempty"`
}

var errorCodes = map[string]string{
	errs.EINVALID:        "100010",
	errs.EUNAUTHORIZED:   "100401",
	errs.ENOTFOUND:       "100404",
	errs.ECONFLICT:       "100409",
	errs.EINTERNAL:       defaultErrorCode,
	errs.ENOTIMPLEMENTED: "100501",
	errs.EUPSTREAM:       "100502",
	errs.EUNAVAILABLE:    "100503",
}

func writeSuccess(c echo.Context, status int, result interface{}) error {
	return c.JSON(status, APIResponse{
		Code:    strconv.Itoa(status),
		Message: successMessage,
		Result:  result,
	})
}

func writeList(c echo.Context, status int, data interface{}) error {
	return writeSuccess(c, status, listResult{Data: data})
}

func writePagedList(c echo.Context, status int, data, meta interface{}, page, totalPages int) error {
	return writeSuccess(c, status, pagedResult{
		Data:       data,
		Page:       page,
		TotalPages: totalPages,
		Meta:       meta,
	})
}

func writeError(c echo.Context, status int, message string, err error) error {
	return c.JSON(status, APIResponse{
		Code:    errorCode(err, status),
		Message: message,
		Info:    c.Response().Header().Get(echo.HeaderXRequestID),
	})
}

func errorCode(err error, status int) string {
	var appErr *errs.Error
	if errors.As(err, &appErr) {
		if code, ok := errorCodes[appErr.Code]; ok {
			return code
		}
	}
	if status != 0 {
		return fmt.Sprintf("100%03d", status)
	}
	return defaultErrorCode
}
