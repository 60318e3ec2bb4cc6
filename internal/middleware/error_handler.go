package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"gymdesk_echo/internal/services"
)

// CustomErrorHandler maps the service error taxonomy and echo HTTP errors
// to JSON responses: NotFoundError -> 404, ValidationError -> 400, anything
// else (including StoreError) -> 500 with a generic message.
func CustomErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "something went wrong, please try again later"

	switch {
	case services.IsNotFound(err):
		code = http.StatusNotFound
		message = err.Error()
	case services.IsValidation(err):
		code = http.StatusBadRequest
		message = err.Error()
	default:
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if msg, ok := he.Message.(string); ok && msg != "" {
				message = msg
			}
		}
	}

	// Surface the real cause in the server log, never in the response
	if code == http.StatusInternalServerError {
		c.Logger().Error(err)
	}

	if writeErr := c.JSON(code, map[string]string{"error": message}); writeErr != nil {
		c.Logger().Error(writeErr)
	}
}
