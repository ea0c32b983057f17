package api

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// return a "not found" message
func returnNotFound(c echo.Context, id string) (err error) {
	return c.JSONPretty(
		http.StatusNotFound,
		Result{
			Name:    "Not Found",
			Message: fmt.Sprintf("No item with id '%s' found", id),
		},
		indentationChar,
	)
}

// return an "error" message
func returnError(c echo.Context, e error) (err error) {
	return c.JSONPretty(
		http.StatusInternalServerError,
		Result{
			Name:    "Unknown Error",
			Message: e.Error(),
		},
		indentationChar,
	)
}
