package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/qdm12/reprint"
	"github.com/wavefan/wavefan/internal/inputs"
)

type inputOverrideRequest struct {
	Value float64 `json:"value"`
}

func registerInputEndpoints(rest *echo.Echo) {
	group := rest.Group("/input")

	group.GET("/", getInputs)
	group.GET("/:"+urlParamId+"/", getInput)
	group.PUT("/:"+urlParamId+"/value/", setInputValue)
	group.DELETE("/:"+urlParamId+"/value/", clearInputValue)
}

// returns a list of all currently configured inputs
func getInputs(c echo.Context) error {
	data := reprint.This(inputs.InputMap.Items())
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

func getInput(c echo.Context) error {
	id := c.Param(urlParamId)
	input, exists := inputs.GetInput(id)
	if !exists {
		return returnNotFound(c, id)
	}
	data := reprint.This(input)
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

// supplies a control input value, replacing the configured source until
// cleared. The most recently supplied value stays current until replaced.
func setInputValue(c echo.Context) error {
	id := c.Param(urlParamId)
	input, exists := inputs.GetInput(id)
	if !exists {
		return returnNotFound(c, id)
	}

	var request inputOverrideRequest
	if err := c.Bind(&request); err != nil {
		return returnError(c, err)
	}

	value := request.Value
	input.SetOverride(&value)
	// take effect immediately instead of waiting for the moving average
	// to converge
	input.SetMovingAvg(value)

	return c.NoContent(http.StatusOK)
}

func clearInputValue(c echo.Context) error {
	id := c.Param(urlParamId)
	input, exists := inputs.GetInput(id)
	if !exists {
		return returnNotFound(c, id)
	}

	input.SetOverride(nil)
	return c.NoContent(http.StatusOK)
}
