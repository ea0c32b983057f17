package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/qdm12/reprint"
	"github.com/wavefan/wavefan/internal/curves"
)

func registerCurveEndpoints(rest *echo.Echo) {
	group := rest.Group("/curve")

	group.GET("/", getCurves)
	group.GET("/:"+urlParamId+"/", getCurve)
}

// returns a list of all currently configured curves
func getCurves(c echo.Context) error {
	data := reprint.This(curves.SpeedCurveMap.Items())
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

func getCurve(c echo.Context) error {
	id := c.Param(urlParamId)
	curve, exists := curves.GetSpeedCurve(id)
	if !exists {
		return returnNotFound(c, id)
	}
	data := reprint.This(curve)
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}
