package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/wavefan/wavefan/internal/scheduler"
)

const (
	urlParamId      = "id"
	indentationChar = "  "
)

type (
	Result struct {
		Name    string `json:"name"`
		Message string `json:"message"`
	}
)

var sched scheduler.Scheduler

func CreateRestService(s scheduler.Scheduler) *echo.Echo {
	sched = s

	echoRest := echo.New()
	echoRest.HideBanner = true

	// Root level middleware
	echoRest.Pre(middleware.AddTrailingSlash())

	echoRest.Use(middleware.Secure())
	echoRest.Use(middleware.Recover())
	echoRest.Use(echoprometheus.NewMiddleware("wavefan_api"))

	echoRest.GET("/alive/", isAlive)

	registerChannelEndpoints(echoRest)
	registerCurveEndpoints(echoRest)
	registerInputEndpoints(echoRest)
	registerSchedulerEndpoints(echoRest)

	return echoRest
}

// returns an empty "ok" answer
func isAlive(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}
