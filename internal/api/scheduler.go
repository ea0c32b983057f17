package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func registerSchedulerEndpoints(rest *echo.Echo) {
	group := rest.Group("/scheduler")

	group.GET("/", getSchedulerStats)
}

// returns the scheduler's tick counters
func getSchedulerStats(c echo.Context) error {
	return c.JSONPretty(http.StatusOK, sched.Stats(), indentationChar)
}
