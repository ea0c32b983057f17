package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type dutyOverrideRequest struct {
	Duty float64 `json:"duty"`
}

func registerChannelEndpoints(rest *echo.Echo) {
	group := rest.Group("/channel")

	group.GET("/", getChannels)
	group.GET("/:"+urlParamId+"/", getChannel)
	group.PUT("/:"+urlParamId+"/duty/", setChannelDuty)
	group.DELETE("/:"+urlParamId+"/duty/", clearChannelDuty)
}

// returns the runtime state snapshots of all configured channels
func getChannels(c echo.Context) error {
	return c.JSONPretty(http.StatusOK, sched.Snapshots(), indentationChar)
}

func getChannel(c echo.Context) error {
	id := c.Param(urlParamId)
	fanController, exists := sched.Controller(id)
	if !exists {
		return returnNotFound(c, id)
	}
	return c.JSONPretty(http.StatusOK, fanController.Snapshot(), indentationChar)
}

// pins a channel to a fixed duty cycle, bypassing its speed curve.
// Stall avoidance and fault handling still apply.
func setChannelDuty(c echo.Context) error {
	id := c.Param(urlParamId)
	fanController, exists := sched.Controller(id)
	if !exists {
		return returnNotFound(c, id)
	}

	var request dutyOverrideRequest
	if err := c.Bind(&request); err != nil {
		return returnError(c, err)
	}
	if request.Duty < 0 || request.Duty > 1 {
		return c.JSONPretty(http.StatusBadRequest, Result{
			Name:    "Invalid Request",
			Message: "duty must be within [0..1]",
		}, indentationChar)
	}

	duty := request.Duty
	fanController.SetDutyOverride(&duty)
	return c.JSONPretty(http.StatusOK, fanController.Snapshot(), indentationChar)
}

// returns a channel to speed curve control
func clearChannelDuty(c echo.Context) error {
	id := c.Param(urlParamId)
	fanController, exists := sched.Controller(id)
	if !exists {
		return returnNotFound(c, id)
	}

	fanController.SetDutyOverride(nil)
	return c.JSONPretty(http.StatusOK, fanController.Snapshot(), indentationChar)
}
