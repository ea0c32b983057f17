package curves

import (
	"fmt"
	"sync"

	"github.com/wavefan/wavefan/internal/configuration"
	"github.com/wavefan/wavefan/internal/inputs"
	"github.com/wavefan/wavefan/internal/ui"
	"github.com/wavefan/wavefan/internal/util"
)

var (
	valueMu = sync.Mutex{}
)

// PointsSpeedCurve maps a control input to a target duty cycle through an
// ordered list of control points, interpolating linearly between points
// and clamping at the extremes.
type PointsSpeedCurve struct {
	Config configuration.CurveConfig `json:"config"`
	Value  float64                   `json:"value"`
}

func (c *PointsSpeedCurve) GetId() string {
	return c.Config.ID
}

func (c *PointsSpeedCurve) Evaluate() (duty float64, err error) {
	input, ok := inputs.GetInput(c.Config.Points.Input)
	if !ok {
		return 0, fmt.Errorf("curve %s: input '%s' not found", c.GetId(), c.Config.Points.Input)
	}
	avgValue := input.GetMovingAvg()

	duty = EvaluatePoints(c.Config.Points.Points, avgValue)

	ui.Debug("Evaluating curve '%s'. Input '%s' value '%.2f'. Target duty: %.3f", c.GetId(), input.GetId(), avgValue, duty)
	c.SetValue(duty)
	return duty, nil
}

// EvaluatePoints interpolates the given control points at the given input
// value. A single control point is treated as a constant.
func EvaluatePoints(points []configuration.CurvePoint, input float64) float64 {
	if len(points) == 1 {
		return points[0].Duty
	}

	first := points[0]
	last := points[len(points)-1]
	if input <= first.Input {
		return first.Duty
	}
	if input >= last.Input {
		return last.Duty
	}

	for i := 0; i < len(points)-1; i++ {
		current := points[i]
		next := points[i+1]

		if input > next.Input {
			continue
		}
		if input == current.Input {
			return current.Duty
		}

		ratio := util.Ratio(input, current.Input, next.Input)
		return current.Duty + ratio*(next.Duty-current.Duty)
	}

	return last.Duty
}

func (c *PointsSpeedCurve) SetValue(value float64) {
	valueMu.Lock()
	defer valueMu.Unlock()
	c.Value = value
}

func (c *PointsSpeedCurve) CurrentValue() float64 {
	valueMu.Lock()
	defer valueMu.Unlock()
	return c.Value
}
