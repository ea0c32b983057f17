package curves

import (
	"fmt"
	"math"

	"github.com/wavefan/wavefan/internal/configuration"
)

// FunctionSpeedCurve combines the values of other curves using a given
// function.
type FunctionSpeedCurve struct {
	Config configuration.CurveConfig `json:"config"`
	Value  float64                   `json:"value"`
}

func (c *FunctionSpeedCurve) GetId() string {
	return c.Config.ID
}

func (c *FunctionSpeedCurve) Evaluate() (duty float64, err error) {
	var values []float64
	for _, curveId := range c.Config.Function.Curves {
		curve, ok := GetSpeedCurve(curveId)
		if !ok {
			return 0, fmt.Errorf("curve %s: referenced curve '%s' not found", c.GetId(), curveId)
		}
		value, err := curve.Evaluate()
		if err != nil {
			return 0, err
		}
		values = append(values, value)
	}

	switch c.Config.Function.Type {
	case configuration.FunctionMinimum:
		result := 1.0
		for _, value := range values {
			result = math.Min(result, value)
		}
		duty = result
	case configuration.FunctionMaximum:
		result := 0.0
		for _, value := range values {
			result = math.Max(result, value)
		}
		duty = result
	case configuration.FunctionAverage:
		total := 0.0
		for _, value := range values {
			total += value
		}
		duty = total / float64(len(values))
	default:
		return 0, fmt.Errorf("curve %s: unknown curve function: %s", c.GetId(), c.Config.Function.Type)
	}

	c.SetValue(duty)
	return duty, nil
}

func (c *FunctionSpeedCurve) SetValue(value float64) {
	valueMu.Lock()
	defer valueMu.Unlock()
	c.Value = value
}

func (c *FunctionSpeedCurve) CurrentValue() float64 {
	valueMu.Lock()
	defer valueMu.Unlock()
	return c.Value
}
