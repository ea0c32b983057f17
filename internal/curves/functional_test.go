package curves

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wavefan/wavefan/internal/configuration"
)

type mockCurve struct {
	ID        string
	MockValue float64
}

func (c *mockCurve) GetId() string {
	return c.ID
}

func (c *mockCurve) Evaluate() (duty float64, err error) {
	return c.MockValue, nil
}

// helper function to create a function curve configuration
func createFunctionCurveConfig(
	id string,
	function string,
	curveIds []string,
) (curve configuration.CurveConfig) {
	curve = configuration.CurveConfig{
		ID: id,
		Function: &configuration.FunctionCurveConfig{
			Type:   function,
			Curves: curveIds,
		},
	}
	return curve
}

func TestFunctionCurveMinimum(t *testing.T) {
	// GIVEN
	RegisterSpeedCurve(&mockCurve{ID: "case_fans", MockValue: 0.2})
	RegisterSpeedCurve(&mockCurve{ID: "cpu_fan", MockValue: 0.6})

	curveConfig := createFunctionCurveConfig(
		"min_curve",
		configuration.FunctionMinimum,
		[]string{"case_fans", "cpu_fan"},
	)
	curve, err := NewSpeedCurve(curveConfig)
	assert.NoError(t, err)

	// WHEN
	result, err := curve.Evaluate()

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 0.2, result)
}

func TestFunctionCurveMaximum(t *testing.T) {
	// GIVEN
	RegisterSpeedCurve(&mockCurve{ID: "case_fans", MockValue: 0.2})
	RegisterSpeedCurve(&mockCurve{ID: "cpu_fan", MockValue: 0.6})

	curveConfig := createFunctionCurveConfig(
		"max_curve",
		configuration.FunctionMaximum,
		[]string{"case_fans", "cpu_fan"},
	)
	curve, err := NewSpeedCurve(curveConfig)
	assert.NoError(t, err)

	// WHEN
	result, err := curve.Evaluate()

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 0.6, result)
}

func TestFunctionCurveAverage(t *testing.T) {
	// GIVEN
	RegisterSpeedCurve(&mockCurve{ID: "case_fans", MockValue: 0.2})
	RegisterSpeedCurve(&mockCurve{ID: "cpu_fan", MockValue: 0.6})

	curveConfig := createFunctionCurveConfig(
		"avg_curve",
		configuration.FunctionAverage,
		[]string{"case_fans", "cpu_fan"},
	)
	curve, err := NewSpeedCurve(curveConfig)
	assert.NoError(t, err)

	// WHEN
	result, err := curve.Evaluate()

	// THEN
	assert.NoError(t, err)
	assert.InDelta(t, 0.4, result, 0.0001)
}

func TestFunctionCurveUnknownReference(t *testing.T) {
	// GIVEN
	curveConfig := createFunctionCurveConfig(
		"broken_curve",
		configuration.FunctionMaximum,
		[]string{"missing_curve"},
	)
	curve, err := NewSpeedCurve(curveConfig)
	assert.NoError(t, err)

	// WHEN
	_, err = curve.Evaluate()

	// THEN
	assert.Error(t, err)
}
