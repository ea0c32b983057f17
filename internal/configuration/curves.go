package configuration

type CurveConfig struct {
	ID       string               `json:"id"`
	Points   *PointsCurveConfig   `json:"points,omitempty"`
	Function *FunctionCurveConfig `json:"function,omitempty"`
}

type PointsCurveConfig struct {
	// Input is the id of the control input this curve maps to a duty cycle
	Input string `json:"input"`
	// Points are (input, duty) control points, ordered by input
	Points []CurvePoint `json:"points"`
}

// CurvePoint maps a single control input value to a target duty cycle
type CurvePoint struct {
	Input float64 `json:"input"`
	Duty  float64 `json:"duty"`
}

const (
	FunctionMinimum = "minimum"
	FunctionMaximum = "maximum"
	FunctionAverage = "average"
)

type FunctionCurveConfig struct {
	Type   string   `json:"type"`
	Curves []string `json:"curves"`
}
