package curves

import (
	"fmt"

	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/wavefan/wavefan/internal/configuration"
)

var (
	SpeedCurveMap = cmap.New[SpeedCurve]()
)

type SpeedCurve interface {
	GetId() string
	// Evaluate calculates the current value of the given curve,
	// returns a target duty cycle in [0..1]
	Evaluate() (duty float64, err error)
}

func NewSpeedCurve(config configuration.CurveConfig) (SpeedCurve, error) {
	if config.Points != nil {
		return &PointsSpeedCurve{
			Config: config,
		}, nil
	}

	if config.Function != nil {
		return &FunctionSpeedCurve{
			Config: config,
		}, nil
	}

	return nil, fmt.Errorf("no matching curve type for curve: %s", config.ID)
}

func GetSpeedCurve(id string) (SpeedCurve, bool) {
	return SpeedCurveMap.Get(id)
}

func RegisterSpeedCurve(curve SpeedCurve) {
	SpeedCurveMap.Set(curve.GetId(), curve)
}
