package inputs

import (
	"github.com/wavefan/wavefan/internal/configuration"
)

// StaticInput holds a fixed configured value until an external caller
// replaces it at runtime.
type StaticInput struct {
	Config    configuration.InputConfig `json:"config"`
	Value     float64                   `json:"value"`
	MovingAvg float64                   `json:"movingAvg"`
	Override  *float64                  `json:"override,omitempty"`
}

func (input *StaticInput) GetId() string {
	return input.Config.ID
}

func (input *StaticInput) GetConfig() configuration.InputConfig {
	return input.Config
}

func (input *StaticInput) GetValue() (float64, error) {
	if input.Override != nil {
		return *input.Override, nil
	}
	return input.Value, nil
}

func (input *StaticInput) GetMovingAvg() (avg float64) {
	return input.MovingAvg
}

func (input *StaticInput) SetMovingAvg(avg float64) {
	input.MovingAvg = avg
}

func (input *StaticInput) SetOverride(value *float64) {
	input.Override = value
}
