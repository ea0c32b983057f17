package inputs

import (
	"fmt"

	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/wavefan/wavefan/internal/configuration"
)

var (
	InputMap = cmap.New[Input]()
)

// Input is a source of the control value fed into speed curves, typically
// a temperature or a requested cooling level supplied by an external
// system.
type Input interface {
	GetId() string

	GetConfig() configuration.InputConfig

	// GetValue returns the current value of this input
	GetValue() (float64, error)

	// GetMovingAvg returns the moving average of this input's value
	GetMovingAvg() float64
	SetMovingAvg(avg float64)

	// SetOverride replaces the source value with a caller supplied one,
	// nil returns the input to its configured source
	SetOverride(value *float64)
}

func NewInput(config configuration.InputConfig) (Input, error) {
	if config.File != nil {
		return &FileInput{
			Config: config,
		}, nil
	}

	if config.Cmd != nil {
		return &CmdInput{
			Config: config,
		}, nil
	}

	if config.Static != nil {
		return &StaticInput{
			Config: config,
			Value:  config.Static.Value,
		}, nil
	}

	return nil, fmt.Errorf("no matching input type for input: %s", config.ID)
}

func GetInput(id string) (Input, bool) {
	return InputMap.Get(id)
}

func RegisterInput(input Input) {
	InputMap.Set(input.GetId(), input)
}
