package inputs

import (
	"fmt"
	"strconv"
	"time"

	"github.com/wavefan/wavefan/internal/configuration"
	"github.com/wavefan/wavefan/internal/ui"
	"github.com/wavefan/wavefan/internal/util"
)

type CmdInput struct {
	Config    configuration.InputConfig `json:"config"`
	MovingAvg float64                   `json:"movingAvg"`
	Override  *float64                  `json:"override,omitempty"`
}

func (input *CmdInput) GetId() string {
	return input.Config.ID
}

func (input *CmdInput) GetConfig() configuration.InputConfig {
	return input.Config
}

func (input *CmdInput) GetValue() (float64, error) {
	if input.Override != nil {
		return *input.Override, nil
	}

	timeout := 2 * time.Second
	executable := input.Config.Cmd.Exec
	args := input.Config.Cmd.Args
	result, err := util.SafeCmdExecution(executable, args, timeout)
	if err != nil {
		return 0, fmt.Errorf("input %s: %s", input.GetId(), err.Error())
	}

	value, err := strconv.ParseFloat(result, 64)
	if err != nil {
		ui.Warning("input %s: unable to parse command output: %s", input.GetId(), executable)
		return 0, err
	}

	return value, nil
}

func (input *CmdInput) GetMovingAvg() (avg float64) {
	return input.MovingAvg
}

func (input *CmdInput) SetMovingAvg(avg float64) {
	input.MovingAvg = avg
}

func (input *CmdInput) SetOverride(value *float64) {
	input.Override = value
}
