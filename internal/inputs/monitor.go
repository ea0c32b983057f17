package inputs

import (
	"context"
	"time"

	"github.com/wavefan/wavefan/internal/configuration"
	"github.com/wavefan/wavefan/internal/util"
)

type InputMonitor interface {
	Run(ctx context.Context) error
}

type inputMonitor struct {
	input       Input
	pollingRate time.Duration
}

func NewInputMonitor(input Input, pollingRate time.Duration) InputMonitor {
	return inputMonitor{
		input:       input,
		pollingRate: pollingRate,
	}
}

func (m inputMonitor) Run(ctx context.Context) error {
	tick := time.Tick(m.pollingRate)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tick:
			err := updateInput(m.input)
			if err != nil {
				return err
			}
		}
	}
}

// read the current value of an input and fold it into the moving average
func updateInput(input Input) (err error) {
	value, err := input.GetValue()
	if err != nil {
		return err
	}

	n := configuration.CurrentConfig.InputRollingWindowSize
	lastAvg := input.GetMovingAvg()
	newAvg := util.UpdateSimpleMovingAvg(lastAvg, n, value)
	input.SetMovingAvg(newAvg)

	return nil
}
