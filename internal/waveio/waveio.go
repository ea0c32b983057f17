package waveio

import (
	"errors"
	"fmt"
	"time"
)

const (
	// MinFrequencyHz is the lowest output frequency a peripheral must support
	MinFrequencyHz = 1.0
	// MaxFrequencyHz is the highest output frequency a peripheral must support
	MaxFrequencyHz = 100_000.0
)

var (
	ErrUnsupportedFrequency = errors.New("unsupported frequency")
	ErrChannelBusy          = errors.New("channel busy")
)

// HardwareError describes a failed interaction with the timing peripheral
// of a specific channel.
type HardwareError struct {
	Channel string
	Op      string
	Err     error
}

func (e *HardwareError) Error() string {
	return fmt.Sprintf("channel %s: %s: %v", e.Channel, e.Op, e.Err)
}

func (e *HardwareError) Unwrap() error {
	return e.Err
}

// WaveformSample is an immutable measurement of an observed square wave.
// Valid is false whenever fewer than one full period was observed within
// the sampling window, which means the signal is absent, stalled, or too
// slow to resolve.
type WaveformSample struct {
	FrequencyHz float64 `json:"frequencyHz"`
	DutyCycle   float64 `json:"dutyCycle"`
	Valid       bool    `json:"valid"`
}

// WaveformCommand is the desired output state of a drive line.
type WaveformCommand struct {
	FrequencyHz float64 `json:"frequencyHz"`
	DutyCycle   float64 `json:"dutyCycle"`
}

// Validate checks the command against the supported output range.
func (c WaveformCommand) Validate() error {
	if c.FrequencyHz < MinFrequencyHz || c.FrequencyHz > MaxFrequencyHz {
		return ErrUnsupportedFrequency
	}
	if c.DutyCycle < 0 || c.DutyCycle > 1 {
		return fmt.Errorf("duty cycle %f outside [0..1]", c.DutyCycle)
	}
	return nil
}

// Peripheral is the capability boundary to the timing hardware of a single
// channel. Any backend offering these two operations is a valid substrate,
// which is what allows the sim backend to stand in for real hardware in
// tests.
type Peripheral interface {
	// ConfigureOutput programs the drive line to emit a continuous square
	// wave. The previous waveform is replaced atomically, taking effect
	// only at a period boundary of the old waveform.
	ConfigureOutput(command WaveformCommand) error

	// SampleInput observes the sense line for up to window, counting edge
	// timestamps. It never blocks beyond the window plus fixed read
	// overhead. A sample with zero complete periods is returned with
	// Valid set to false, it is not an error.
	SampleInput(window time.Duration) WaveformSample

	Close() error
}
