package waveio

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSimRoundTrip(t *testing.T) {
	// GIVEN
	commands := []WaveformCommand{
		{FrequencyHz: 10, DutyCycle: 0.25},
		{FrequencyHz: 25, DutyCycle: 0.5},
		{FrequencyHz: 1000, DutyCycle: 0.3},
		{FrequencyHz: 1000, DutyCycle: 0.9},
		{FrequencyHz: 25000, DutyCycle: 0.5},
		{FrequencyHz: 100000, DutyCycle: 0.5},
	}

	for _, command := range commands {
		sim := NewSimPeripheral("sim")

		// WHEN
		err := sim.ConfigureOutput(command)
		assert.NoError(t, err)

		window := time.Second
		sample := sim.SampleInput(window)

		// THEN
		assert.True(t, sample.Valid)
		assert.InEpsilon(t, command.FrequencyHz, sample.FrequencyHz, 0.01)
		assert.InDelta(t, command.DutyCycle, sample.DutyCycle, 0.02)
	}
}

func TestSimRoundTripWithJitter(t *testing.T) {
	// GIVEN
	sim := NewSimPeripheral("sim")
	sim.JitterFraction = 0.05

	command := WaveformCommand{FrequencyHz: 1000, DutyCycle: 0.5}
	assert.NoError(t, sim.ConfigureOutput(command))

	// WHEN
	sample := sim.SampleInput(time.Second)

	// THEN
	assert.True(t, sample.Valid)
	assert.InEpsilon(t, command.FrequencyHz, sample.FrequencyHz, 0.01)
	assert.InDelta(t, command.DutyCycle, sample.DutyCycle, 0.02)
}

func TestSimRoundTripWithGlitches(t *testing.T) {
	// GIVEN
	sim := NewSimPeripheral("sim")
	sim.GlitchEveryNPeriods = 10

	command := WaveformCommand{FrequencyHz: 1000, DutyCycle: 0.3}
	assert.NoError(t, sim.ConfigureOutput(command))

	// WHEN
	sample := sim.SampleInput(time.Second)

	// THEN
	assert.True(t, sample.Valid)
	assert.InEpsilon(t, command.FrequencyHz, sample.FrequencyHz, 0.01)
	assert.InDelta(t, command.DutyCycle, sample.DutyCycle, 0.02)
}

func TestSimUnconfiguredSampleIsInvalid(t *testing.T) {
	// GIVEN
	sim := NewSimPeripheral("sim")

	// WHEN
	sample := sim.SampleInput(time.Second)

	// THEN
	assert.False(t, sample.Valid)
}

func TestSimForceInvalid(t *testing.T) {
	// GIVEN
	sim := NewSimPeripheral("sim")
	assert.NoError(t, sim.ConfigureOutput(WaveformCommand{FrequencyHz: 1000, DutyCycle: 0.5}))
	sim.ForceInvalid = true

	// WHEN
	sample := sim.SampleInput(time.Second)

	// THEN
	assert.False(t, sample.Valid)
}

func TestSimFlatLineHasNoEdges(t *testing.T) {
	// GIVEN
	sim := NewSimPeripheral("sim")
	assert.NoError(t, sim.ConfigureOutput(WaveformCommand{FrequencyHz: 1000, DutyCycle: 0}))

	// WHEN
	sample := sim.SampleInput(time.Second)

	// THEN
	assert.False(t, sample.Valid)
}

func TestSimWindowShorterThanPeriodIsInvalid(t *testing.T) {
	// GIVEN
	sim := NewSimPeripheral("sim")
	assert.NoError(t, sim.ConfigureOutput(WaveformCommand{FrequencyHz: 1, DutyCycle: 0.5}))

	// WHEN
	sample := sim.SampleInput(100 * time.Millisecond)

	// THEN
	assert.False(t, sample.Valid)
}

func TestSimRejectsUnsupportedFrequency(t *testing.T) {
	// GIVEN
	sim := NewSimPeripheral("sim")

	// WHEN
	err := sim.ConfigureOutput(WaveformCommand{FrequencyHz: 200000, DutyCycle: 0.5})

	// THEN
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedFrequency))
}

func TestSimBusy(t *testing.T) {
	// GIVEN
	sim := NewSimPeripheral("sim")
	sim.Busy = true

	// WHEN
	err := sim.ConfigureOutput(WaveformCommand{FrequencyHz: 1000, DutyCycle: 0.5})

	// THEN
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrChannelBusy))

	var hwErr *HardwareError
	assert.True(t, errors.As(err, &hwErr))
	assert.Equal(t, "sim", hwErr.Channel)
}

func TestSimFailConfigures(t *testing.T) {
	// GIVEN
	sim := NewSimPeripheral("sim")
	sim.FailConfigures = 2

	command := WaveformCommand{FrequencyHz: 1000, DutyCycle: 0.5}

	// WHEN / THEN
	assert.Error(t, sim.ConfigureOutput(command))
	assert.Error(t, sim.ConfigureOutput(command))
	assert.NoError(t, sim.ConfigureOutput(command))
	assert.Equal(t, 1, sim.ConfigureCalls())
}
