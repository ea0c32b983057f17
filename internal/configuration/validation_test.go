package configuration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() Configuration {
	return Configuration{
		Inputs: []InputConfig{
			{
				ID:     "cooling_request",
				Static: &StaticInputConfig{Value: 40},
			},
		},
		Curves: []CurveConfig{
			{
				ID: "case_curve",
				Points: &PointsCurveConfig{
					Input: "cooling_request",
					Points: []CurvePoint{
						{Input: 0, Duty: 0.0},
						{Input: 50, Duty: 0.3},
						{Input: 100, Duty: 1.0},
					},
				},
			},
		},
		Channels: []ChannelConfig{
			{
				ID:      "case_fan",
				Backend: BackendSim,
				Drive: DriveConfig{
					Chip:        "gpiochip0",
					Line:        18,
					FrequencyHz: 25000,
				},
				Sense: &SenseConfig{
					Chip: "gpiochip0",
					Line: 23,
				},
				Curve:              "case_curve",
				MinSafeDuty:        0.2,
				StallDutyThreshold: 0.3,
			},
		},
	}
}

func TestValidateValidConfig(t *testing.T) {
	// GIVEN
	config := validConfig()

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.NoError(t, err)
}

func TestValidateInputWithoutType(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Inputs[0].Static = nil

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.Error(t, err)
}

func TestValidateInputWithMultipleTypes(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Inputs[0].File = &FileInputConfig{Path: "/tmp/value"}

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.Error(t, err)
}

func TestValidateCurvePointsNotStrictlyIncreasing(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Curves[0].Points.Points = []CurvePoint{
		{Input: 0, Duty: 0.0},
		{Input: 50, Duty: 0.3},
		{Input: 50, Duty: 0.5},
	}

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.Error(t, err)
}

func TestValidateCurvePointsDecreasingDuty(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Curves[0].Points.Points = []CurvePoint{
		{Input: 0, Duty: 0.5},
		{Input: 50, Duty: 0.3},
	}

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.Error(t, err)
}

func TestValidateCurvePointsDutyOutsideRange(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Curves[0].Points.Points = []CurvePoint{
		{Input: 0, Duty: 0.0},
		{Input: 50, Duty: 1.5},
	}

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.Error(t, err)
}

func TestValidateCurveUnknownInput(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Curves[0].Points.Input = "does_not_exist"

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.Error(t, err)
}

func TestValidateCurveDependencyCycle(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Curves = append(config.Curves,
		CurveConfig{
			ID: "function_a",
			Function: &FunctionCurveConfig{
				Type:   FunctionMaximum,
				Curves: []string{"function_b"},
			},
		},
		CurveConfig{
			ID: "function_b",
			Function: &FunctionCurveConfig{
				Type:   FunctionMaximum,
				Curves: []string{"function_a"},
			},
		},
	)

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.Error(t, err)
}

func TestValidateCurveSelfReference(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Curves = append(config.Curves, CurveConfig{
		ID: "selfish",
		Function: &FunctionCurveConfig{
			Type:   FunctionMinimum,
			Curves: []string{"selfish"},
		},
	})

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.Error(t, err)
}

func TestValidateDuplicateChannelId(t *testing.T) {
	// GIVEN
	config := validConfig()
	second := config.Channels[0]
	second.Drive.Line = 19
	second.Sense = &SenseConfig{Chip: "gpiochip0", Line: 24}
	config.Channels = append(config.Channels, second)

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.Error(t, err)
}

func TestValidateDuplicateDriveLine(t *testing.T) {
	// GIVEN
	config := validConfig()
	second := config.Channels[0]
	second.ID = "other_fan"
	second.Sense = &SenseConfig{Chip: "gpiochip0", Line: 24}
	config.Channels = append(config.Channels, second)

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.Error(t, err)
}

func TestValidateDuplicateSenseLine(t *testing.T) {
	// GIVEN
	config := validConfig()
	second := config.Channels[0]
	second.ID = "other_fan"
	second.Drive.Line = 19

	// second channel reuses the first channel's sense line
	config.Channels = append(config.Channels, second)

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.Error(t, err)
}

func TestValidateDriveFrequencyOutsideRange(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Channels[0].Drive.FrequencyHz = 200000

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.Error(t, err)
}

func TestValidateUnknownBackend(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Channels[0].Backend = "spi"

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.Error(t, err)
}

func TestValidateUnknownCurveReference(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Channels[0].Curve = "does_not_exist"

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.Error(t, err)
}

func TestValidateUnknownFaultPolicy(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Channels[0].FaultPolicy = "explode"

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.Error(t, err)
}
