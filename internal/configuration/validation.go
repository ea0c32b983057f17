package configuration

import (
	"errors"
	"fmt"
	"strings"

	"github.com/looplab/tarjan"
	"github.com/wavefan/wavefan/internal/ui"
	"github.com/wavefan/wavefan/internal/waveio"
	"golang.org/x/exp/slices"
)

func Validate() error {
	return validateConfig(&CurrentConfig)
}

func validateConfig(config *Configuration) error {
	err := validateInputs(config)
	if err != nil {
		return err
	}
	err = validateCurves(config)
	if err != nil {
		return err
	}
	return validateChannels(config)
}

func validateInputs(config *Configuration) error {
	for _, inputConfig := range config.Inputs {
		subConfigs := 0
		if inputConfig.File != nil {
			subConfigs++
		}
		if inputConfig.Cmd != nil {
			subConfigs++
		}
		if inputConfig.Static != nil {
			subConfigs++
		}
		if subConfigs > 1 {
			return fmt.Errorf("input %s: only one input type can be used per input definition block", inputConfig.ID)
		}
		if subConfigs <= 0 {
			return fmt.Errorf("input %s: sub-configuration for input is missing, use one of: file | cmd | static", inputConfig.ID)
		}

		if !isInputConfigInUse(inputConfig, config.Curves) {
			ui.Warning("Unused input configuration: %s", inputConfig.ID)
		}

		if inputConfig.File != nil && len(inputConfig.File.Path) <= 0 {
			return fmt.Errorf("input %s: file input is missing a path", inputConfig.ID)
		}
		if inputConfig.Cmd != nil && len(inputConfig.Cmd.Exec) <= 0 {
			return fmt.Errorf("input %s: cmd input is missing an executable", inputConfig.ID)
		}
	}

	return nil
}

func isInputConfigInUse(config InputConfig, curves []CurveConfig) bool {
	for _, curveConfig := range curves {
		if curveConfig.Points != nil && curveConfig.Points.Input == config.ID {
			return true
		}
	}
	return false
}

func validateCurves(config *Configuration) error {
	graph := make(map[interface{}][]interface{})

	for _, curveConfig := range config.Curves {
		subConfigs := 0
		if curveConfig.Points != nil {
			subConfigs++
		}
		if curveConfig.Function != nil {
			subConfigs++
		}
		if subConfigs > 1 {
			return fmt.Errorf("curve %s: only one curve type can be used per curve definition block", curveConfig.ID)
		}
		if subConfigs <= 0 {
			return fmt.Errorf("curve %s: sub-configuration for curve is missing, use one of: points | function", curveConfig.ID)
		}

		if !isCurveConfigInUse(curveConfig, config.Curves, config.Channels) {
			ui.Warning("Unused curve configuration: %s", curveConfig.ID)
		}

		if curveConfig.Points != nil {
			err := validateCurvePoints(curveConfig)
			if err != nil {
				return err
			}

			if len(curveConfig.Points.Input) <= 0 {
				return fmt.Errorf("curve %s: missing input id", curveConfig.ID)
			}
			if !inputIdExists(curveConfig.Points.Input, config) {
				return fmt.Errorf("curve %s: no input definition with id '%s' found", curveConfig.ID, curveConfig.Points.Input)
			}
		}

		if curveConfig.Function != nil {
			supportedTypes := []string{FunctionMinimum, FunctionMaximum, FunctionAverage}
			if !slices.Contains(supportedTypes, curveConfig.Function.Type) {
				return fmt.Errorf("curve %s: unsupported function type '%s', use one of: %s", curveConfig.ID, curveConfig.Function.Type, strings.Join(supportedTypes, " | "))
			}
			if len(curveConfig.Function.Curves) <= 0 {
				return fmt.Errorf("curve %s: function curve must reference at least one curve", curveConfig.ID)
			}

			var connections []interface{}
			for _, curve := range curveConfig.Function.Curves {
				if curve == curveConfig.ID {
					return fmt.Errorf("curve %s: a curve cannot reference itself", curveConfig.ID)
				}
				if !curveIdExists(curve, config) {
					return fmt.Errorf("curve %s: no curve definition with id '%s' found", curveConfig.ID, curve)
				}
				connections = append(connections, curve)
			}
			graph[curveConfig.ID] = connections
		}
	}

	err := validateNoLoops(graph)
	return err
}

// validateCurvePoints checks that the control points of a points curve are
// strictly increasing in input and monotonically non-decreasing in duty,
// with every duty inside [0..1].
func validateCurvePoints(curveConfig CurveConfig) error {
	points := curveConfig.Points.Points
	if len(points) <= 0 {
		return fmt.Errorf("curve %s: at least one control point is required", curveConfig.ID)
	}

	for idx, point := range points {
		if point.Duty < 0 || point.Duty > 1 {
			return fmt.Errorf("curve %s: duty cycle %f of point %d is outside [0..1]", curveConfig.ID, point.Duty, idx)
		}
		if idx == 0 {
			continue
		}
		previous := points[idx-1]
		if point.Input <= previous.Input {
			return fmt.Errorf("curve %s: control point inputs must be strictly increasing, got %f after %f", curveConfig.ID, point.Input, previous.Input)
		}
		if point.Duty < previous.Duty {
			return fmt.Errorf("curve %s: duty cycles must be monotonically non-decreasing, got %f after %f", curveConfig.ID, point.Duty, previous.Duty)
		}
	}

	return nil
}

func validateNoLoops(graph map[interface{}][]interface{}) error {
	output := tarjan.Connections(graph)
	for _, items := range output {
		if len(items) > 1 {
			return errors.New(fmt.Sprintf("You have created a curve dependency cycle: %v", items))
		}
	}
	return nil
}

func isCurveConfigInUse(config CurveConfig, curves []CurveConfig, channels []ChannelConfig) bool {
	for _, channelConfig := range channels {
		if channelConfig.Curve == config.ID {
			return true
		}
	}
	for _, curveConfig := range curves {
		if curveConfig.Function != nil && slices.Contains(curveConfig.Function.Curves, config.ID) {
			return true
		}
	}
	return false
}

func validateChannels(config *Configuration) error {
	usedDriveLines := map[string]string{}
	usedSenseLines := map[string]string{}
	ids := map[string]bool{}

	for _, channelConfig := range config.Channels {
		if len(channelConfig.ID) <= 0 {
			return errors.New("channel is missing an id")
		}
		if ids[channelConfig.ID] {
			return fmt.Errorf("duplicate channel id: %s", channelConfig.ID)
		}
		ids[channelConfig.ID] = true

		if len(channelConfig.Curve) <= 0 {
			return fmt.Errorf("channel %s: missing curve id", channelConfig.ID)
		}
		if !curveIdExists(channelConfig.Curve, config) {
			return fmt.Errorf("channel %s: no curve definition with id '%s' found", channelConfig.ID, channelConfig.Curve)
		}

		backend := channelConfig.Backend
		if backend != "" && backend != BackendGpio && backend != BackendSim {
			return fmt.Errorf("channel %s: unsupported backend '%s', use one of: %s | %s", channelConfig.ID, backend, BackendGpio, BackendSim)
		}

		frequency := channelConfig.Drive.FrequencyHz
		if frequency < waveio.MinFrequencyHz || frequency > waveio.MaxFrequencyHz {
			return fmt.Errorf("channel %s: drive frequency %f outside [%.0f..%.0f] Hz", channelConfig.ID, frequency, waveio.MinFrequencyHz, waveio.MaxFrequencyHz)
		}

		if channelConfig.MinSafeDuty < 0 || channelConfig.MinSafeDuty > 1 {
			return fmt.Errorf("channel %s: minSafeDuty %f outside [0..1]", channelConfig.ID, channelConfig.MinSafeDuty)
		}
		if channelConfig.StallDutyThreshold < 0 || channelConfig.StallDutyThreshold > 1 {
			return fmt.Errorf("channel %s: stallDutyThreshold %f outside [0..1]", channelConfig.ID, channelConfig.StallDutyThreshold)
		}
		if channelConfig.SlewMax < 0 || channelConfig.SlewMax > 1 {
			return fmt.Errorf("channel %s: slewMax %f outside [0..1]", channelConfig.ID, channelConfig.SlewMax)
		}

		policy := channelConfig.FaultPolicy
		if policy != "" && policy != FaultPolicyMinSafeDuty && policy != FaultPolicyOff {
			return fmt.Errorf("channel %s: unsupported fault policy '%s', use one of: %s | %s", channelConfig.ID, policy, FaultPolicyMinSafeDuty, FaultPolicyOff)
		}

		// no two logical fans may share a physical line
		driveKey := fmt.Sprintf("%s:%d", channelConfig.Drive.Chip, channelConfig.Drive.Line)
		if other, ok := usedDriveLines[driveKey]; ok {
			return fmt.Errorf("channel %s: drive line %s already bound to channel %s", channelConfig.ID, driveKey, other)
		}
		usedDriveLines[driveKey] = channelConfig.ID

		if channelConfig.Sense != nil {
			senseKey := fmt.Sprintf("%s:%d", channelConfig.Sense.Chip, channelConfig.Sense.Line)
			if other, ok := usedSenseLines[senseKey]; ok {
				return fmt.Errorf("channel %s: sense line %s already bound to channel %s", channelConfig.ID, senseKey, other)
			}
			usedSenseLines[senseKey] = channelConfig.ID
		}
	}

	return nil
}

func curveIdExists(id string, config *Configuration) bool {
	for _, curve := range config.Curves {
		if curve.ID == id {
			return true
		}
	}
	return false
}

func inputIdExists(id string, config *Configuration) bool {
	for _, input := range config.Inputs {
		if input.ID == id {
			return true
		}
	}
	return false
}
