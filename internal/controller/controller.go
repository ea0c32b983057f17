package controller

import (
	"math"
	"sync"
	"time"

	"github.com/wavefan/wavefan/internal/channels"
	"github.com/wavefan/wavefan/internal/curves"
	"github.com/wavefan/wavefan/internal/persistence"
	"github.com/wavefan/wavefan/internal/ui"
	"github.com/wavefan/wavefan/internal/util"
	"github.com/wavefan/wavefan/internal/waveio"
)

type FanController interface {
	// Sample observes the channel's tachometer line for up to window and
	// records the result as the channel's most recent sample
	Sample(window time.Duration) waveio.WaveformSample

	// Update runs one control tick: curve evaluation, stall avoidance,
	// slew limiting and output configuration
	Update() error

	// SetDutyOverride pins the channel to a fixed duty cycle, nil returns
	// it to curve control
	SetDutyOverride(duty *float64)

	Snapshot() Snapshot
}

type fanController struct {
	mu sync.Mutex

	persistence persistence.Persistence
	channel     *channels.Channel
	curve       curves.SpeedCurve
	state       RuntimeState
}

func NewFanController(pers persistence.Persistence, channel *channels.Channel) FanController {
	curve, _ := curves.GetSpeedCurve(channel.GetCurveId())

	f := &fanController{
		persistence: pers,
		channel:     channel,
		curve:       curve,
		state: RuntimeState{
			EffectiveStallThreshold: channel.StallDutyThreshold(),
		},
	}

	if pers != nil {
		learned, err := pers.LoadStallThreshold(channel.GetId())
		if err == nil && learned > f.state.EffectiveStallThreshold {
			ui.Info("Restoring learned stall threshold %.3f for channel '%s'", learned, channel.GetId())
			f.state.EffectiveStallThreshold = learned
		}
	}

	return f
}

func (f *fanController) Sample(window time.Duration) waveio.WaveformSample {
	sample := f.channel.Peripheral.SampleInput(window)

	f.mu.Lock()
	f.state.LastSample = sample
	f.mu.Unlock()

	return sample
}

func (f *fanController) Update() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.state.LastUpdateTick++
	tick := f.state.LastUpdateTick

	target, err := f.targetDuty()
	if err != nil {
		return err
	}

	if target <= 0 {
		// explicit off is always honored, bypassing slew and stall history
		f.setCommandedDuty(0, tick)
		f.state.Stalled = false
		f.state.kickTicksLeft = 0
		return f.applyCommand()
	}

	sample := f.state.LastSample
	channel := f.channel

	if sample.Valid {
		if f.state.Stalled {
			ui.Info("Channel '%s' is rotating again at duty %.3f", channel.GetId(), f.state.CommandedDuty)
		}
		f.state.Stalled = false
	} else if f.channel.HasSense() &&
		f.state.CommandedDuty > 0 &&
		tick-f.state.lastCommandChangeTick >= uint64(channel.StallDebounceTicks()) {
		// the fan had time to settle at this duty and still reports no
		// rotation
		if !f.state.Stalled {
			ui.Warning("Channel '%s' stalled at duty %.3f", channel.GetId(), f.state.CommandedDuty)
		}
		f.state.Stalled = true
		f.learnStallThreshold(f.state.CommandedDuty)
	}

	if f.state.CommandedDuty == 0 && target < f.state.EffectiveStallThreshold {
		// cold start: a stopped fan cannot spin up below the stall
		// threshold, kick it first
		f.state.kickTicksLeft = channel.ColdStartKickTicks()
	}

	var commanded float64
	if f.state.Stalled {
		// refuse to command a duty known too low to sustain rotation
		commanded = math.Max(target, f.state.EffectiveStallThreshold)
		commanded = util.Coerce(commanded, channel.MinSafeDuty(), 1)
	} else {
		if f.state.kickTicksLeft > 0 {
			f.state.kickTicksLeft--
			target = math.Max(target, f.state.EffectiveStallThreshold)
		}
		commanded = f.slewLimited(target)
	}

	f.setCommandedDuty(commanded, tick)
	return f.applyCommand()
}

// targetDuty evaluates the channel's speed curve, or the pinned override
// if one is set.
func (f *fanController) targetDuty() (float64, error) {
	if f.state.DutyOverride != nil {
		return util.Coerce(*f.state.DutyOverride, 0, 1), nil
	}

	target, err := f.curve.Evaluate()
	if err != nil {
		return 0, err
	}
	return util.Coerce(target, 0, 1), nil
}

// slewLimited approaches target from the current commanded duty without
// exceeding the per-tick slew limit, keeping duty changes below the level
// of audible noise modulation.
func (f *fanController) slewLimited(target float64) float64 {
	slewMax := f.channel.SlewMax()
	delta := target - f.state.CommandedDuty
	if math.Abs(delta) <= slewMax {
		return target
	}
	if delta > 0 {
		return f.state.CommandedDuty + slewMax
	}
	return f.state.CommandedDuty - slewMax
}

func (f *fanController) setCommandedDuty(duty float64, tick uint64) {
	if duty != f.state.CommandedDuty {
		f.state.lastCommandChangeTick = tick
	}
	f.state.CommandedDuty = duty
}

// applyCommand pushes the commanded duty to the waveform peripheral. A
// rejected configuration is retried on the next tick, persistent rejection
// escalates to a fault and forces the channel to its safe default.
func (f *fanController) applyCommand() error {
	channel := f.channel
	command := waveio.WaveformCommand{
		FrequencyHz: channel.DriveFrequencyHz(),
		DutyCycle:   f.state.CommandedDuty,
	}

	err := channel.Peripheral.ConfigureOutput(command)
	if err == nil {
		f.state.configFailStreak = 0
		if f.state.Faulted {
			ui.Info("Channel '%s' recovered from fault state", channel.GetId())
			f.state.Faulted = false
		}
		return nil
	}

	f.state.configFailStreak++
	ui.Warning("Channel '%s': output configuration rejected (%d consecutive): %v", channel.GetId(), f.state.configFailStreak, err)

	if f.state.configFailStreak >= channel.FaultThreshold() && !f.state.Faulted {
		f.state.Faulted = true
		safeDuty := 0.0
		if channel.FaultPolicy() != "off" {
			safeDuty = channel.MinSafeDuty()
		}
		ui.Error("Channel '%s' entered fault state, forcing duty %.3f", channel.GetId(), safeDuty)
		f.state.CommandedDuty = safeDuty
		// best effort, the peripheral may still reject it
		_ = channel.Peripheral.ConfigureOutput(waveio.WaveformCommand{
			FrequencyHz: channel.DriveFrequencyHz(),
			DutyCycle:   safeDuty,
		})
	}
	return err
}

// learnStallThreshold raises the effective stall threshold when a stall
// was observed at a duty the configured threshold claimed to be safe.
func (f *fanController) learnStallThreshold(stalledAtDuty float64) {
	if stalledAtDuty <= f.state.EffectiveStallThreshold {
		return
	}
	ui.Info("Channel '%s': raising stall threshold %.3f -> %.3f", f.channel.GetId(), f.state.EffectiveStallThreshold, stalledAtDuty)
	f.state.EffectiveStallThreshold = stalledAtDuty

	if f.persistence != nil {
		err := f.persistence.SaveStallThreshold(f.channel.GetId(), stalledAtDuty)
		if err != nil {
			ui.Warning("Channel '%s': unable to persist stall threshold: %v", f.channel.GetId(), err)
		}
	}
}

func (f *fanController) SetDutyOverride(duty *float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.DutyOverride = duty
}

func (f *fanController) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	return Snapshot{
		ChannelId:               f.channel.GetId(),
		CommandedDuty:           f.state.CommandedDuty,
		LastSample:              f.state.LastSample,
		Stalled:                 f.state.Stalled,
		Faulted:                 f.state.Faulted,
		EffectiveStallThreshold: f.state.EffectiveStallThreshold,
		DutyOverride:            f.state.DutyOverride,
		LastUpdateTick:          f.state.LastUpdateTick,
	}
}
