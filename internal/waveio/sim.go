package waveio

import (
	"math/rand"
	"sync"
	"time"
)

// SimPeripheral is a deterministic, hardware-free Peripheral backend.
//
// The sense side is a loopback of the drive side: sampling returns a
// measurement of the waveform most recently configured, as if the drive
// line was wired to the sense line. Jitter and glitch injection exist to
// exercise the measurement arithmetic, ForceInvalid simulates a stalled
// fan whose tachometer has gone silent.
type SimPeripheral struct {
	mu sync.Mutex

	channelID  string
	command    WaveformCommand
	configured bool

	// now is the simulated tick clock, advanced by every sampling window
	now float64

	// Busy makes ConfigureOutput fail with ErrChannelBusy
	Busy bool
	// FailConfigures makes the next n calls to ConfigureOutput fail
	FailConfigures int
	// ForceInvalid makes SampleInput return invalid samples
	ForceInvalid bool

	// JitterFraction offsets each edge by up to this fraction of a period
	JitterFraction float64
	// GlitchEveryNPeriods corrupts one edge timestamp every n periods
	GlitchEveryNPeriods int

	rng *rand.Rand

	configureCalls int
}

func NewSimPeripheral(channelID string) *SimPeripheral {
	return &SimPeripheral{
		channelID: channelID,
		rng:       rand.New(rand.NewSource(42)),
	}
}

func (p *SimPeripheral) ConfigureOutput(command WaveformCommand) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := command.Validate(); err != nil {
		return &HardwareError{Channel: p.channelID, Op: "configure output", Err: err}
	}
	if p.Busy {
		return &HardwareError{Channel: p.channelID, Op: "configure output", Err: ErrChannelBusy}
	}
	if p.FailConfigures > 0 {
		p.FailConfigures--
		return &HardwareError{Channel: p.channelID, Op: "configure output", Err: ErrChannelBusy}
	}

	// a new command takes effect at a period boundary, which the sim
	// models by only ever synthesizing whole periods per window
	p.command = command
	p.configured = true
	p.configureCalls++
	return nil
}

// ConfigureCalls returns how often ConfigureOutput succeeded.
func (p *SimPeripheral) ConfigureCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.configureCalls
}

// Command returns the currently active output command.
func (p *SimPeripheral) Command() (WaveformCommand, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.command, p.configured
}

func (p *SimPeripheral) SampleInput(window time.Duration) WaveformSample {
	p.mu.Lock()
	defer p.mu.Unlock()

	windowTicks := window.Seconds() * TickClockHz
	start := p.now
	p.now += windowTicks

	if !p.configured || p.ForceInvalid {
		return WaveformSample{}
	}

	duty := p.command.DutyCycle
	if duty <= 0 || duty >= 1 {
		// a flat line has no edges and therefore no complete periods
		return WaveformSample{}
	}

	period := TickClockHz / p.command.FrequencyHz
	high := period * duty

	periods := int(windowTicks / period)
	if periods <= 0 {
		return WaveformSample{}
	}

	var edges []Edge
	for i := 0; i <= periods; i++ {
		riseAt := start + float64(i)*period
		if p.JitterFraction > 0 {
			riseAt += (p.rng.Float64()*2 - 1) * p.JitterFraction * period
		}
		if p.GlitchEveryNPeriods > 0 && i > 1 && i%p.GlitchEveryNPeriods == 0 {
			// a corrupt timestamp stretches this period boundary far
			// beyond the true period
			riseAt += 10 * period
		}
		edges = append(edges, Edge{Timestamp: wrapTicks(riseAt), Rising: true})

		if i == periods {
			// closing edge only, the last period is complete
			break
		}
		fallAt := start + float64(i)*period + high
		if p.JitterFraction > 0 {
			fallAt += (p.rng.Float64()*2 - 1) * p.JitterFraction * period
		}
		edges = append(edges, Edge{Timestamp: wrapTicks(fallAt), Rising: false})
	}

	return ComputeSample(edges)
}

func (p *SimPeripheral) Close() error {
	return nil
}

func wrapTicks(t float64) uint32 {
	return uint32(uint64(t))
}
