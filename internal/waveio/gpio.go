package waveio

import (
	"sync"
	"time"

	"github.com/warthog618/go-gpiocdev"
	"github.com/wavefan/wavefan/internal/ui"
)

const edgeBufferSize = 4096

// GpioPeripheral implements Peripheral on top of the Linux GPIO character
// device.
//
// The sense line is captured through kernel edge events, whose timestamps
// come from the kernel's monotonic clock rather than this process, so
// measurement jitter stays within hardware/kernel tolerance. The drive
// line is toggled by a dedicated timing goroutine, which bounds the
// practical output frequency well below MaxFrequencyHz but covers the low
// frequency drive range fans are driven at.
type GpioPeripheral struct {
	channelID string

	drive *gpiocdev.Line
	sense *gpiocdev.Line

	edges chan Edge

	cmdMu   sync.Mutex
	current WaveformCommand
	pending *WaveformCommand

	stop chan struct{}
	done chan struct{}
}

func NewGpioPeripheral(channelID string, driveChip string, driveLine int, senseChip string, senseLine int, hasSense bool) (*GpioPeripheral, error) {
	p := &GpioPeripheral{
		channelID: channelID,
		edges:     make(chan Edge, edgeBufferSize),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}

	drive, err := gpiocdev.RequestLine(driveChip, driveLine, gpiocdev.AsOutput(0))
	if err != nil {
		return nil, &HardwareError{Channel: channelID, Op: "request drive line", Err: err}
	}
	p.drive = drive

	if hasSense {
		sense, err := gpiocdev.RequestLine(senseChip, senseLine,
			gpiocdev.AsInput,
			gpiocdev.WithBothEdges,
			gpiocdev.WithEventHandler(p.handleEdge))
		if err != nil {
			_ = drive.Close()
			return nil, &HardwareError{Channel: channelID, Op: "request sense line", Err: err}
		}
		p.sense = sense
	}

	go p.runToggler()

	return p, nil
}

func (p *GpioPeripheral) handleEdge(event gpiocdev.LineEvent) {
	edge := Edge{
		Timestamp: nanosToTicks(event.Timestamp),
		Rising:    event.Type == gpiocdev.LineEventRisingEdge,
	}
	select {
	case p.edges <- edge:
	default:
		// buffer full, dropping is safe: a lost edge at most costs one
		// period, which the next sampling window recovers
	}
}

func (p *GpioPeripheral) ConfigureOutput(command WaveformCommand) error {
	if err := command.Validate(); err != nil {
		return &HardwareError{Channel: p.channelID, Op: "configure output", Err: err}
	}

	p.cmdMu.Lock()
	defer p.cmdMu.Unlock()
	if p.pending != nil {
		return &HardwareError{Channel: p.channelID, Op: "configure output", Err: ErrChannelBusy}
	}
	p.pending = &command
	return nil
}

func (p *GpioPeripheral) SampleInput(window time.Duration) WaveformSample {
	if p.sense == nil {
		return WaveformSample{}
	}

	// drain stale edges captured before this window
	for {
		select {
		case <-p.edges:
			continue
		default:
		}
		break
	}

	var edges []Edge
	deadline := time.NewTimer(window)
	defer deadline.Stop()

	for {
		select {
		case edge := <-p.edges:
			edges = append(edges, edge)
		case <-deadline.C:
			return ComputeSample(edges)
		}
	}
}

// runToggler owns the drive line. A pending command is swapped in only at
// a period boundary of the old waveform so no partial-period glitch is
// emitted at the transition.
func (p *GpioPeripheral) runToggler() {
	defer close(p.done)

	for {
		select {
		case <-p.stop:
			_ = p.drive.SetValue(0)
			return
		default:
		}

		p.cmdMu.Lock()
		if p.pending != nil {
			p.current = *p.pending
			p.pending = nil
		}
		command := p.current
		p.cmdMu.Unlock()

		if command.FrequencyHz <= 0 || command.DutyCycle <= 0 {
			if err := p.drive.SetValue(0); err != nil {
				ui.Warning("channel %s: unable to write drive line: %v", p.channelID, err)
			}
			p.sleepInterruptible(10 * time.Millisecond)
			continue
		}
		if command.DutyCycle >= 1 {
			if err := p.drive.SetValue(1); err != nil {
				ui.Warning("channel %s: unable to write drive line: %v", p.channelID, err)
			}
			p.sleepInterruptible(10 * time.Millisecond)
			continue
		}

		period := time.Duration(float64(time.Second) / command.FrequencyHz)
		highTime := time.Duration(float64(period) * command.DutyCycle)

		_ = p.drive.SetValue(1)
		p.sleepInterruptible(highTime)
		_ = p.drive.SetValue(0)
		p.sleepInterruptible(period - highTime)
	}
}

func (p *GpioPeripheral) sleepInterruptible(duration time.Duration) {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-p.stop:
	}
}

func (p *GpioPeripheral) Close() error {
	close(p.stop)
	<-p.done

	err := p.drive.Close()
	if p.sense != nil {
		if senseErr := p.sense.Close(); err == nil {
			err = senseErr
		}
	}
	return err
}

// nanosToTicks converts a kernel monotonic timestamp to the wrapping 32 bit
// tick domain.
func nanosToTicks(timestamp time.Duration) uint32 {
	const nanosPerTick = uint64(time.Second) / TickClockHz
	return uint32(uint64(timestamp.Nanoseconds()) / nanosPerTick)
}
