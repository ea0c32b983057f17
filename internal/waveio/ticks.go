package waveio

import (
	"github.com/wavefan/wavefan/internal/util"
)

const (
	// TickClockHz is the fixed virtual tick clock all timing arithmetic is
	// performed in. Edge timestamps are 32 bit tick counts and wrap at
	// 2^32 ticks (~71.6 minutes at 1 MHz).
	TickClockHz = 1_000_000

	// glitchFilterFactor rejects periods longer than this multiple of the
	// running median period, filtering single corrupt edge timestamps.
	glitchFilterFactor = 3.0

	medianWindowSize = 16
)

// Edge is a single timestamped signal transition on a sense line.
type Edge struct {
	// Timestamp in ticks of TickClockHz, wraps at 2^32
	Timestamp uint32
	Rising    bool
}

// TickDelta returns the number of ticks elapsed between two wrapping 32 bit
// timestamps. Unsigned subtraction keeps the result correct across a single
// wraparound, a spuriously negative period cannot occur.
func TickDelta(earlier uint32, later uint32) uint32 {
	return later - earlier
}

// ComputeSample reduces a run of edge timestamps into a WaveformSample.
//
// Only complete periods (rising edge to rising edge) contribute. Periods
// outside glitchFilterFactor times the running median are discarded instead
// of surfaced as errors. With zero complete periods the sample is returned
// with Valid=false.
func ComputeSample(edges []Edge) WaveformSample {
	var (
		periodSum uint64
		highSum   uint64
		count     int
	)

	medianWindow := util.CreateRollingWindow(medianWindowSize)
	windowFill := 0

	i := 0
	for i < len(edges) {
		// resync to the next rising edge
		if !edges[i].Rising {
			i++
			continue
		}
		if i+2 >= len(edges) {
			break
		}
		fall := edges[i+1]
		rise := edges[i+2]
		if fall.Rising || !rise.Rising {
			// out of sequence, drop and resync
			i++
			continue
		}

		high := uint64(TickDelta(edges[i].Timestamp, fall.Timestamp))
		period := uint64(TickDelta(edges[i].Timestamp, rise.Timestamp))
		i += 2

		if period == 0 || high > period {
			continue
		}

		if windowFill > 0 {
			median := util.WindowMedian(medianWindow)
			if float64(period) > glitchFilterFactor*median {
				continue
			}
		}
		medianWindow.Append(float64(period))
		if windowFill < medianWindowSize {
			windowFill++
		}

		periodSum += period
		highSum += high
		count++
	}

	if count == 0 {
		return WaveformSample{}
	}

	meanPeriod := float64(periodSum) / float64(count)
	meanHigh := float64(highSum) / float64(count)

	return WaveformSample{
		FrequencyHz: TickClockHz / meanPeriod,
		DutyCycle:   meanHigh / meanPeriod,
		Valid:       true,
	}
}
