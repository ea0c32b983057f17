package waveio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// buildEdges synthesizes edge timestamps for a square wave starting at the
// given tick, letting uint32 arithmetic wrap naturally.
func buildEdges(start uint32, period uint32, high uint32, periods int) []Edge {
	var edges []Edge
	for i := 0; i < periods; i++ {
		riseAt := start + uint32(i)*period
		edges = append(edges, Edge{Timestamp: riseAt, Rising: true})
		edges = append(edges, Edge{Timestamp: riseAt + high, Rising: false})
	}
	// closing rise completes the last period
	edges = append(edges, Edge{Timestamp: start + uint32(periods)*period, Rising: true})
	return edges
}

func TestTickDelta(t *testing.T) {
	// GIVEN
	earlier := uint32(100)
	later := uint32(350)

	// WHEN
	delta := TickDelta(earlier, later)

	// THEN
	assert.Equal(t, uint32(250), delta)
}

func TestTickDeltaAcrossWraparound(t *testing.T) {
	// GIVEN
	earlier := uint32(4294967196) // 100 ticks before wrap
	later := uint32(50)

	// WHEN
	delta := TickDelta(earlier, later)

	// THEN
	assert.Equal(t, uint32(150), delta)
}

func TestComputeSample(t *testing.T) {
	// GIVEN
	// 1 kHz at 30% duty
	edges := buildEdges(0, 1000, 300, 5)

	// WHEN
	sample := ComputeSample(edges)

	// THEN
	assert.True(t, sample.Valid)
	assert.InDelta(t, 1000.0, sample.FrequencyHz, 0.001)
	assert.InDelta(t, 0.3, sample.DutyCycle, 0.001)
}

func TestComputeSampleAcrossWraparound(t *testing.T) {
	// GIVEN
	// run starts 296 ticks before the 32 bit timestamp wraps
	edges := buildEdges(4294967000, 1000, 300, 5)

	// WHEN
	sample := ComputeSample(edges)

	// THEN
	assert.True(t, sample.Valid)
	assert.InDelta(t, 1000.0, sample.FrequencyHz, 0.001)
	assert.InDelta(t, 0.3, sample.DutyCycle, 0.001)
}

func TestComputeSampleResyncsToRisingEdge(t *testing.T) {
	// GIVEN
	// a partial period at the start of the window
	edges := append([]Edge{{Timestamp: 4294966800, Rising: false}}, buildEdges(0, 1000, 300, 5)...)

	// WHEN
	sample := ComputeSample(edges)

	// THEN
	assert.True(t, sample.Valid)
	assert.InDelta(t, 1000.0, sample.FrequencyHz, 0.001)
	assert.InDelta(t, 0.3, sample.DutyCycle, 0.001)
}

func TestComputeSampleFiltersGlitchedTimestamp(t *testing.T) {
	// GIVEN
	edges := buildEdges(0, 1000, 300, 20)
	// corrupt one period boundary far beyond the true period
	edges[20].Timestamp += 10000

	// WHEN
	sample := ComputeSample(edges)

	// THEN
	assert.True(t, sample.Valid)
	assert.InEpsilon(t, 1000.0, sample.FrequencyHz, 0.01)
	assert.InDelta(t, 0.3, sample.DutyCycle, 0.02)
}

func TestComputeSampleNoEdges(t *testing.T) {
	// WHEN
	sample := ComputeSample([]Edge{})

	// THEN
	assert.False(t, sample.Valid)
}

func TestComputeSampleNoCompletePeriod(t *testing.T) {
	// GIVEN
	// one rising and one falling edge, no closing rise
	edges := []Edge{
		{Timestamp: 0, Rising: true},
		{Timestamp: 300, Rising: false},
	}

	// WHEN
	sample := ComputeSample(edges)

	// THEN
	assert.False(t, sample.Valid)
}
