package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWindowMedian(t *testing.T) {
	// GIVEN
	window := CreateRollingWindow(5)
	for _, value := range []float64{1, 2, 3, 4, 5} {
		window.Append(value)
	}

	// WHEN
	median := WindowMedian(window)

	// THEN
	assert.Equal(t, 3.0, median)
}

func TestFillWindow(t *testing.T) {
	// GIVEN
	window := CreateRollingWindow(10)

	// WHEN
	FillWindow(window, 10, 7.5)

	// THEN
	assert.Equal(t, 7.5, WindowMedian(window))
	assert.Equal(t, 7.5, WindowAvg(window))
}
