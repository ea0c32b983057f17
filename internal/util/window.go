package util

import "github.com/asecurityteam/rolling"

func CreateRollingWindow(size int) *rolling.PointPolicy {
	return rolling.NewPointPolicy(rolling.NewWindow(size))
}

// FillWindow completely fills the given window with the given value
func FillWindow(window *rolling.PointPolicy, size int, value float64) {
	for i := 0; i < size; i++ {
		window.Append(value)
	}
}

// WindowMedian returns the 50th percentile of the values currently in the window
func WindowMedian(window *rolling.PointPolicy) float64 {
	return window.Reduce(rolling.Percentile(50))
}

// WindowAvg returns the average of the values currently in the window
func WindowAvg(window *rolling.PointPolicy) float64 {
	return window.Reduce(rolling.Avg)
}
