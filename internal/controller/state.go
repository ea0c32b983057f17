package controller

import (
	"github.com/wavefan/wavefan/internal/waveio"
)

// RuntimeState is the mutable per-channel state, exclusively owned and
// mutated by the FanController.
type RuntimeState struct {
	CommandedDuty float64                `json:"commandedDuty"`
	LastSample    waveio.WaveformSample  `json:"lastSample"`
	Stalled       bool                   `json:"stalled"`
	Faulted       bool                   `json:"faulted"`
	LastUpdateTick uint64                `json:"lastUpdateTick"`

	// EffectiveStallThreshold starts at the configured threshold and is
	// raised when a stall is observed at a higher duty
	EffectiveStallThreshold float64 `json:"effectiveStallThreshold"`

	// duty override pinned by an external caller, nil when curve controlled
	DutyOverride *float64 `json:"dutyOverride,omitempty"`

	lastCommandChangeTick uint64
	configFailStreak      int
	kickTicksLeft         int
}

// Snapshot is a read-only copy of a channel's runtime state, safe to hand
// out to telemetry and API consumers.
type Snapshot struct {
	ChannelId               string                `json:"channelId"`
	CommandedDuty           float64               `json:"commandedDuty"`
	LastSample              waveio.WaveformSample `json:"lastSample"`
	Stalled                 bool                  `json:"stalled"`
	Faulted                 bool                  `json:"faulted"`
	EffectiveStallThreshold float64               `json:"effectiveStallThreshold"`
	DutyOverride            *float64              `json:"dutyOverride,omitempty"`
	LastUpdateTick          uint64                `json:"lastUpdateTick"`
}
