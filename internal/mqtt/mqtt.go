// Package mqtt publishes channel state snapshots to an MQTT broker.
package mqtt

import (
	"encoding/json"
	"time"

	"github.com/wavefan/wavefan/internal/controller"
)

// Publisher publishes channel snapshots to MQTT.
type Publisher interface {
	// PublishSnapshot sends the runtime state of a single channel to the
	// broker. Returns an error if publishing fails, which must not take
	// down the control loop.
	PublishSnapshot(snapshot controller.Snapshot) error

	// Close disconnects from the broker.
	Close() error
}

// SnapshotPayload is the JSON message published for each channel.
type SnapshotPayload struct {
	Timestamp           string   `json:"timestamp"`
	Channel             string   `json:"channel"`
	CommandedDuty       float64  `json:"commandedDuty"`
	MeasuredFrequencyHz *float64 `json:"measuredFrequencyHz,omitempty"`
	MeasuredDuty        *float64 `json:"measuredDuty,omitempty"`
	Stalled             bool     `json:"stalled"`
	Faulted             bool     `json:"faulted"`
}

// FormatSnapshotPayload creates the JSON payload for a channel snapshot.
// Measured values are omitted while the last sample is invalid.
func FormatSnapshotPayload(snapshot controller.Snapshot, now time.Time) ([]byte, error) {
	payload := SnapshotPayload{
		Timestamp:     now.UTC().Format(time.RFC3339),
		Channel:       snapshot.ChannelId,
		CommandedDuty: snapshot.CommandedDuty,
		Stalled:       snapshot.Stalled,
		Faulted:       snapshot.Faulted,
	}
	if snapshot.LastSample.Valid {
		frequency := snapshot.LastSample.FrequencyHz
		duty := snapshot.LastSample.DutyCycle
		payload.MeasuredFrequencyHz = &frequency
		payload.MeasuredDuty = &duty
	}
	return json.Marshal(payload)
}
