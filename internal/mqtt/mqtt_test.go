package mqtt

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/wavefan/wavefan/internal/controller"
	"github.com/wavefan/wavefan/internal/waveio"
)

func TestFormatSnapshotPayload(t *testing.T) {
	// GIVEN
	snapshot := controller.Snapshot{
		ChannelId:     "case_fan",
		CommandedDuty: 0.42,
		LastSample: waveio.WaveformSample{
			FrequencyHz: 120.5,
			DutyCycle:   0.41,
			Valid:       true,
		},
	}
	now := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)

	// WHEN
	payload, err := FormatSnapshotPayload(snapshot, now)

	// THEN
	assert.NoError(t, err)

	var decoded map[string]interface{}
	assert.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, "2026-08-27T12:00:00Z", decoded["timestamp"])
	assert.Equal(t, "case_fan", decoded["channel"])
	assert.Equal(t, 0.42, decoded["commandedDuty"])
	assert.Equal(t, 120.5, decoded["measuredFrequencyHz"])
	assert.Equal(t, 0.41, decoded["measuredDuty"])
	assert.Equal(t, false, decoded["stalled"])
	assert.Equal(t, false, decoded["faulted"])
}

func TestFormatSnapshotPayloadOmitsInvalidMeasurement(t *testing.T) {
	// GIVEN
	snapshot := controller.Snapshot{
		ChannelId:     "case_fan",
		CommandedDuty: 0.42,
		Stalled:       true,
	}

	// WHEN
	payload, err := FormatSnapshotPayload(snapshot, time.Now())

	// THEN
	assert.NoError(t, err)

	var decoded map[string]interface{}
	assert.NoError(t, json.Unmarshal(payload, &decoded))
	assert.NotContains(t, decoded, "measuredFrequencyHz")
	assert.NotContains(t, decoded, "measuredDuty")
	assert.Equal(t, true, decoded["stalled"])
}
