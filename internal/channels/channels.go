package channels

import (
	"fmt"

	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/wavefan/wavefan/internal/configuration"
	"github.com/wavefan/wavefan/internal/waveio"
)

const (
	DefaultSlewMax            = 0.05
	DefaultStallDebounceTicks = 3
	DefaultColdStartKickTicks = 5
	DefaultFaultThreshold     = 5
)

var (
	ChannelMap = cmap.New[*Channel]()
)

// Channel binds one logical fan to its physical drive/sense lines, its
// speed curve and its thresholds. Immutable after registration.
type Channel struct {
	Config     configuration.ChannelConfig `json:"config"`
	Peripheral waveio.Peripheral           `json:"-"`
}

func NewChannel(config configuration.ChannelConfig) (*Channel, error) {
	peripheral, err := newPeripheral(config)
	if err != nil {
		return nil, err
	}

	return &Channel{
		Config:     config,
		Peripheral: peripheral,
	}, nil
}

func newPeripheral(config configuration.ChannelConfig) (waveio.Peripheral, error) {
	switch config.Backend {
	case configuration.BackendSim:
		return waveio.NewSimPeripheral(config.ID), nil
	case configuration.BackendGpio, "":
		senseChip := ""
		senseLine := 0
		if config.Sense != nil {
			senseChip = config.Sense.Chip
			senseLine = config.Sense.Line
		}
		return waveio.NewGpioPeripheral(
			config.ID,
			config.Drive.Chip, config.Drive.Line,
			senseChip, senseLine,
			config.Sense != nil,
		)
	}
	return nil, fmt.Errorf("channel %s: no matching backend: %s", config.ID, config.Backend)
}

// Register adds the given channel to the registry. Ambiguous channel
// mappings are fatal, the device must not run with them.
func Register(channel *Channel) error {
	if ChannelMap.Has(channel.GetId()) {
		return fmt.Errorf("duplicate channel id: %s", channel.GetId())
	}
	ChannelMap.Set(channel.GetId(), channel)
	return nil
}

func GetChannel(id string) (*Channel, bool) {
	return ChannelMap.Get(id)
}

func (c *Channel) GetId() string {
	return c.Config.ID
}

func (c *Channel) GetCurveId() string {
	return c.Config.Curve
}

func (c *Channel) DriveFrequencyHz() float64 {
	return c.Config.Drive.FrequencyHz
}

func (c *Channel) HasSense() bool {
	return c.Config.Sense != nil
}

func (c *Channel) MinSafeDuty() float64 {
	return c.Config.MinSafeDuty
}

func (c *Channel) StallDutyThreshold() float64 {
	return c.Config.StallDutyThreshold
}

func (c *Channel) SlewMax() float64 {
	if c.Config.SlewMax <= 0 {
		return DefaultSlewMax
	}
	return c.Config.SlewMax
}

func (c *Channel) StallDebounceTicks() int {
	if c.Config.StallDebounceTicks <= 0 {
		return DefaultStallDebounceTicks
	}
	return c.Config.StallDebounceTicks
}

func (c *Channel) ColdStartKickTicks() int {
	if c.Config.ColdStartKickTicks <= 0 {
		return DefaultColdStartKickTicks
	}
	return c.Config.ColdStartKickTicks
}

func (c *Channel) FaultThreshold() int {
	if c.Config.FaultThreshold <= 0 {
		return DefaultFaultThreshold
	}
	return c.Config.FaultThreshold
}

func (c *Channel) FaultPolicy() string {
	if c.Config.FaultPolicy == "" {
		return configuration.FaultPolicyMinSafeDuty
	}
	return c.Config.FaultPolicy
}
