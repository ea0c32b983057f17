package configuration

const (
	// FaultPolicyMinSafeDuty forces a faulted channel to its minimum safe duty
	FaultPolicyMinSafeDuty = "minSafeDuty"
	// FaultPolicyOff turns a faulted channel completely off
	FaultPolicyOff = "off"
)

const (
	BackendGpio = "gpio"
	BackendSim  = "sim"
)

type ChannelConfig struct {
	ID string `json:"id"`

	// Backend selects the waveform peripheral implementation
	// driving this channel, one of: gpio | sim
	Backend string `json:"backend"`

	Drive DriveConfig  `json:"drive"`
	Sense *SenseConfig `json:"sense,omitempty"`

	// Curve is the id of the speed curve controlling this channel
	Curve string `json:"curve"`

	// MinSafeDuty is the lowest duty cycle the fan can sustain rotation at
	MinSafeDuty float64 `json:"minSafeDuty"`
	// StallDutyThreshold is the duty cycle commanded to recover a stalled fan
	StallDutyThreshold float64 `json:"stallDutyThreshold"`

	// SlewMax limits the duty cycle change per control tick
	SlewMax float64 `json:"slewMax"`

	// StallDebounceTicks is the number of consecutive invalid tachometer
	// samples before the channel is considered stalled
	StallDebounceTicks int `json:"stallDebounceTicks"`

	// ColdStartKickTicks is the number of ticks the stall duty threshold is
	// held when spinning up a stopped fan to a duty below that threshold
	ColdStartKickTicks int `json:"coldStartKickTicks"`

	// FaultThreshold is the number of consecutive rejected output
	// configurations before the channel enters the fault state
	FaultThreshold int `json:"faultThreshold"`
	FaultPolicy    string `json:"faultPolicy"`
}

type DriveConfig struct {
	Chip string `json:"chip"`
	Line int    `json:"line"`
	// FrequencyHz is the fixed drive frequency of the output square wave
	FrequencyHz float64 `json:"frequencyHz"`
}

type SenseConfig struct {
	Chip string `json:"chip"`
	Line int    `json:"line"`
}
