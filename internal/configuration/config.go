package configuration

import (
	"os"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
	"github.com/wavefan/wavefan/internal/ui"
)

type Configuration struct {
	DbPath string `json:"dbPath"`

	// StateFilePath, when set, is a file the current runtime state of all
	// channels is dumped to as JSON on every publish interval
	StateFilePath string `json:"stateFilePath"`

	// TickRate is the fixed cadence of the scheduler's
	// sample -> control -> output cycle.
	TickRate time.Duration `json:"tickRate"`
	// SampleWindow is the maximum duration spent observing a
	// tachometer line during the sampling phase of a tick.
	SampleWindow time.Duration `json:"sampleWindow"`

	InputPollingRate       time.Duration `json:"inputPollingRate"`
	InputRollingWindowSize int           `json:"inputRollingWindowSize"`

	Channels []ChannelConfig `json:"channels"`
	Curves   []CurveConfig   `json:"curves"`
	Inputs   []InputConfig   `json:"inputs"`

	Api        ApiConfig        `json:"api"`
	Statistics StatisticsConfig `json:"statistics"`
	Mqtt       MqttConfig       `json:"mqtt"`
}

var CurrentConfig Configuration

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	viper.SetConfigName("wavefan")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			ui.Error("Couldn't detect home directory: %v", err)
			os.Exit(1)
		}

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.AddConfigPath("/etc/wavefan/")
	}

	viper.AutomaticEnv() // read in environment variables that match

	setDefaultValues()
}

func setDefaultValues() {
	viper.SetDefault("dbpath", "/etc/wavefan/wavefan.db")
	viper.SetDefault("stateFilePath", "")

	viper.SetDefault("TickRate", 200*time.Millisecond)
	viper.SetDefault("SampleWindow", 100*time.Millisecond)

	viper.SetDefault("InputPollingRate", 200*time.Millisecond)
	viper.SetDefault("InputRollingWindowSize", 50)

	viper.SetDefault("Channels", []ChannelConfig{})
	viper.SetDefault("Curves", []CurveConfig{})
	viper.SetDefault("Inputs", []InputConfig{})

	viper.SetDefault("statistics.enabled", false)
	viper.SetDefault("statistics.port", 9000)
	viper.SetDefault("api.enabled", false)
	viper.SetDefault("api.host", "localhost")
	viper.SetDefault("api.port", 9001)
	viper.SetDefault("mqtt.enabled", false)
	viper.SetDefault("mqtt.topicPrefix", "wavefan")
	viper.SetDefault("mqtt.clientId", "wavefan")
	viper.SetDefault("mqtt.publishRate", 5*time.Second)
}

// DetectConfigFile returns the path of the config file that will be used
func DetectConfigFile() string {
	err := viper.ReadInConfig()
	if err != nil {
		ui.Fatal("Error reading config file, %s", err)
	}
	return viper.ConfigFileUsed()
}

// LoadConfig parses the config file into the global CurrentConfig
func LoadConfig() {
	err := viper.Unmarshal(&CurrentConfig, viper.DecodeHook(decodeHook()))
	if err != nil {
		ui.Fatal("unable to decode into struct, %v", err)
	}
}
