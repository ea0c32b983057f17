package channel

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wavefan/wavefan/internal/channels"
	"github.com/wavefan/wavefan/internal/configuration"
	"github.com/wavefan/wavefan/internal/ui"
)

var channelId string

var Command = &cobra.Command{
	Use:              "channel",
	Short:            "Channel related commands",
	Long:             ``,
	TraverseChildren: true,
}

func init() {
	Command.PersistentFlags().StringVarP(
		&channelId,
		"id", "i",
		"",
		"Channel ID as specified in the config",
	)
	_ = Command.MarkPersistentFlagRequired("id")
}

// getChannel builds the channel with the given id from the configuration,
// opening its peripheral. The caller owns the peripheral and must close it.
func getChannel(id string) (*channels.Channel, error) {
	configPath := configuration.DetectConfigFile()
	ui.Info("Using configuration file at: %s", configPath)
	configuration.LoadConfig()
	if err := configuration.Validate(); err != nil {
		ui.Fatal(err.Error())
	}

	for _, config := range configuration.CurrentConfig.Channels {
		if config.ID == id {
			return channels.NewChannel(config)
		}
	}

	return nil, fmt.Errorf("no channel with id found: %s", id)
}
