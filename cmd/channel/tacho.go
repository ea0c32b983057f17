package channel

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/wavefan/wavefan/internal/configuration"
)

var tachoCmd = &cobra.Command{
	Use:   "tacho",
	Short: "Measure the current tachometer signal of a channel",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pterm.DisableOutput()

		channelIdFlag := cmd.Flag("id")
		channelId := channelIdFlag.Value.String()

		channel, err := getChannel(channelId)
		if err != nil {
			return err
		}
		defer func() {
			_ = channel.Peripheral.Close()
		}()

		if !channel.HasSense() {
			return fmt.Errorf("channel has no sense line: %s", channelId)
		}

		sample := channel.Peripheral.SampleInput(configuration.CurrentConfig.SampleWindow)
		if !sample.Valid {
			return fmt.Errorf("no valid tachometer signal on channel: %s", channelId)
		}

		fmt.Printf("%.2f Hz at %.1f%% duty\n", sample.FrequencyHz, sample.DutyCycle*100)
		return nil
	},
}

func init() {
	Command.AddCommand(tachoCmd)
}
