package channel

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/wavefan/wavefan/internal/ui"
	"github.com/wavefan/wavefan/internal/waveio"
)

var dutyCmd = &cobra.Command{
	Use:   "duty <value>",
	Short: "Drive a channel at a fixed duty cycle",
	Long: `Drives the channel's output line with its configured frequency at the
given duty cycle (0..1) until interrupted. Intended for wiring checks and
finding a fan's stall threshold by hand.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		channelIdFlag := cmd.Flag("id")
		channelId := channelIdFlag.Value.String()

		duty, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid duty cycle: %s", args[0])
		}

		channel, err := getChannel(channelId)
		if err != nil {
			return err
		}
		defer func() {
			_ = channel.Peripheral.Close()
		}()

		command := waveio.WaveformCommand{
			FrequencyHz: channel.DriveFrequencyHz(),
			DutyCycle:   duty,
		}
		if err := channel.Peripheral.ConfigureOutput(command); err != nil {
			return err
		}

		ui.Info("Driving channel %s at %.2f Hz with %.1f%% duty, press Ctrl+C to stop...",
			channelId, command.FrequencyHz, duty*100)

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig

		return nil
	},
}

func init() {
	Command.AddCommand(dutyCmd)
}
