package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/wavefan/wavefan/internal/api"
	"github.com/wavefan/wavefan/internal/channels"
	"github.com/wavefan/wavefan/internal/configuration"
	"github.com/wavefan/wavefan/internal/controller"
	"github.com/wavefan/wavefan/internal/curves"
	"github.com/wavefan/wavefan/internal/inputs"
	"github.com/wavefan/wavefan/internal/mqtt"
	"github.com/wavefan/wavefan/internal/persistence"
	"github.com/wavefan/wavefan/internal/scheduler"
	"github.com/wavefan/wavefan/internal/statistics"
	"github.com/wavefan/wavefan/internal/ui"
	"github.com/wavefan/wavefan/internal/util"
)

func RunDaemon() {
	pers := persistence.NewPersistence(configuration.CurrentConfig.DbPath)
	if err := pers.Init(); err != nil {
		ui.Fatal("Unable to initialize persistence: %v", err)
	}

	controllers := InitializeObjects(pers)

	sched := scheduler.NewScheduler(
		controllers,
		configuration.CurrentConfig.TickRate,
		configuration.CurrentConfig.SampleWindow,
	)

	statistics.Register(statistics.NewChannelCollector(sched))
	statistics.Register(statistics.NewSchedulerCollector(sched))

	ctx, cancel := context.WithCancel(context.Background())

	var g run.Group
	{
		if configuration.CurrentConfig.Statistics.Enabled {
			// === Prometheus Exporter
			port := configuration.CurrentConfig.Statistics.Port
			if port <= 0 || port >= 65535 {
				port = 9000
			}
			addr := fmt.Sprintf(":%d", port)
			handler := promhttp.Handler()
			mux := http.NewServeMux()
			mux.Handle("/metrics", handler)
			server := &http.Server{Addr: addr, Handler: mux}

			g.Add(func() error {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					ui.Error("Cannot start prometheus metrics endpoint (%s)", err.Error())
					return err
				}
				return nil
			}, func(err error) {
				ui.Info("Stopping statistics server...")
				timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer timeoutCancel()
				_ = server.Shutdown(timeoutCtx)
			})
		}
	}
	{
		if configuration.CurrentConfig.Api.Enabled {
			// === REST api
			restService := api.CreateRestService(sched)
			addr := fmt.Sprintf("%s:%d", configuration.CurrentConfig.Api.Host, configuration.CurrentConfig.Api.Port)

			g.Add(func() error {
				if err := restService.Start(addr); err != nil && err != http.ErrServerClosed {
					ui.Error("Cannot start REST api endpoint (%s)", err.Error())
					return err
				}
				return nil
			}, func(err error) {
				ui.Info("Stopping REST api...")
				timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer timeoutCancel()
				_ = restService.Shutdown(timeoutCtx)
			})
		}
	}
	{
		// === input monitoring
		for _, input := range inputs.InputMap.Items() {
			in := input
			pollingRate := configuration.CurrentConfig.InputPollingRate
			mon := inputs.NewInputMonitor(in, pollingRate)

			g.Add(func() error {
				err := mon.Run(ctx)
				ui.Info("Input monitor for %s stopped.", in.GetId())
				return err
			}, func(err error) {
				if err != nil {
					ui.Warning("Error monitoring input: %v", err)
				}
			})
		}
	}
	{
		// === control scheduler
		g.Add(func() error {
			err := sched.Run(ctx)
			ui.Info("Scheduler stopped.")
			return err
		}, func(err error) {
			if err != nil {
				ui.Warning("Error running scheduler: %v", err)
			}
		})
	}
	{
		if configuration.CurrentConfig.Mqtt.Enabled {
			// === MQTT telemetry
			mqttConfig := configuration.CurrentConfig.Mqtt
			publisher, err := mqtt.NewRealPublisher(mqttConfig.Broker, mqttConfig.ClientID, mqttConfig.TopicPrefix)
			if err != nil {
				ui.Fatal("Unable to connect to MQTT broker %s: %v", mqttConfig.Broker, err)
			}

			g.Add(func() error {
				ticker := time.NewTicker(mqttConfig.PublishRate)
				defer ticker.Stop()
				for {
					select {
					case <-ctx.Done():
						return nil
					case <-ticker.C:
						for _, snapshot := range sched.Snapshots() {
							if err := publisher.PublishSnapshot(snapshot); err != nil {
								ui.Warning("Error publishing snapshot of %s: %v", snapshot.ChannelId, err)
							}
						}
					}
				}
			}, func(err error) {
				_ = publisher.Close()
				ui.Info("MQTT publisher stopped.")
			})
		}
	}
	{
		if len(configuration.CurrentConfig.StateFilePath) > 0 {
			// === state file dump
			path := configuration.CurrentConfig.StateFilePath

			g.Add(func() error {
				ticker := time.NewTicker(configuration.CurrentConfig.TickRate)
				defer ticker.Stop()
				for {
					select {
					case <-ctx.Done():
						return nil
					case <-ticker.C:
						payload, err := json.MarshalIndent(sched.Snapshots(), "", "  ")
						if err != nil {
							return err
						}
						if err := util.WriteFileAtomic(path, payload); err != nil {
							ui.Warning("Error writing state file %s: %v", path, err)
						}
					}
				}
			}, func(err error) {
				ui.Info("State file writer stopped.")
			})
		}
	}
	{
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

		g.Add(func() error {
			<-sig
			ui.Info("Received SIGTERM signal, exiting...")
			return nil
		}, func(err error) {
			defer close(sig)
			cancel()
		})
	}

	if err := g.Run(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	} else {
		ui.Info("Done.")
		os.Exit(0)
	}
}

// InitializeObjects builds inputs, curves, channels and their controllers
// from the current configuration. Configuration errors are fatal.
func InitializeObjects(pers persistence.Persistence) map[string]controller.FanController {
	for _, config := range configuration.CurrentConfig.Inputs {
		input, err := inputs.NewInput(config)
		if err != nil {
			ui.Fatal("Unable to process input configuration: %s", config.ID)
		}

		currentValue, err := input.GetValue()
		if err != nil {
			ui.Warning("Error reading input %s: %v", config.ID, err)
		}
		input.SetMovingAvg(currentValue)

		inputs.RegisterInput(input)
	}

	for _, config := range configuration.CurrentConfig.Curves {
		curve, err := curves.NewSpeedCurve(config)
		if err != nil {
			ui.Fatal("Unable to process curve configuration: %s", config.ID)
		}
		curves.RegisterSpeedCurve(curve)
	}

	controllers := map[string]controller.FanController{}
	for _, config := range configuration.CurrentConfig.Channels {
		channel, err := channels.NewChannel(config)
		if err != nil {
			ui.Fatal("Unable to process channel configuration %s: %v", config.ID, err)
		}
		if err := channels.Register(channel); err != nil {
			ui.Fatal("Unable to register channel %s: %v", config.ID, err)
		}

		controllers[config.ID] = controller.NewFanController(pers, channel)
	}

	if len(controllers) == 0 {
		ui.Fatal("No valid channel configurations, exiting.")
	}

	return controllers
}
