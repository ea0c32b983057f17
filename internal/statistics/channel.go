package statistics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/wavefan/wavefan/internal/scheduler"
)

const channelSubsystem = "channel"

type ChannelCollector struct {
	scheduler scheduler.Scheduler

	commandedDuty *prometheus.Desc
	measuredFreq  *prometheus.Desc
	measuredDuty  *prometheus.Desc
	sampleValid   *prometheus.Desc
	stalled       *prometheus.Desc
	faulted       *prometheus.Desc
}

func NewChannelCollector(scheduler scheduler.Scheduler) *ChannelCollector {
	return &ChannelCollector{
		scheduler: scheduler,
		commandedDuty: prometheus.NewDesc(prometheus.BuildFQName(namespace, channelSubsystem, "commanded_duty"),
			"Duty cycle currently commanded on the drive line",
			[]string{"id"}, nil,
		),
		measuredFreq: prometheus.NewDesc(prometheus.BuildFQName(namespace, channelSubsystem, "measured_frequency_hz"),
			"Frequency of the last valid tachometer sample",
			[]string{"id"}, nil,
		),
		measuredDuty: prometheus.NewDesc(prometheus.BuildFQName(namespace, channelSubsystem, "measured_duty"),
			"Duty cycle of the last valid tachometer sample",
			[]string{"id"}, nil,
		),
		sampleValid: prometheus.NewDesc(prometheus.BuildFQName(namespace, channelSubsystem, "sample_valid"),
			"Whether the last tachometer sample contained a complete period",
			[]string{"id"}, nil,
		),
		stalled: prometheus.NewDesc(prometheus.BuildFQName(namespace, channelSubsystem, "stalled"),
			"Whether the channel is currently considered stalled",
			[]string{"id"}, nil,
		),
		faulted: prometheus.NewDesc(prometheus.BuildFQName(namespace, channelSubsystem, "faulted"),
			"Whether the channel is in the fault state",
			[]string{"id"}, nil,
		),
	}
}

func (collector *ChannelCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.commandedDuty
	ch <- collector.measuredFreq
	ch <- collector.measuredDuty
	ch <- collector.sampleValid
	ch <- collector.stalled
	ch <- collector.faulted
}

func (collector *ChannelCollector) Collect(ch chan<- prometheus.Metric) {
	for _, snapshot := range collector.scheduler.Snapshots() {
		id := snapshot.ChannelId
		ch <- prometheus.MustNewConstMetric(collector.commandedDuty, prometheus.GaugeValue, snapshot.CommandedDuty, id)
		ch <- prometheus.MustNewConstMetric(collector.measuredFreq, prometheus.GaugeValue, snapshot.LastSample.FrequencyHz, id)
		ch <- prometheus.MustNewConstMetric(collector.measuredDuty, prometheus.GaugeValue, snapshot.LastSample.DutyCycle, id)
		ch <- prometheus.MustNewConstMetric(collector.sampleValid, prometheus.GaugeValue, boolToFloat(snapshot.LastSample.Valid), id)
		ch <- prometheus.MustNewConstMetric(collector.stalled, prometheus.GaugeValue, boolToFloat(snapshot.Stalled), id)
		ch <- prometheus.MustNewConstMetric(collector.faulted, prometheus.GaugeValue, boolToFloat(snapshot.Faulted), id)
	}
}

func boolToFloat(value bool) float64 {
	if value {
		return 1
	}
	return 0
}
