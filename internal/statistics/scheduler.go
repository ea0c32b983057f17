package statistics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/wavefan/wavefan/internal/scheduler"
)

const schedulerSubsystem = "scheduler"

type SchedulerCollector struct {
	scheduler scheduler.Scheduler

	ticks        *prometheus.Desc
	skippedTicks *prometheus.Desc
	tickDuration *prometheus.Desc
}

func NewSchedulerCollector(scheduler scheduler.Scheduler) *SchedulerCollector {
	return &SchedulerCollector{
		scheduler: scheduler,
		ticks: prometheus.NewDesc(prometheus.BuildFQName(namespace, schedulerSubsystem, "ticks_total"),
			"Number of completed scheduler ticks",
			nil, nil,
		),
		skippedTicks: prometheus.NewDesc(prometheus.BuildFQName(namespace, schedulerSubsystem, "skipped_ticks_total"),
			"Number of ticks skipped because the previous tick overran its period",
			nil, nil,
		),
		tickDuration: prometheus.NewDesc(prometheus.BuildFQName(namespace, schedulerSubsystem, "last_tick_duration_seconds"),
			"Duration of the most recent tick",
			nil, nil,
		),
	}
}

func (collector *SchedulerCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.ticks
	ch <- collector.skippedTicks
	ch <- collector.tickDuration
}

func (collector *SchedulerCollector) Collect(ch chan<- prometheus.Metric) {
	stats := collector.scheduler.Stats()
	ch <- prometheus.MustNewConstMetric(collector.ticks, prometheus.CounterValue, float64(stats.Ticks))
	ch <- prometheus.MustNewConstMetric(collector.skippedTicks, prometheus.CounterValue, float64(stats.SkippedTicks))
	ch <- prometheus.MustNewConstMetric(collector.tickDuration, prometheus.GaugeValue, stats.LastTickTime.Seconds())
}
