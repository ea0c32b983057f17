package statistics

import "github.com/prometheus/client_golang/prometheus"

const (
	namespace = "wavefan"
)

func Register(collector prometheus.Collector) {
	prometheus.MustRegister(collector)
}
