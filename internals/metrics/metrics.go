// Package metrics exports the outcome of a sync run in the prometheus text format,
// ready to be picked up by the node exporter textfile collector
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Run is the outcome of one sync run
type Run struct {
	Modpack   string
	Version   string
	Success   bool
	Installed int
	Deleted   int
	Kept      int
	Bytes     int64
	Duration  time.Duration
	Finished  time.Time
}

// Registry builds a registry that contains the metrics of r
func Registry(r Run) *prometheus.Registry {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	labels := prometheus.Labels{"modpack": r.Modpack}

	success := 0.0
	if r.Success {
		success = 1
	}

	factory.NewGauge(prometheus.GaugeOpts{
		Name:        "tinkaros_sync_success",
		Help:        "1 if the last sync succeeded",
		ConstLabels: labels,
	}).Set(success)

	factory.NewGauge(prometheus.GaugeOpts{
		Name:        "tinkaros_sync_duration_seconds",
		Help:        "Duration of the last sync",
		ConstLabels: labels,
	}).Set(r.Duration.Seconds())

	factory.NewGauge(prometheus.GaugeOpts{
		Name:        "tinkaros_sync_timestamp_seconds",
		Help:        "Unix time the last sync finished",
		ConstLabels: labels,
	}).Set(float64(r.Finished.Unix()))

	factory.NewGauge(prometheus.GaugeOpts{
		Name:        "tinkaros_download_bytes",
		Help:        "Bytes downloaded by the last sync",
		ConstLabels: labels,
	}).Set(float64(r.Bytes))

	mods := factory.NewGaugeVec(prometheus.GaugeOpts{
		Name:        "tinkaros_mods",
		Help:        "Mods handled by the last sync by action",
		ConstLabels: labels,
	}, []string{"action"})
	mods.WithLabelValues("installed").Set(float64(r.Installed))
	mods.WithLabelValues("deleted").Set(float64(r.Deleted))
	mods.WithLabelValues("kept").Set(float64(r.Kept))

	factory.NewGauge(prometheus.GaugeOpts{
		Name:        "tinkaros_modpack_info",
		Help:        "Installed modpack version",
		ConstLabels: prometheus.Labels{"modpack": r.Modpack, "version": r.Version},
	}).Set(1)

	return reg
}

// WriteTextfile writes the metrics of r to path (atomically)
func WriteTextfile(path string, r Run) error {
	return prometheus.WriteToTextfile(path, Registry(r))
}
