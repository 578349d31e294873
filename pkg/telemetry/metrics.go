// Package telemetry exports link and classification counters to
// Prometheus.
package telemetry

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds only obsmon collectors, keeping scrapes free of
	// default Go runtime noise.
	Registry = prometheus.NewRegistry()

	framesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "obsmon",
			Name:      "frames_total",
			Help:      "Frames decoded, by event kind.",
		},
		[]string{"kind"},
	)

	distanceTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "obsmon",
			Name:      "distance_records_total",
			Help:      "Distance records, by source id and classification.",
		},
		[]string{"source", "class"},
	)

	distanceMeters = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "obsmon",
			Name:      "distance_meters",
			Help:      "Last decoded distance per source id.",
		},
		[]string{"source"},
	)

	frameErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "obsmon",
			Name:      "frame_errors_total",
			Help:      "Frames dropped before decoding (COBS unstuffing failed).",
		},
	)
)

func init() {
	Registry.MustRegister(framesTotal, distanceTotal, distanceMeters, frameErrorsTotal)
}

// Handler serves the metrics endpoint.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// CountFrame counts one decoded frame of the given kind.
func CountFrame(kind string) {
	framesTotal.WithLabelValues(kind).Inc()
}

// CountDistance counts one classified distance record and tracks the
// latest reading for the source.
func CountDistance(sourceID uint64, class string, meters float32) {
	source := strconv.FormatUint(sourceID, 10)
	distanceTotal.WithLabelValues(source, class).Inc()
	distanceMeters.WithLabelValues(source).Set(float64(meters))
}

// CountFrameErrors counts frames dropped by the deframer.
func CountFrameErrors(n int) {
	frameErrorsTotal.Add(float64(n))
}
