package metrics

import (
	"logsreact/internal/types"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RecordsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "logsreact_records_total",
			Help: "Parsed records by match result",
		},
		[]string{"result"},
	)

	LinesIngested = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "logsreact_lines_ingested_total",
			Help: "Raw lines read from followed files, blank lines included",
		},
	)

	// scope is "line" for one followed line, "input" for a whole parsed file
	ParseDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "logsreact_parse_duration_seconds",
			Help:    "Wall time spent matching and building records",
			Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1, 10},
		},
		[]string{"scope"},
	)
)

func init() {
	prometheus.MustRegister(RecordsTotal, LinesIngested, ParseDuration)
}

// ObserveRecord counts a single record
func ObserveRecord(rec types.ParsedRecord) {
	if rec.Matched {
		RecordsTotal.WithLabelValues("matched").Inc()
	} else {
		RecordsTotal.WithLabelValues("unmatched").Inc()
	}
}

// ObserveLine counts one record built from a followed line
func ObserveLine(rec types.ParsedRecord, elapsed time.Duration) {
	ParseDuration.WithLabelValues("line").Observe(elapsed.Seconds())
	ObserveRecord(rec)
}

// ObserveResult counts a finished whole-input parse and all of its records
func ObserveResult(res types.Result, elapsed time.Duration) {
	ParseDuration.WithLabelValues("input").Observe(elapsed.Seconds())
	for _, rec := range res.Records {
		ObserveRecord(rec)
	}
}

// Handler serves the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}

// StartServer serves /metrics on addr until the listener fails
func StartServer(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	return http.ListenAndServe(addr, mux)
}
