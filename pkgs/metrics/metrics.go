package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

var (
	Queries = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "xbrowse_queries_total",
		Help: "Total console queries by command",
	}, []string{"command"})
	QueryErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "xbrowse_query_errors_total",
		Help: "Total failed console queries by command",
	}, []string{"command"})
	QueryDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "xbrowse_query_duration_seconds",
		Help:    "Store round trip of console queries",
		Buckets: prometheus.DefBuckets,
	}, []string{"command"})
	LoaderBatches = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "xbrowse_loader_batches_total",
		Help: "Total insert-many batches submitted by the loader",
	})
	LoaderRecords = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "xbrowse_loader_records_total",
		Help: "Total records inserted by the loader",
	})
)

func init() {
	prometheus.MustRegister(Queries, QueryErrors, QueryDuration, LoaderBatches, LoaderRecords)
}

// StartServer serves /metrics and /health on addr. An empty addr disables it.
func StartServer(addr string) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.WithField("addr", addr).Warnln("metrics server stopped:", err)
		}
	}()
}

// ObserveQuery records one query of command that started at start.
func ObserveQuery(command string, start time.Time, err error) {
	Queries.WithLabelValues(command).Inc()
	QueryDuration.WithLabelValues(command).Observe(time.Since(start).Seconds())
	if err != nil {
		QueryErrors.WithLabelValues(command).Inc()
	}
}
