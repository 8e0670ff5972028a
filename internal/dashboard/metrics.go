package dashboard

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	loadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pdv",
		Subsystem: "dashboard",
		Name:      "loads_total",
		Help:      "Dashboard loads by result.",
	}, []string{"result"})

	loadDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "pdv",
		Subsystem: "dashboard",
		Name:      "load_duration_seconds",
		Help:      "Wall time of a dashboard load, including failed ones.",
		Buckets:   prometheus.DefBuckets,
	})

	queryFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pdv",
		Subsystem: "dashboard",
		Name:      "query_failures_total",
		Help:      "Failed dashboard sub-queries by query name.",
	}, []string{"query"})
)
