package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "board_errors_total",
			Help: "Total number of occurred errors.",
		},
		[]string{"type"},
	)
	SearchesCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "board_job_searches_total",
			Help: "Total number of executed job searches.",
		},
	)
	SearchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "board_job_search_duration_seconds",
			Help:    "Duration of a filtered job search.",
			Buckets: []float64{0.005, 0.025, 0.1, 0.5, 1, 5},
		},
	)
	TailoredDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "board_tailored_jobs_duration_seconds",
			Help:    "Duration of a tailored-jobs aggregation.",
			Buckets: []float64{0.01, 0.05, 0.25, 1, 5},
		},
	)
	ApplicationsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "board_applications_submitted_total",
			Help: "Total number of submitted applications.",
		},
	)
	NotificationsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "board_notifications_created_total",
			Help: "Total number of created notifications.",
		},
		[]string{"type"},
	)
)

func StartMetricsServer(port int) {

	prometheus.MustRegister(ErrorsCounter)
	prometheus.MustRegister(SearchesCounter)
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(TailoredDuration)
	prometheus.MustRegister(ApplicationsCounter)
	prometheus.MustRegister(NotificationsCounter)

	http.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Fatal(http.ListenAndServe(fmt.Sprintf(":%d", port), nil))
	}()
}
