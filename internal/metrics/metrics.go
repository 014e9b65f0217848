// Package metrics holds the Prometheus counters of the harvest and outreach
// pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	emailsHarvested = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ghostreach_emails_harvested_total",
			Help: "Total number of email entries harvested",
		},
		[]string{"source"},
	)

	fetchErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ghostreach_fetch_errors_total",
			Help: "Total number of targets that could not be fetched",
		},
		[]string{"source"},
	)

	leadInserts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ghostreach_lead_inserts_total",
			Help: "Lead insert attempts by result",
		},
		[]string{"result"},
	)

	messagesSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ghostreach_messages_total",
			Help: "Outreach messages by send status",
		},
		[]string{"status"},
	)

	pipelineRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ghostreach_pipeline_runs_total",
			Help: "Pipeline runs by outcome",
		},
		[]string{"outcome"},
	)
)

func RecordHarvested(source string, n int) {
	emailsHarvested.WithLabelValues(source).Add(float64(n))
}

func RecordFetchError(source string) {
	fetchErrors.WithLabelValues(source).Inc()
}

func RecordLeadInsert(result string) {
	leadInserts.WithLabelValues(result).Inc()
}

func RecordMessage(status string) {
	messagesSent.WithLabelValues(status).Inc()
}

func RecordPipelineRun(outcome string) {
	pipelineRuns.WithLabelValues(outcome).Inc()
}
