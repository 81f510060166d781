// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QuestionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatbot_questions_total",
			Help: "Total number of questions received, by classified intent",
		},
		[]string{"intent"},
	)

	AnswersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatbot_answers_total",
			Help: "Total number of replies produced, by answering path",
		},
		[]string{"path"}, // template | llm | introspection | clarification | error
	)

	QueriesRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatbot_queries_rejected_total",
			Help: "SQL statements discarded by the safety validator",
		},
		[]string{"source"}, // template | llm | introspection
	)

	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "chatbot_query_duration_seconds",
			Help: "Duration of data-store query execution",
		},
		[]string{"intent"},
	)

	LLMRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatbot_llm_requests_total",
			Help: "Fallback completion requests, by outcome",
		},
		[]string{"status"}, // ok | error
	)
)
