// Package metrics expone los colectores Prometheus del servicio.
//
// HTTP:
//   - http_requests_total{method,route,status}
//   - http_request_duration_seconds{method,route}
//
// Cuestionario:
//   - questionnaire_submissions_total{outcome}: success, invalid, error
//   - questionnaire_steps_total{step}
//   - personality_types_assigned_total{code}
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	QuestionnaireSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "questionnaire_submissions_total",
			Help: "Questionnaire submissions by outcome",
		},
		[]string{"outcome"},
	)

	QuestionnaireSteps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "questionnaire_steps_total",
			Help: "Questionnaire steps answered",
		},
		[]string{"step"},
	)

	PersonalityTypesAssigned = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "personality_types_assigned_total",
			Help: "Personality type codes assigned to persisted submissions",
		},
		[]string{"code"},
	)
)
