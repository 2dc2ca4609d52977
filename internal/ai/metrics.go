package ai

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sixbits_ai_requests_total",
		Help: "AI completion calls by provider and outcome.",
	}, []string{"provider", "outcome"})

	retriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sixbits_ai_retries_total",
		Help: "Retryable AI call failures observed by the wrapper.",
	})
)
