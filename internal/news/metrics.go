package news

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sixbits_news_cache_hits_total",
		Help: "Education news requests served from the cache.",
	})
	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sixbits_news_cache_misses_total",
		Help: "Education news requests that triggered an upstream fetch cycle.",
	})
	fetchFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sixbits_news_fetch_failures_total",
		Help: "Failed upstream news fetch attempts, counted per stage.",
	})
)
