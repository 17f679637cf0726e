package client

//
// metrics.go
//

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	schemasRegisteredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ccloud_schema_serde_schemas_registered_total",
		Help: "Number of schema registrations submitted to the registry.",
	})

	registryCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ccloud_schema_serde_registry_calls_total",
		Help: "Number of HTTP calls issued to the registry, by method.",
	}, []string{"method"})

	registryRetriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ccloud_schema_serde_registry_retries_total",
		Help: "Number of retried registry reads.",
	})

	cacheHitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ccloud_schema_serde_cache_hits_total",
		Help: "Number of cache hits, by cache (ids or codecs).",
	}, []string{"cache"})

	cacheMissesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ccloud_schema_serde_cache_misses_total",
		Help: "Number of cache misses, by cache (ids or codecs).",
	}, []string{"cache"})
)
