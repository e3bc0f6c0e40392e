package metrics

import "time"

type Metrics interface {
	// Business
	RecordOrderCreated(status string)
	RecordOrderStatusChange(status string)
	RecordRequestCreated(serviceType string)
	RecordRequestAssigned(status string)
	RecordUseCaseExecution(useCaseName string, success bool, duration time.Duration)

	// Infrastructure
	ObserveHTTPRequestDuration(method, path, statusCode string, duration float64)

	// Performance and resilience
	IncCacheHit(cacheType string)
	IncCacheMiss(cacheType string)
	IncOutboxEventsProcessed(status string)
}
