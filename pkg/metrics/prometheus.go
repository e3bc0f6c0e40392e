package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type Prometheus struct {
	orderCreated    *prometheus.CounterVec
	orderStatus     *prometheus.CounterVec
	requestCreated  *prometheus.CounterVec
	requestAssigned *prometheus.CounterVec
	useCaseTotal    *prometheus.CounterVec
	useCaseDuration *prometheus.HistogramVec
	httpDuration    *prometheus.HistogramVec
	cacheHits       *prometheus.CounterVec
	cacheMisses     *prometheus.CounterVec
	outboxEvents    *prometheus.CounterVec
}

func NewPrometheusMetrics(reg prometheus.Registerer, serviceName string) *Prometheus {
	m := &Prometheus{
		orderCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "ctrlmarket_order_created_total",
			Help:        "Total orders created.",
			ConstLabels: prometheus.Labels{"service": serviceName},
		}, []string{"status"}),
		orderStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "ctrlmarket_order_status_changes_total",
			Help:        "Total order status transitions.",
			ConstLabels: prometheus.Labels{"service": serviceName},
		}, []string{"status"}),
		requestCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "ctrlmarket_service_request_created_total",
			Help:        "Total service requests created.",
			ConstLabels: prometheus.Labels{"service": serviceName},
		}, []string{"service_type"}),
		requestAssigned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "ctrlmarket_service_request_assigned_total",
			Help:        "Total specialist assignments.",
			ConstLabels: prometheus.Labels{"service": serviceName},
		}, []string{"status"}),
		useCaseTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "app_usecase_total",
			Help:        "Total number of Use Case executions.",
			ConstLabels: prometheus.Labels{"service": serviceName},
		}, []string{"use_case", "status"}),
		useCaseDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "app_usecase_duration_seconds",
			Help:        "Use Case execution latency.",
			Buckets:     []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			ConstLabels: prometheus.Labels{"service": serviceName},
		}, []string{"use_case", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "app_http_duration_seconds",
			Help:        "Duration of HTTP requests.",
			Buckets:     []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			ConstLabels: prometheus.Labels{"service": serviceName},
		}, []string{"method", "path", "status_code"}),
		cacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "app_cache_hits_total",
			Help:        "Total cache hits.",
			ConstLabels: prometheus.Labels{"service": serviceName},
		}, []string{"cache_type"}),
		cacheMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "app_cache_misses_total",
			Help:        "Total cache misses.",
			ConstLabels: prometheus.Labels{"service": serviceName},
		}, []string{"cache_type"}),
		outboxEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "app_outbox_events_processed_total",
			Help:        "Total outbox events processed.",
			ConstLabels: prometheus.Labels{"service": serviceName},
		}, []string{"status"}),
	}

	reg.MustRegister(
		m.orderCreated,
		m.orderStatus,
		m.requestCreated,
		m.requestAssigned,
		m.useCaseTotal,
		m.useCaseDuration,
		m.httpDuration,
		m.cacheHits,
		m.cacheMisses,
		m.outboxEvents,
	)
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return m
}

func (p *Prometheus) RecordOrderCreated(status string) {
	p.orderCreated.WithLabelValues(status).Inc()
}

func (p *Prometheus) RecordOrderStatusChange(status string) {
	p.orderStatus.WithLabelValues(status).Inc()
}

func (p *Prometheus) RecordRequestCreated(serviceType string) {
	p.requestCreated.WithLabelValues(serviceType).Inc()
}

func (p *Prometheus) RecordRequestAssigned(status string) {
	p.requestAssigned.WithLabelValues(status).Inc()
}

func (p *Prometheus) RecordUseCaseExecution(useCase string, success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "failure"
	}
	p.useCaseTotal.WithLabelValues(useCase, status).Inc()
	p.useCaseDuration.WithLabelValues(useCase, status).Observe(duration.Seconds())
}

func (p *Prometheus) ObserveHTTPRequestDuration(method, path, code string, duration float64) {
	p.httpDuration.WithLabelValues(method, path, code).Observe(duration)
}

func (p *Prometheus) IncCacheHit(cacheType string) {
	p.cacheHits.WithLabelValues(cacheType).Inc()
}

func (p *Prometheus) IncCacheMiss(cacheType string) {
	p.cacheMisses.WithLabelValues(cacheType).Inc()
}

func (p *Prometheus) IncOutboxEventsProcessed(status string) {
	p.outboxEvents.WithLabelValues(status).Inc()
}
