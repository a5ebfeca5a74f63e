// Package metrics содержит Prometheus метрики HTTP слоя и изменений сущностей.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"todo-notes/internal/model"
)

// Collector хранит все метрики приложения в собственном registry
type Collector struct {
	registry *prometheus.Registry

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Changes считает мутации сущностей по entity и op
	Changes *prometheus.CounterVec

	// FeedStreams число открытых стримов ленты изменений
	FeedStreams prometheus.Gauge
}

// NewCollector создает коллектор с указанным namespace
func NewCollector(namespace string) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		Changes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "entity_changes_total",
				Help:      "Total number of entity mutations",
			},
			[]string{"entity", "op"},
		),
		FeedStreams: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "change_feed_streams",
				Help:      "Number of open change feed streams",
			},
		),
	}

	c.registry.MustRegister(
		c.HTTPRequests,
		c.HTTPDuration,
		c.Changes,
		c.FeedStreams,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

// Registry возвращает registry коллектора
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler отдает метрики в формате Prometheus exposition
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// ObserveHTTP записывает результат одного HTTP запроса
func (c *Collector) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Publish реализует events.Publisher
func (c *Collector) Publish(change model.Change) {
	c.Changes.WithLabelValues(string(change.Entity), string(change.Op)).Inc()
}
