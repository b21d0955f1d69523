package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workshop_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "workshop_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	ShopOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workshop_shop_operations_total",
			Help: "Total number of shop space operations",
		},
		[]string{"operation"},
	)

	EquipmentOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workshop_equipment_operations_total",
			Help: "Total number of equipment catalog and instance operations",
		},
		[]string{"operation"},
	)
)

func RecordShopOperation(operation string) {
	ShopOperationsTotal.WithLabelValues(operation).Inc()
}

func RecordEquipmentOperation(operation string) {
	EquipmentOperationsTotal.WithLabelValues(operation).Inc()
}
