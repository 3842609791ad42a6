package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RedisErrors counts Redis command failures by command name.
var RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "commusics_redis_errors_total",
	Help: "Total number of Redis command errors.",
}, []string{"command"})

// CatalogErrors counts external catalog API failures by provider and kind
// (quota, invalid_key, parse, other).
var CatalogErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "commusics_catalog_errors_total",
	Help: "Total number of external catalog API errors.",
}, []string{"provider", "kind"})

// InitMetrics creates the Prometheus middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware wraps the fiberprometheus middleware as a fiber.Handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
