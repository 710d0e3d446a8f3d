// Package metrics define las métricas Prometheus de la API.
//
// Convenciones de nombres:
//   - prefijo dailyreport_
//   - sufijo _total en contadores y _seconds en histogramas de duración
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// HTTPRequestsTotal peticiones por método, ruta y status.
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dailyreport_http_requests_total",
			Help: "Total de peticiones HTTP por método, ruta y status.",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDurationSeconds latencia por método y ruta.
	HTTPRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dailyreport_http_request_duration_seconds",
			Help:    "Duración de las peticiones HTTP en segundos.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// AuthFailuresTotal rechazos de autenticación por código de error.
	AuthFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dailyreport_auth_failures_total",
			Help: "Rechazos de autenticación (token ausente o inválido, cuenta deshabilitada, login fallido).",
		},
		[]string{"reason"},
	)

	// PolicyDenialsTotal operaciones denegadas por la política de acceso o por rol.
	PolicyDenialsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dailyreport_policy_denials_total",
			Help: "Operaciones rechazadas con FORBIDDEN, por ruta.",
		},
		[]string{"route"},
	)
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDurationSeconds,
		AuthFailuresTotal,
		PolicyDenialsTotal,
	)
}

// RecordRequest registra una petición terminada.
func RecordRequest(method, route string, status int, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDurationSeconds.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordAuthFailure registra un rechazo de autenticación.
func RecordAuthFailure(reason string) {
	AuthFailuresTotal.WithLabelValues(reason).Inc()
}

// RecordPolicyDenial registra un FORBIDDEN.
func RecordPolicyDenial(route string) {
	PolicyDenialsTotal.WithLabelValues(route).Inc()
}
