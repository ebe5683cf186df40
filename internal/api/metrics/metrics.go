// Package metrics defines the Prometheus metrics for the course catalog API.
// All metrics are registered with the default registry on package init and
// served at /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "catalog"

// ── HTTP metrics ──────────────────────────────────────────────────────────────

// HTTPRequestDuration measures request latency.
// Labels:
//   - method: HTTP method
//   - route: the registered route pattern (e.g. "/courses/:id"), not the raw URL
//   - code: response status code
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests by method, route and status code.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route", "code"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts accounts created through /auth/register.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registered accounts.",
	},
)

// ── Catalog metrics ───────────────────────────────────────────────────────────

// CourseMutationsTotal counts admin changes to the catalog.
// Label:
//   - op: "create", "update" or "delete"
var CourseMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "course_mutations_total",
		Help:      "Total number of course create/update/delete operations.",
	},
	[]string{"op"},
)

// ── Enrollment metrics ────────────────────────────────────────────────────────

// EnrollmentRequestsTotal counts enrollment requests.
// Label:
//   - result: "created" for a new record, "existing" when one was already on file
var EnrollmentRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "enrollment_requests_total",
		Help:      "Total number of enrollment requests, by result.",
	},
	[]string{"result"},
)

// EnrollmentStatusChangesTotal counts admin decisions.
// Label:
//   - status: the status written
var EnrollmentStatusChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "enrollment_status_changes_total",
		Help:      "Total number of enrollment status changes, by new status.",
	},
	[]string{"status"},
)

// Middleware records HTTPRequestDuration for every request. Errors are
// rendered here so the observed code is the one the client receives; the
// error is still returned for the request logger. Unmatched routes share a
// single label value.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			code := c.Response().Status
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			HTTPRequestDuration.
				WithLabelValues(c.Request().Method, route, strconv.Itoa(code)).
				Observe(time.Since(start).Seconds())
			return err
		}
	}
}
