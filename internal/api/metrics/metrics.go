// Package metrics defines and registers all custom Prometheus metrics for the
// TaskFlow API. It is the single source of truth for metric names, labels,
// and help strings. Registration happens at import time via promauto; the
// router additionally mounts echoprometheus for HTTP-level metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "taskflow"

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success" or "invalid"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// AuthzDenialsTotal counts operations rejected by the authorization core.
// Label:
//   - resource: "users", "projects" or "tasks"
var AuthzDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authz_denials_total",
		Help:      "Total number of operations denied by authorization, by resource.",
	},
	[]string{"resource"},
)

// UsersCreatedTotal counts created users.
// Label:
//   - role: "ADMIN", "MANAGER" or "USER"
var UsersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Total number of users created, by role.",
	},
	[]string{"role"},
)

// ProjectsCreatedTotal counts created projects.
var ProjectsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "projects_created_total",
		Help:      "Total number of projects created.",
	},
)

// TasksCreatedTotal counts created tasks.
// Label:
//   - status: initial task status (normally "TODO")
var TasksCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_created_total",
		Help:      "Total number of tasks created, by initial status.",
	},
	[]string{"status"},
)

// RateLimitRejectionsTotal counts requests rejected by the login rate limiter.
var RateLimitRejectionsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limit_rejections_total",
		Help:      "Total number of requests rejected by the rate limiter.",
	},
)
