// Package metrics defines all custom Prometheus metrics for the identity
// service. It is the single source of truth for metric names, labels, and
// help strings; metrics register with the default registry at import time.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "identity"

// LoginsTotal counts authentication attempts.
// Labels:
//   - role: the role presented at login (e.g. "customer", "admin")
//   - result: "success", "invalid_credentials" or "malformed"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by role and result.",
	},
	[]string{"role", "result"},
)

// SessionsIssuedTotal counts sessions minted after successful authentication.
var SessionsIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_issued_total",
		Help:      "Total number of sessions issued, by role.",
	},
	[]string{"role"},
)

// SessionsRevokedTotal counts explicit session revocations (logout).
var SessionsRevokedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_revoked_total",
		Help:      "Total number of sessions explicitly revoked.",
	},
)

// SessionValidationsTotal counts bearer-token validations on protected routes.
// Label:
//   - result: "ok", "expired", "invalid", "malformed" or "missing"
var SessionValidationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_validations_total",
		Help:      "Total number of session validations, by result.",
	},
	[]string{"result"},
)

// ApprovalTransitionsTotal counts successful customer approval updates.
// Label:
//   - status: the status applied ("pending" or "approved")
var ApprovalTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "approval_transitions_total",
		Help:      "Total number of customer approval status updates applied.",
	},
	[]string{"status"},
)
