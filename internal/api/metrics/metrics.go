// Package metrics defines and registers all custom Prometheus metrics for the
// maintenance API. It is the single source of truth for metric names, labels,
// and help strings. Registration happens at import time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "maintenance"

// ── Authentication metrics ────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts by outcome.
// Labels:
//   - outcome: "success", "rejected", "throttled", "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// TokenRejectionsTotal counts bearer-token validations that failed.
// Label:
//   - cause: "missing", "malformed", "bad_signature", "expired", "unknown_subject", "inactive"
var TokenRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_rejections_total",
		Help:      "Total number of rejected bearer tokens, by cause.",
	},
	[]string{"cause"},
)

// RoleDenialsTotal counts authorization-gate denials.
// Label:
//   - role: the role the principal presented
var RoleDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "role_denials_total",
		Help:      "Total number of role-gate denials, by presented role.",
	},
	[]string{"role"},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditWritesTotal counts audit records appended successfully.
// Labels:
//   - entity_type: tracked entity ("user", "client", ...)
//   - action: "create", "update", "delete", "status_change", "password_change"
var AuditWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_writes_total",
		Help:      "Total number of audit records appended.",
	},
	[]string{"entity_type", "action"},
)

// AuditWriteFailuresTotal counts audit appends that failed. Failures are
// logged and swallowed relative to the caller, so this counter is the primary
// signal that history is incomplete.
var AuditWriteFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_write_failures_total",
		Help:      "Total number of audit record appends that failed.",
	},
)
