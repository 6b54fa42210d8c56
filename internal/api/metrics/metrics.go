// Package metrics defines and registers all custom Prometheus metrics for the
// identity API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register with the default Prometheus registry at import time via
// promauto; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "identity"

// ── Credential metrics ────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok", "invalid_credentials", "not_found", "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// CredentialValidationsTotal counts bearer-token validations performed by the
// auth middleware.
// Label:
//   - result: "ok", "expired", "malformed"
var CredentialValidationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "credential_validations_total",
		Help:      "Total number of credential validations, by result.",
	},
	[]string{"result"},
)

// ── Profile metrics ───────────────────────────────────────────────────────────

// ProfileUpdatesTotal counts profile patch attempts.
// Label:
//   - result: "ok", "validation_failed", "conflict", "image_store_error", "error"
var ProfileUpdatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "profile_updates_total",
		Help:      "Total number of profile update attempts, by result.",
	},
	[]string{"result"},
)

// ProfileUpdateConflictsTotal counts optimistic-concurrency conflicts seen by
// the controller, including ones resolved by the single retry.
var ProfileUpdateConflictsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "profile_update_conflicts_total",
		Help:      "Total number of stale-version profile writes detected.",
	},
)

// ── Mail metrics ──────────────────────────────────────────────────────────────

// VerificationMailsTotal counts verification mail deliveries attempted by the
// dispatcher workers.
// Label:
//   - result: "sent" or "error"
var VerificationMailsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "verification_mails_total",
		Help:      "Total number of verification mail deliveries, by result.",
	},
	[]string{"result"},
)
