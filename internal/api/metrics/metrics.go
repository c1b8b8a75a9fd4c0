// Package metrics defines the custom Prometheus metrics of the publishing
// API. It is the single source of truth for metric names, labels, and help
// strings. Registration happens at import time through promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "publishing"

// ── Authentication ────────────────────────────────────────────────────────────

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

// ── Provisioning ──────────────────────────────────────────────────────────────

// ProvisioningTotal counts writer-provisioning runs.
// Label:
//   - result: "ok", "validation_failed", "email_in_use", "partial", "error"
var ProvisioningTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "provisioning_total",
		Help:      "Total number of writer provisioning attempts, by result.",
	},
	[]string{"result"},
)

// ── Articles ──────────────────────────────────────────────────────────────────

// ArticlesCreatedTotal counts newly published articles, by category.
var ArticlesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "articles_created_total",
		Help:      "Total number of articles published, by category.",
	},
	[]string{"category"},
)

// ArticleMutationsDenied counts mutations rejected by the role/ownership gate.
// Label:
//   - operation: "update" or "delete"
var ArticleMutationsDenied = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "article_mutations_denied_total",
		Help:      "Total number of article mutations rejected by the permission gate.",
	},
	[]string{"operation"},
)

// ── Outbound mail ─────────────────────────────────────────────────────────────

// ContactDeliveriesTotal counts contact-form deliveries handed to the mailer.
// Label:
//   - result: "ok" or "error"
var ContactDeliveriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "contact_deliveries_total",
		Help:      "Total number of contact messages delivered to the mailer, by result.",
	},
	[]string{"result"},
)
