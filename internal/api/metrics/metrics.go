// Package metrics defines all custom Prometheus metrics for the affiliate
// tracking API. It is the single source of truth for metric names, labels,
// and help strings. All metrics register themselves with the default
// registry via promauto at package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "affiliate"

// RegistrationsTotal counts successfully created accounts.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of user accounts created.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// LinksGeneratedTotal counts affiliate links minted by admins.
var LinksGeneratedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "links_generated_total",
		Help:      "Total number of affiliate links generated.",
	},
)

// EntriesCreditedTotal accumulates the entry amounts credited by admins.
var EntriesCreditedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "entries_credited_total",
		Help:      "Total number of reward entries credited to users.",
	},
)

// ClicksTrackedTotal counts redirects served by the click tracker.
var ClicksTrackedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "clicks_tracked_total",
		Help:      "Total number of affiliate link redirects served.",
	},
)
