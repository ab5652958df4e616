package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	LendersGranted  prometheus.Counter
	LendersRevoked  prometheus.Counter
	DeniedMutations prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		LendersGranted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bureau_lenders_granted_total",
			Help: "Total number of lender grant operations",
		}),
		LendersRevoked: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bureau_lenders_revoked_total",
			Help: "Total number of lender revoke operations",
		}),
		DeniedMutations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bureau_registry_denied_mutations_total",
			Help: "Total registry mutations rejected for lack of admin rights",
		}),
	}
}
