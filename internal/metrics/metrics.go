package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

// Metrics exposes Prometheus collectors for billing and reward activity.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	billingRuns     *prometheus.CounterVec
	billedAmount    prometheus.Counter
	recharges       prometheus.Counter
	rechargedAmount prometheus.Counter
	coinsAwarded    prometheus.Counter
	checkIns        *prometheus.CounterVec
	locationSamples *prometheus.CounterVec
}

// MustNewMetrics registers the collectors with reg and panics on duplicate
// registration. Tests should pass a fresh prometheus.NewRegistry().
func MustNewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		billingRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flexio",
			Subsystem: "billing",
			Name:      "runs_total",
			Help:      "Monthly billing attempts by outcome.",
		}, []string{"outcome"}),
		billedAmount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "flexio",
			Subsystem: "billing",
			Name:      "billed_amount_total",
			Help:      "Sum of monthly charges posted to gym wallets.",
		}),
		recharges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "flexio",
			Subsystem: "wallet",
			Name:      "recharges_total",
			Help:      "Wallet recharges posted.",
		}),
		rechargedAmount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "flexio",
			Subsystem: "wallet",
			Name:      "recharged_amount_total",
			Help:      "Sum of recharges posted to gym wallets.",
		}),
		coinsAwarded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "flexio",
			Subsystem: "rewards",
			Name:      "coins_awarded_total",
			Help:      "Coins credited for check-in streaks.",
		}),
		checkIns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flexio",
			Subsystem: "rewards",
			Name:      "check_ins_total",
			Help:      "Check-in attempts by outcome.",
		}, []string{"outcome"}),
		locationSamples: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flexio",
			Subsystem: "geofence",
			Name:      "location_samples_total",
			Help:      "Location samples recorded, split by geofence result.",
		}, []string{"within"}),
	}
	reg.MustRegister(m.billingRuns, m.billedAmount, m.recharges, m.rechargedAmount, m.coinsAwarded, m.checkIns, m.locationSamples)
	return m
}

func (m *Metrics) BillingRun(outcome string) {
	if m == nil {
		return
	}
	m.billingRuns.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Billed(amount decimal.Decimal) {
	if m == nil {
		return
	}
	m.billedAmount.Add(amount.InexactFloat64())
}

func (m *Metrics) Recharged(amount decimal.Decimal) {
	if m == nil {
		return
	}
	m.recharges.Inc()
	m.rechargedAmount.Add(amount.InexactFloat64())
}

func (m *Metrics) CheckIn(outcome string, coins int64) {
	if m == nil {
		return
	}
	m.checkIns.WithLabelValues(outcome).Inc()
	if coins > 0 {
		m.coinsAwarded.Add(float64(coins))
	}
}

func (m *Metrics) LocationSample(within bool) {
	if m == nil {
		return
	}
	label := "false"
	if within {
		label = "true"
	}
	m.locationSamples.WithLabelValues(label).Inc()
}
