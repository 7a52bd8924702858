package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// EscrowMetrics covers the money-moving paths of the lifecycle engine.
type EscrowMetrics struct {
	EscrowsCreatedTotal  prometheus.CounterVec
	EscrowsFundedTotal   prometheus.CounterVec
	EscrowsFundedAmount  prometheus.CounterVec
	EscrowsReleasedTotal prometheus.CounterVec
	EscrowsRefundedTotal prometheus.CounterVec

	DisputesOpenedTotal   prometheus.CounterVec
	DisputesResolvedTotal prometheus.CounterVec

	GatewayErrorsTotal     prometheus.CounterVec
	GatewayCallDuration    prometheus.HistogramVec
	ReconcileDivergedTotal prometheus.CounterVec
}

func NewEscrowMetrics() *EscrowMetrics {
	return &EscrowMetrics{
		EscrowsCreatedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrows_created_total",
				Help: "Number of escrows created (pending)",
			},
			[]string{"currency"},
		),

		EscrowsFundedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrows_funded_total",
				Help: "Number of escrows moved to funded",
			},
			[]string{"currency"},
		),

		EscrowsFundedAmount: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrows_funded_amount_total",
				Help: "Total funded amount in minor currency units",
			},
			[]string{"currency"},
		),

		EscrowsReleasedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrows_released_total",
				Help: "Number of escrows released to the freelancer",
			},
			[]string{"currency", "via"}, // via = "client" or "dispute"
		),

		EscrowsRefundedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrows_refunded_total",
				Help: "Number of escrows refunded to the client",
			},
			[]string{"currency"},
		),

		DisputesOpenedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "disputes_opened_total",
				Help: "Number of disputes raised",
			},
			[]string{"raised_by_role"},
		),

		DisputesResolvedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "disputes_resolved_total",
				Help: "Number of disputes resolved by an admin",
			},
			[]string{"decision"},
		),

		GatewayErrorsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_gateway_errors_total",
				Help: "Payment gateway failures by operation",
			},
			[]string{"operation"},
		),

		GatewayCallDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "payment_gateway_call_duration_seconds",
				Help:    "Latency of payment gateway calls",
				Buckets: prometheus.ExponentialBuckets(0.05, 2, 8),
			},
			[]string{"operation"},
		),

		ReconcileDivergedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrow_reconcile_diverged_total",
				Help: "Escrows whose stored status diverged from live gateway status",
			},
			[]string{"stored_status", "gateway_status"},
		),
	}
}
