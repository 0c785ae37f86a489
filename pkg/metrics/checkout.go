package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics records order submission and coupon outcomes.
type CheckoutMetrics struct {
	submitDuration   *prometheus.HistogramVec
	submitSuccess    *prometheus.CounterVec
	submitFailure    *prometheus.CounterVec
	couponRejections prometheus.Counter
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "order_submit_duration_seconds",
		Help:    "Duration of order submissions in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"zone"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_submit_success",
		Help: "Successful order submissions.",
	}, []string{"zone"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_submit_failure",
		Help: "Failed order submissions.",
	}, []string{"zone"})
	coupons := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "coupon_rejected_total",
		Help: "Coupon codes that failed validation.",
	})
	reg.MustRegister(duration, success, failure, coupons)
	return &CheckoutMetrics{
		submitDuration:   duration,
		submitSuccess:    success,
		submitFailure:    failure,
		couponRejections: coupons,
	}
}

// ObserveSubmitDuration records the duration of a submission for the zone.
func (c *CheckoutMetrics) ObserveSubmitDuration(zone string, duration time.Duration) {
	if c == nil || c.submitDuration == nil {
		return
	}
	c.submitDuration.WithLabelValues(normalizeLabel(zone)).Observe(duration.Seconds())
}

// IncSubmitSuccess increments the success counter for the zone.
func (c *CheckoutMetrics) IncSubmitSuccess(zone string) {
	if c == nil || c.submitSuccess == nil {
		return
	}
	c.submitSuccess.WithLabelValues(normalizeLabel(zone)).Inc()
}

// IncSubmitFailure increments the failure counter for the zone.
func (c *CheckoutMetrics) IncSubmitFailure(zone string) {
	if c == nil || c.submitFailure == nil {
		return
	}
	c.submitFailure.WithLabelValues(normalizeLabel(zone)).Inc()
}

// IncCouponRejected increments the invalid-coupon counter.
func (c *CheckoutMetrics) IncCouponRejected() {
	if c == nil || c.couponRejections == nil {
		return
	}
	c.couponRejections.Inc()
}

func normalizeLabel(zone string) string {
	if zone == "" {
		return "unknown"
	}
	return zone
}
