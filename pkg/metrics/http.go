package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics records request metadata for the API surface.
type HTTPMetrics struct {
	duration *prometheus.HistogramVec
	requests *prometheus.CounterVec
}

// NewHTTPMetrics registers the request metrics on the provided registerer.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	if reg == nil {
		return &HTTPMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests by method, route, and status class.",
	}, []string{"method", "route", "status"})
	reg.MustRegister(duration, requests)
	return &HTTPMetrics{
		duration: duration,
		requests: requests,
	}
}

// Observe records one completed request.
func (h *HTTPMetrics) Observe(method, route, status string, duration time.Duration) {
	if h == nil || h.duration == nil {
		return
	}
	method = normalizeLabel(method)
	route = normalizeLabel(route)
	h.duration.WithLabelValues(method, route).Observe(duration.Seconds())
	h.requests.WithLabelValues(method, route, normalizeLabel(status)).Inc()
}

// StorefrontMetrics counts the commerce events worth alerting on.
type StorefrontMetrics struct {
	couponApplied  *prometheus.CounterVec
	couponRejected *prometheus.CounterVec
	cartWrites     prometheus.Counter
	wishlistSyncs  *prometheus.CounterVec
}

// NewStorefrontMetrics registers the commerce counters on the provided registerer.
func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	applied := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "coupon_applied_total",
		Help: "Coupons accepted at checkout, by code.",
	}, []string{"code"})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "coupon_rejected_total",
		Help: "Coupon validation failures, by reason.",
	}, []string{"reason"})
	cartWrites := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cart_writes_total",
		Help: "Cart persistence writes.",
	})
	syncs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wishlist_sync_total",
		Help: "Wishlist reconciliation runs, by outcome.",
	}, []string{"outcome"})
	reg.MustRegister(applied, rejected, cartWrites, syncs)
	return &StorefrontMetrics{
		couponApplied:  applied,
		couponRejected: rejected,
		cartWrites:     cartWrites,
		wishlistSyncs:  syncs,
	}
}

// IncCouponApplied counts an accepted coupon.
func (s *StorefrontMetrics) IncCouponApplied(code string) {
	if s == nil || s.couponApplied == nil {
		return
	}
	s.couponApplied.WithLabelValues(normalizeLabel(code)).Inc()
}

// IncCouponRejected counts a rejected coupon with the rejection reason.
func (s *StorefrontMetrics) IncCouponRejected(reason string) {
	if s == nil || s.couponRejected == nil {
		return
	}
	s.couponRejected.WithLabelValues(normalizeLabel(reason)).Inc()
}

// IncCartWrite counts one cart blob write.
func (s *StorefrontMetrics) IncCartWrite() {
	if s == nil || s.cartWrites == nil {
		return
	}
	s.cartWrites.Inc()
}

// IncWishlistSync counts one wishlist sync with its outcome.
func (s *StorefrontMetrics) IncWishlistSync(outcome string) {
	if s == nil || s.wishlistSyncs == nil {
		return
	}
	s.wishlistSyncs.WithLabelValues(normalizeLabel(outcome)).Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
