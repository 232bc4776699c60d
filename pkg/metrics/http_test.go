package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestHTTPMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.Observe("GET", "/api/v1/catalog/products", "2xx", 120*time.Millisecond)
	m.Observe("GET", "/api/v1/catalog/products", "2xx", 80*time.Millisecond)
	m.Observe("POST", "/api/v1/cart/items", "4xx", 10*time.Millisecond)

	got := testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/v1/catalog/products", "2xx"))
	if got != 2 {
		t.Fatalf("expected 2 catalog requests, got %v", got)
	}
	got = testutil.ToFloat64(m.requests.WithLabelValues("POST", "/api/v1/cart/items", "4xx"))
	if got != 1 {
		t.Fatalf("expected 1 cart request, got %v", got)
	}
}

func TestHTTPMetricsNilSafe(t *testing.T) {
	var m *HTTPMetrics
	m.Observe("GET", "/", "2xx", time.Millisecond)

	empty := NewHTTPMetrics(nil)
	empty.Observe("GET", "/", "2xx", time.Millisecond)
}

func TestStorefrontMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewStorefrontMetrics(reg)

	m.IncCouponApplied("NOIR10")
	m.IncCouponApplied("NOIR10")
	m.IncCouponRejected("expired")
	m.IncCartWrite()
	m.IncWishlistSync("merged")
	m.IncWishlistSync("")

	if got := testutil.ToFloat64(m.couponApplied.WithLabelValues("NOIR10")); got != 2 {
		t.Fatalf("expected 2 applied, got %v", got)
	}
	if got := testutil.ToFloat64(m.couponRejected.WithLabelValues("expired")); got != 1 {
		t.Fatalf("expected 1 rejected, got %v", got)
	}
	if got := testutil.ToFloat64(m.cartWrites); got != 1 {
		t.Fatalf("expected 1 cart write, got %v", got)
	}
	if got := testutil.ToFloat64(m.wishlistSyncs.WithLabelValues("unknown")); got != 1 {
		t.Fatalf("empty outcome should normalize to unknown, got %v", got)
	}
}
