package orders

import (
	"testing"
	"time"

	"github.com/ateliernoir/ateliernoir-backend/pkg/db/models"
	"github.com/ateliernoir/ateliernoir-backend/pkg/enums"
)

func TestBuildTimelineShipped(t *testing.T) {
	t.Parallel()

	placed := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)
	confirmed := placed.Add(time.Hour)
	shipped := placed.Add(48 * time.Hour)
	order := &models.Order{
		Status:      enums.OrderStatusShipped,
		PlacedAt:    placed,
		ConfirmedAt: &confirmed,
		ShippedAt:   &shipped,
	}

	steps := BuildTimeline(order)
	if len(steps) != len(fulfillmentPath) {
		t.Fatalf("expected %d steps, got %d", len(fulfillmentPath), len(steps))
	}

	for i, step := range steps {
		wantCompleted := i <= 3
		if step.Completed != wantCompleted {
			t.Fatalf("step %s completed=%v, want %v", step.Status, step.Completed, wantCompleted)
		}
		if step.Current != (step.Status == enums.OrderStatusShipped) {
			t.Fatalf("step %s current=%v", step.Status, step.Current)
		}
	}

	if steps[0].At == nil || !steps[0].At.Equal(placed) {
		t.Fatalf("placed step timestamp = %v", steps[0].At)
	}
	if steps[3].At == nil || !steps[3].At.Equal(shipped) {
		t.Fatalf("shipped step timestamp = %v", steps[3].At)
	}
	if steps[4].At != nil || steps[5].At != nil {
		t.Fatal("future steps must not carry timestamps")
	}
}

func TestBuildTimelinePlacedOnly(t *testing.T) {
	t.Parallel()

	order := &models.Order{
		Status:   enums.OrderStatusPlaced,
		PlacedAt: time.Now().UTC(),
	}

	steps := BuildTimeline(order)
	if !steps[0].Completed || !steps[0].Current {
		t.Fatalf("placed step should be completed and current, got %+v", steps[0])
	}
	for _, step := range steps[1:] {
		if step.Completed || step.Current {
			t.Fatalf("step %s should be pending, got %+v", step.Status, step)
		}
	}
}

func TestBuildTimelineDelivered(t *testing.T) {
	t.Parallel()

	delivered := time.Now().UTC()
	order := &models.Order{
		Status:      enums.OrderStatusDelivered,
		PlacedAt:    delivered.Add(-72 * time.Hour),
		DeliveredAt: &delivered,
	}

	steps := BuildTimeline(order)
	for _, step := range steps {
		if !step.Completed {
			t.Fatalf("step %s should be completed", step.Status)
		}
	}
	last := steps[len(steps)-1]
	if !last.Current || last.Status != enums.OrderStatusDelivered {
		t.Fatalf("expected delivered as current, got %+v", last)
	}
}

func TestBuildTimelineCancelledShortCircuits(t *testing.T) {
	t.Parallel()

	cancelled := time.Now().UTC()
	order := &models.Order{
		Status:      enums.OrderStatusCancelled,
		PlacedAt:    cancelled.Add(-time.Hour),
		CancelledAt: &cancelled,
	}

	steps := BuildTimeline(order)
	if len(steps) != 2 {
		t.Fatalf("expected 2 steps for cancelled order, got %d", len(steps))
	}
	if steps[0].Status != enums.OrderStatusPlaced || !steps[0].Completed {
		t.Fatalf("unexpected first step %+v", steps[0])
	}
	if steps[1].Status != enums.OrderStatusCancelled || !steps[1].Current {
		t.Fatalf("unexpected terminal step %+v", steps[1])
	}
	if steps[1].At == nil || !steps[1].At.Equal(cancelled) {
		t.Fatalf("cancelled timestamp = %v", steps[1].At)
	}
}
