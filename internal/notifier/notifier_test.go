package notifier

import (
	"context"
	"testing"

	"clinicbook/pkg/kafka"
	"clinicbook/pkg/logger"
)

func newTestNotifier() *Notifier {
	return New(logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	}))
}

func TestHandle_BookingCreated(t *testing.T) {
	n := newTestNotifier()

	msg := kafka.NewMessage().
		WithKey("2025-01-01T10:00:00.000Z").
		WithEventType(kafka.EventBookingCreated).
		WithValue(map[string]string{
			"booking_id":      "booking-1",
			"user_id":         "user-1",
			"slot_start_time": "2025-01-01T10:00:00.000Z",
		}).
		Build()

	if err := n.Handle(context.Background(), msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHandle_UnknownEventType(t *testing.T) {
	n := newTestNotifier()

	msg := kafka.NewMessage().
		WithKey("k").
		WithEventType("booking.cancelled").
		WithValue(map[string]string{"booking_id": "booking-1"}).
		Build()

	if err := n.Handle(context.Background(), msg); err != nil {
		t.Fatalf("unknown event types must be skipped, got error: %v", err)
	}
}

func TestHandle_MalformedPayload(t *testing.T) {
	n := newTestNotifier()

	msg := kafka.Message{
		Key:     "2025-01-01T10:00:00.000Z",
		Value:   []byte("{not json"),
		Headers: map[string]string{kafka.HeaderEventType: kafka.EventBookingCreated},
	}

	if err := n.Handle(context.Background(), msg); err == nil {
		t.Fatal("expected decode error for malformed payload")
	}
}
