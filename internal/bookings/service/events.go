package service

import (
	"context"
	"time"

	"clinicbook/pkg/kafka"
	"clinicbook/pkg/model"
)

// EventPublisher is satisfied by *kafka.Producer. Nil disables publication.
type EventPublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

// BookingCreatedEvent is the payload published after a successful insert.
type BookingCreatedEvent struct {
	BookingID     string    `json:"booking_id"`
	UserID        string    `json:"user_id"`
	SlotStartTime string    `json:"slot_start_time"`
	CreatedAt     time.Time `json:"created_at"`
}

// publishCreated emits a booking.created event, keyed by slot start time so
// events for one slot stay in order. Publication is best-effort: the
// booking already stands, so failures are logged and never surfaced.
func (s *bookingService) publishCreated(ctx context.Context, booking *model.Booking) {
	if s.events == nil {
		return
	}

	msg := kafka.NewMessage().
		WithKey(booking.SlotStartTime).
		WithEventType(kafka.EventBookingCreated).
		WithHeader(kafka.HeaderSource, "clinic-api").
		WithValue(BookingCreatedEvent{
			BookingID:     booking.ID,
			UserID:        booking.UserID,
			SlotStartTime: booking.SlotStartTime,
			CreatedAt:     booking.CreatedAt,
		}).
		Build()

	if err := s.events.Publish(ctx, msg); err != nil {
		s.cfg.Log.Warn("Failed to publish booking.created event",
			"booking_id", booking.ID,
			"slot_start_time", booking.SlotStartTime,
			"error", err,
		)
	}
}
