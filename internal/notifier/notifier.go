package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"clinicbook/pkg/kafka"
	"clinicbook/pkg/logger"
)

// Notifier consumes booking events and dispatches confirmations. The only
// channel today is the structured log; the handler is the seam where mail
// or SMS delivery would plug in.
type Notifier struct {
	log *logger.Logger
}

func New(log *logger.Logger) *Notifier {
	return &Notifier{log: log}
}

type bookingCreated struct {
	BookingID     string `json:"booking_id"`
	UserID        string `json:"user_id"`
	SlotStartTime string `json:"slot_start_time"`
}

// Handle implements kafka.MessageHandler.
func (n *Notifier) Handle(ctx context.Context, msg kafka.Message) error {
	if msg.EventType() != kafka.EventBookingCreated {
		n.log.Debug("Skipping event of unknown type",
			"event_type", msg.EventType(),
			"topic", msg.Topic,
			"offset", msg.Offset,
		)
		return nil
	}

	var event bookingCreated
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return fmt.Errorf("failed to decode booking.created event: %w", err)
	}

	n.log.Info("Booking confirmation",
		"booking_id", event.BookingID,
		"user_id", event.UserID,
		"slot_start_time", event.SlotStartTime,
		"event_id", msg.Headers[kafka.HeaderEventID],
	)
	return nil
}
