package model

import (
	"time"
)

// SlotTimeLayout is the canonical form of a slot start instant: ISO-8601
// UTC with millisecond precision. The rendered string doubles as the slot
// identifier and as the unique booking key in storage.
const SlotTimeLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatSlotTime renders t in the canonical slot form.
func FormatSlotTime(t time.Time) string {
	return t.UTC().Format(SlotTimeLayout)
}

// Booking binds one slot start instant to one patient. At most one booking
// may exist per distinct SlotStartTime value, enforced by a unique index on
// the Bookings collection. Bookings are created once and never updated or
// deleted.
type Booking struct {
	ID            string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	UserID        string    `json:"user_id" bson:"user_id" validate:"required,mongodb"`
	SlotStartTime string    `json:"slot_start_time" bson:"slot_start_time" validate:"required"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// BookingRequest is the booking endpoint payload. SlotID carries the
// canonical string form of the requested slot's start time. No structural
// validation against the clinic template happens here; collisions are
// resolved by the storage layer.
type BookingRequest struct {
	SlotID string `json:"slot_id" validate:"required,min=1,max=64"`
}

// AdminBooking is the administrator view of a booking, joined with the
// owning patient's name and email.
type AdminBooking struct {
	ID            string    `json:"id" bson:"_id"`
	SlotStartTime string    `json:"slot_start_time" bson:"slot_start_time"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
	PatientName   string    `json:"patient_name" bson:"patient_name"`
	PatientEmail  string    `json:"patient_email" bson:"patient_email"`
}
