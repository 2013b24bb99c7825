package model

// Slot is a derived candidate appointment window within clinic hours. Slots
// are values, not entities: two slots with the same start time are the same
// slot, and none are persisted. ID equals StartTime in canonical form and is
// the key a booking request submits later.
type Slot struct {
	ID        string `json:"id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}
