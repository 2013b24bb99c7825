package service

import (
	"context"
	"time"

	apperrors "clinicbook/pkg/errors"
	"clinicbook/pkg/model"
)

// AvailableSlots derives the free slots in [from, to) by expanding the
// clinic template over each calendar day and subtracting booked start
// times. It is a pure read: identical inputs against identical booking
// state always produce identical output, in ascending start-time order.
//
// The day cursor starts at `from` and advances in whole days while it is
// still before `to`, carrying `from`'s time-of-day along. Every visited day
// is expanded over the full template, so a `from` at noon still yields that
// day's morning slots. That mirrors the observable behavior this endpoint
// has always had; clients depend on whole-day slot listings.
func (s *bookingService) AvailableSlots(ctx context.Context, from, to time.Time) ([]model.Slot, error) {
	from = from.UTC()
	to = to.UTC()

	taken, err := s.repo.TakenSlotTimes(ctx, from, to)
	if err != nil {
		s.cfg.Log.Error("Failed to load booked slots", "error", err)
		return nil, apperrors.Internal("Failed to load booked slots", err)
	}

	slots := make([]model.Slot, 0)
	for day := from; day.Before(to); day = day.AddDate(0, 0, 1) {
		open := time.Date(day.Year(), day.Month(), day.Day(), s.cfg.ClinicOpenHour, 0, 0, 0, time.UTC)
		close := time.Date(day.Year(), day.Month(), day.Day(), s.cfg.ClinicCloseHour, 0, 0, 0, time.UTC)

		for start := open; start.Before(close); start = start.Add(s.cfg.SlotDuration) {
			id := model.FormatSlotTime(start)
			if _, booked := taken[id]; booked {
				continue
			}
			slots = append(slots, model.Slot{
				ID:        id,
				StartTime: id,
				EndTime:   model.FormatSlotTime(start.Add(s.cfg.SlotDuration)),
			})
		}
	}

	return slots, nil
}
