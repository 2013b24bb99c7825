package service

import (
	"context"
	"testing"
	"time"

	"clinicbook/internal/bookings/repository"
	"clinicbook/internal/bookings/validator"
	"clinicbook/pkg/config"
	"clinicbook/pkg/logger"
	"clinicbook/pkg/model"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
}

func testConfig() *config.Config {
	return &config.Config{
		Log:             testLogger(),
		ClinicOpenHour:  9,
		ClinicCloseHour: 17,
		SlotDuration:    30 * time.Minute,
		ReadTimeout:     5 * time.Second,
	}
}

func newTestService(repo repository.BookingRepository, events EventPublisher) *bookingService {
	cfg := testConfig()
	return &bookingService{
		repo:      repo,
		validator: validator.NewBookingValidator(cfg.Log),
		events:    events,
		cfg:       cfg,
	}
}

func TestAvailableSlots_FullDayTemplate(t *testing.T) {
	service := newTestService(&mockBookingRepository{}, nil)

	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)

	slots, err := service.AvailableSlots(context.Background(), from, to)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(slots) != 16 {
		t.Fatalf("expected 16 slots for a 9-17 day at 30min, got %d", len(slots))
	}

	first := slots[0]
	if first.StartTime != "2025-01-01T09:00:00.000Z" || first.EndTime != "2025-01-01T09:30:00.000Z" {
		t.Errorf("unexpected first slot: %+v", first)
	}
	if first.ID != first.StartTime {
		t.Errorf("slot ID must equal start time, got ID=%s start=%s", first.ID, first.StartTime)
	}

	last := slots[len(slots)-1]
	if last.StartTime != "2025-01-01T16:30:00.000Z" || last.EndTime != "2025-01-01T17:00:00.000Z" {
		t.Errorf("unexpected last slot: %+v", last)
	}
}

func TestAvailableSlots_ExcludesBookedSlots(t *testing.T) {
	booked := "2025-01-01T10:00:00.000Z"
	repo := &mockBookingRepository{
		takenSlotTimesFunc: func(ctx context.Context, from, to time.Time) (map[string]struct{}, error) {
			return map[string]struct{}{booked: {}}, nil
		},
	}
	service := newTestService(repo, nil)

	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)

	slots, err := service.AvailableSlots(context.Background(), from, to)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(slots) != 15 {
		t.Fatalf("expected 15 slots with one booked, got %d", len(slots))
	}
	for _, slot := range slots {
		if slot.ID == booked {
			t.Fatalf("booked slot %s must not appear as available", booked)
		}
	}
}

func TestAvailableSlots_Deterministic(t *testing.T) {
	repo := &mockBookingRepository{
		takenSlotTimesFunc: func(ctx context.Context, from, to time.Time) (map[string]struct{}, error) {
			return map[string]struct{}{"2025-01-01T09:30:00.000Z": {}}, nil
		},
	}
	service := newTestService(repo, nil)

	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC)

	first, err := service.AvailableSlots(context.Background(), from, to)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := service.AvailableSlots(context.Background(), from, to)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("repeated reads disagree on length: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("repeated reads disagree at %d: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestAvailableSlots_AscendingOrder(t *testing.T) {
	service := newTestService(&mockBookingRepository{}, nil)

	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 4, 0, 0, 0, 0, time.UTC)

	slots, err := service.AvailableSlots(context.Background(), from, to)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 48 {
		t.Fatalf("expected 48 slots over 3 days, got %d", len(slots))
	}

	for i := 1; i < len(slots); i++ {
		if slots[i-1].StartTime >= slots[i].StartTime {
			t.Fatalf("slots out of order at %d: %s >= %s", i, slots[i-1].StartTime, slots[i].StartTime)
		}
	}
}

func TestAvailableSlots_MidDayFromStillYieldsWholeDay(t *testing.T) {
	service := newTestService(&mockBookingRepository{}, nil)

	// A noon `from` visits Jan 1 once and the expansion still covers the
	// whole template, morning slots included.
	from := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)

	slots, err := service.AvailableSlots(context.Background(), from, to)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 16 {
		t.Fatalf("expected full 16-slot day, got %d", len(slots))
	}
	if slots[0].StartTime != "2025-01-01T09:00:00.000Z" {
		t.Errorf("expected morning slots to be listed, first is %s", slots[0].StartTime)
	}
}

func TestAvailableSlots_EmptyRange(t *testing.T) {
	service := newTestService(&mockBookingRepository{}, nil)

	cases := []struct {
		name string
		from time.Time
		to   time.Time
	}{
		{
			name: "from equals to",
			from: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			to:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "from after to",
			from: time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC),
			to:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			slots, err := service.AvailableSlots(context.Background(), tc.from, tc.to)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if slots == nil {
				t.Fatal("expected empty slice, got nil")
			}
			if len(slots) != 0 {
				t.Fatalf("expected no slots, got %d", len(slots))
			}
		})
	}
}

func TestAvailableSlots_AllBooked(t *testing.T) {
	repo := &mockBookingRepository{
		takenSlotTimesFunc: func(ctx context.Context, from, to time.Time) (map[string]struct{}, error) {
			taken := make(map[string]struct{})
			day := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
			for i := 0; i < 16; i++ {
				taken[model.FormatSlotTime(day.Add(time.Duration(i)*30*time.Minute))] = struct{}{}
			}
			return taken, nil
		},
	}
	service := newTestService(repo, nil)

	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)

	slots, err := service.AvailableSlots(context.Background(), from, to)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected fully booked day to yield no slots, got %d", len(slots))
	}
}
