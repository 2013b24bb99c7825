package service

import (
	"context"
	"errors"
	"sync"
	"time"

	bookingserrors "clinicbook/internal/bookings/errors"
	"clinicbook/internal/bookings/repository"
	"clinicbook/internal/bookings/validator"
	"clinicbook/pkg/config"
	apperrors "clinicbook/pkg/errors"
	"clinicbook/pkg/model"
)

type BookingService interface {
	AvailableSlots(ctx context.Context, from, to time.Time) ([]model.Slot, error)
	Book(ctx context.Context, slotID string, userID string) (*model.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]*model.Booking, error)
	ListAll(ctx context.Context, limit int, offset int64) ([]*model.AdminBooking, int64, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	validator *validator.BookingValidator
	events    EventPublisher
	cfg       *config.Config
}

// NewBookingService wires the booking domain. events may be nil when event
// publication is disabled.
func NewBookingService(
	repo repository.BookingRepository,
	validator *validator.BookingValidator,
	events EventPublisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		validator: validator,
		events:    events,
		cfg:       cfg,
	}
}

// Book converts a slot id into a persisted booking with a single atomic
// insert. Correctness under concurrency is delegated entirely to the unique
// index on slot_start_time: among N concurrent attempts on the same slot
// exactly one insert is admitted, every other caller gets SlotTaken. The
// service holds no slot state between requests and takes no locks.
func (s *bookingService) Book(ctx context.Context, slotID string, userID string) (*model.Booking, error) {
	req := &model.BookingRequest{SlotID: slotID}
	if err := s.validator.ValidateRequest(req); err != nil {
		s.cfg.Log.Warn("Booking request validation failed", "error", err)
		return nil, apperrors.Validation("Invalid booking request", map[string]any{"error": err.Error()})
	}
	if userID == "" {
		return nil, apperrors.Unauthorized("Booking requires an authenticated user")
	}

	booking := &model.Booking{
		UserID:        userID,
		SlotStartTime: slotID,
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		if errors.Is(err, bookingserrors.ErrDuplicateSlot) {
			s.cfg.Log.Info("Booking conflict, slot already taken",
				"slot_start_time", slotID,
				"user_id", userID,
			)
			return nil, apperrors.SlotTaken()
		}
		s.cfg.Log.Error("Failed to create booking", "slot_start_time", slotID, "error", err)
		return nil, apperrors.Internal("Failed to create booking", err)
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"user_id", booking.UserID,
		"slot_start_time", booking.SlotStartTime,
	)

	s.publishCreated(ctx, booking)

	return booking, nil
}

func (s *bookingService) ListByUser(ctx context.Context, userID string) ([]*model.Booking, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("User ID cannot be empty")
	}

	bookings, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings for user", "user_id", userID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}

	if bookings == nil {
		bookings = []*model.Booking{}
	}
	return bookings, nil
}

func (s *bookingService) ListAll(ctx context.Context, limit int, offset int64) ([]*model.AdminBooking, int64, error) {
	var count int64
	var bookings []*model.AdminBooking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count bookings", "error", errCount)
			errCount = apperrors.Internal("Failed to count bookings", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		bookings, errFind = s.repo.FindAllWithPatients(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list bookings", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve bookings", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	if bookings == nil {
		bookings = []*model.AdminBooking{}
	}
	return bookings, count, nil
}
