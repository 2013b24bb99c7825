package validator

import (
	"strings"
	"testing"

	"clinicbook/pkg/logger"
	"clinicbook/pkg/model"
)

func newTestValidator() *BookingValidator {
	return NewBookingValidator(logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	}))
}

func TestValidateRequest_Valid(t *testing.T) {
	v := newTestValidator()

	err := v.ValidateRequest(&model.BookingRequest{SlotID: "2025-01-01T10:00:00.000Z"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRequest_EmptySlotID(t *testing.T) {
	v := newTestValidator()

	err := v.ValidateRequest(&model.BookingRequest{})
	if err == nil {
		t.Fatal("expected error for empty slot id")
	}
	if !strings.Contains(err.Error(), "SlotID") {
		t.Errorf("expected error naming SlotID, got: %v", err)
	}
}

func TestValidateRequest_OverlongSlotID(t *testing.T) {
	v := newTestValidator()

	err := v.ValidateRequest(&model.BookingRequest{SlotID: strings.Repeat("x", 65)})
	if err == nil {
		t.Fatal("expected error for overlong slot id")
	}
}
