package validator

import (
	"testing"

	"clinicbook/pkg/logger"
	"clinicbook/pkg/model"
)

func newTestValidator() *UserValidator {
	return NewUserValidator(logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	}))
}

func TestValidateRegister(t *testing.T) {
	v := newTestValidator()

	cases := []struct {
		name    string
		req     *model.RegisterRequest
		wantErr bool
	}{
		{
			name:    "valid",
			req:     &model.RegisterRequest{Name: "Jane Doe", Email: "jane@example.com", Password: "hunter22"},
			wantErr: false,
		},
		{
			name:    "single character name",
			req:     &model.RegisterRequest{Name: "J", Email: "jane@example.com", Password: "hunter22"},
			wantErr: true,
		},
		{
			name:    "invalid email",
			req:     &model.RegisterRequest{Name: "Jane Doe", Email: "jane-at-example", Password: "hunter22"},
			wantErr: true,
		},
		{
			name:    "password below minimum",
			req:     &model.RegisterRequest{Name: "Jane Doe", Email: "jane@example.com", Password: "abc12"},
			wantErr: true,
		},
		{
			name:    "missing everything",
			req:     &model.RegisterRequest{},
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.ValidateRegister(tc.req)
			if tc.wantErr && err == nil {
				t.Fatal("expected error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateLogin(t *testing.T) {
	v := newTestValidator()

	if err := v.ValidateLogin(&model.LoginRequest{Email: "jane@example.com", Password: "x"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := v.ValidateLogin(&model.LoginRequest{Email: "", Password: "x"}); err == nil {
		t.Fatal("expected error for missing email")
	}
	if err := v.ValidateLogin(&model.LoginRequest{Email: "jane@example.com"}); err == nil {
		t.Fatal("expected error for missing password")
	}
}
