package handler

import (
	"strings"
	"testing"
)

func TestValidator_Messages(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name string
		in   any
		want []string
	}{
		{
			name: "required uses json names",
			in:   &reminderRequest{},
			want: []string{"title is required", "remind_at is required"},
		},
		{
			name: "email and min",
			in:   &signUpRequest{Email: "nope", Password: "123"},
			want: []string{"email must be a valid email", "password must be at least 6"},
		},
		{
			name: "oneof",
			in:   &signUpRequest{Email: "a@b.test", Password: "secret1", Role: "janitor"},
			want: []string{"role must be one of: admin teacher student guest"},
		},
		{
			name: "datetime",
			in:   &createEventRequest{Title: "Fair", Date: "tomorrow", Location: "Gym"},
			want: []string{"date must match the layout 2006-01-02"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.in)
			if err == nil {
				t.Fatal("expected validation error")
			}
			for _, w := range tt.want {
				if !strings.Contains(err.Error(), w) {
					t.Errorf("error %q missing %q", err, w)
				}
			}
		})
	}
}

func TestValidator_UnmappedRule(t *testing.T) {
	type capacity struct {
		Seats int `json:"seats" validate:"gt=0"`
	}
	err := NewValidator().Validate(&capacity{})
	if err == nil || err.Error() != "seats failed validation (gt)" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidator_Valid(t *testing.T) {
	v := NewValidator()
	req := &createEventRequest{Title: "Fair", Date: "2026-11-02", Location: "Gym"}
	if err := v.Validate(req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
