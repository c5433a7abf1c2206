package http

import (
	"errors"
	"strings"
	"testing"
)

func TestHex32Validation(t *testing.T) {
	type P struct {
		DonorID string `validate:"hex32"`
	}
	cv := NewValidator()

	ok := P{DonorID: strings.Repeat("a", 32)}
	if err := cv.Validate(ok); err != nil {
		t.Fatalf("expected valid hex32, got err: %v", err)
	}

	for _, s := range []string{
		"",                                  // empty
		strings.Repeat("A", 32),             // uppercase
		"deadbeef",                          // too short
		strings.Repeat("g", 32),             // non-hex char
		"3f9a6a1b3d544fbe8b3a6b3e8d6b2c8",   // 31 chars
		"3f9a6a1b3d544fbe8b3a6b3e8d6b2c88x", // 33 with extra
	} {
		bad := P{DonorID: s}
		err := cv.Validate(bad)
		if err == nil {
			t.Fatalf("expected error for %q", s)
		}
		fe := ToFieldErrors(err)
		if !containsFieldMsg(fe, "DonorID", "32-char lowercase hex") {
			t.Fatalf("expected hex32 message for %q, got: %+v", s, fe)
		}
	}
}

func TestDec2Validation(t *testing.T) {
	type P struct {
		Amount float64 `validate:"dec2"`
	}
	cv := NewValidator()

	for _, v := range []float64{499.99, 500.00, 0.9, 1.2} {
		if err := cv.Validate(P{Amount: v}); err != nil {
			t.Fatalf("expected dec2 OK for %v, got %v", v, err)
		}
	}
	for _, v := range []float64{1.234, 2.9999} {
		err := cv.Validate(P{Amount: v})
		if err == nil {
			t.Fatalf("expected dec2 error for %v", v)
		}
		fe := ToFieldErrors(err)
		if !containsFieldMsg(fe, "Amount", "at most 2 decimal places") {
			t.Fatalf("expected 'at most 2 decimal places' for %v, got %+v", v, fe)
		}
	}
}

func TestDecisionValidation(t *testing.T) {
	type P struct {
		Status string `validate:"decision"`
	}
	cv := NewValidator()

	for _, s := range []string{"APPROVED", "REJECTED"} {
		if err := cv.Validate(P{Status: s}); err != nil {
			t.Fatalf("expected decision OK for %q, got %v", s, err)
		}
	}
	for _, s := range []string{"", "PENDING", "approved", "CANCELLED"} {
		err := cv.Validate(P{Status: s})
		if err == nil {
			t.Fatalf("expected decision error for %q", s)
		}
		fe := ToFieldErrors(err)
		if !containsFieldMsg(fe, "Status", "APPROVED or REJECTED") {
			t.Fatalf("expected decision message for %q, got %+v", s, fe)
		}
	}
}

func TestRequiredAndBoundsMapping(t *testing.T) {
	type P struct {
		Name     string  `validate:"required"`
		Capacity int     `validate:"gte=0"`
		Quantity float64 `validate:"gt=0"`
		Amount   float64 `validate:"dec2,gte=0"`
	}
	cv := NewValidator()

	// violate all four tags at once
	err := cv.Validate(P{
		Name:     "",
		Capacity: -1,
		Quantity: 0,
		Amount:   1.333,
	})
	if err == nil {
		t.Fatalf("expected validation errors")
	}
	fe := ToFieldErrors(err)

	if !containsFieldMsg(fe, "Name", "is required") {
		t.Fatalf("missing 'is required' for Name: %+v", fe)
	}
	if !containsFieldMsg(fe, "Capacity", "greater than or equal to 0") {
		t.Fatalf("missing gte message for Capacity: %+v", fe)
	}
	if !containsFieldMsg(fe, "Quantity", "greater than 0") {
		t.Fatalf("missing gt message for Quantity: %+v", fe)
	}
	if !containsFieldMsg(fe, "Amount", "at most 2 decimal places") {
		t.Fatalf("missing dec2 message for Amount: %+v", fe)
	}
}

func TestToFieldErrors_NonValidation(t *testing.T) {
	err := errors.New("boom")
	fe := ToFieldErrors(err)
	if len(fe) != 1 {
		t.Fatalf("expected 1 field error, got %d", len(fe))
	}
	if fe[0].Field != "_" || fe[0].Message != "boom" {
		t.Fatalf("unexpected mapping: %+v", fe[0])
	}
}
