package core

import (
	"errors"
	"testing"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in    string
		cents int64
		ok    bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"5.5", 550, true},
		{"0.01", 1, true},
		{"1.005", 101, true}, // half-up rounding
		{"1.004", 100, true},
		{" 2.50 ", 250, true},
		{"10.00", 1000, true},
		{".5", 50, true},
		{"+5", 500, true},
		{"-5", 0, false},
		{"-0.5", 0, false},
		{"-abc", 0, false},
		{"0", 0, false},
		{"0.00", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
		{".", 0, false},
		{"-", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || got.Cents != tc.cents {
				t.Fatalf("%q expected %d cents, got %d (err=%v)", tc.in, tc.cents, got.Cents, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestParseAmountErrorKinds(t *testing.T) {
	_, err := ParseAmount("-5")
	if !errors.Is(err, ErrNonPositiveAmount) {
		t.Fatalf("-5: expected ErrNonPositiveAmount, got %v", err)
	}
	if !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("-5: ErrNonPositiveAmount should match ErrInvalidAmount")
	}

	_, err = ParseAmount("0")
	if !errors.Is(err, ErrNonPositiveAmount) {
		t.Fatalf("0: expected ErrNonPositiveAmount, got %v", err)
	}

	_, err = ParseAmount("abc")
	if errors.Is(err, ErrNonPositiveAmount) {
		t.Fatalf("abc: expected plain ErrInvalidAmount, got %v", err)
	}
	if !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("abc: expected ErrInvalidAmount, got %v", err)
	}
}

func TestDecimalString(t *testing.T) {
	cases := []struct {
		cents int64
		out   string
	}{
		{1000, "10"},
		{1250, "12.5"},
		{1234, "12.34"},
		{7, "0.07"},
		{550, "5.5"},
		{100, "1"},
		{101, "1.01"},
		{110, "1.1"},
	}
	for _, tc := range cases {
		if got := (Money{Cents: tc.cents}).DecimalString(); got != tc.out {
			t.Fatalf("%d cents expected %q, got %q", tc.cents, tc.out, got)
		}
	}
}

func TestMoneyValidate(t *testing.T) {
	if err := (Money{Cents: 1}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Money{Cents: 0}).Validate(); err == nil {
		t.Fatalf("expected error for zero")
	}
	if err := (Money{Cents: -5}).Validate(); err == nil {
		t.Fatalf("expected error for negative")
	}
}

func TestDollars(t *testing.T) {
	if got := (Money{Cents: 1550}).Dollars(); got != 15.5 {
		t.Fatalf("expected 15.5, got %v", got)
	}
}
