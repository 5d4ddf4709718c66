package money

import (
	"errors"
	"math"
	"testing"
)

func TestParseCents(t *testing.T) {
	tests := []struct {
		in        string
		allowZero bool
		want      int64
		wantErr   error
	}{
		{in: "5.5", want: 550},
		{in: "5.50", want: 550},
		{in: "5", want: 500},
		{in: "0.01", want: 1},
		{in: "0.1", want: 10},
		{in: "007.05", want: 705},
		{in: "1234567.89", want: 123456789},
		{in: "0", allowZero: true, want: 0},
		{in: "0.00", allowZero: true, want: 0},
		{in: "0", wantErr: ErrNonPositiveAmount},
		{in: "0.00", wantErr: ErrNonPositiveAmount},
		{in: "5.123", wantErr: ErrInvalidFormat},
		{in: "-5", wantErr: ErrInvalidFormat},
		{in: "+5", wantErr: ErrInvalidFormat},
		{in: "$5.00", wantErr: ErrInvalidFormat},
		{in: "5,00", wantErr: ErrInvalidFormat},
		{in: "1,000.00", wantErr: ErrInvalidFormat},
		{in: ".50", wantErr: ErrInvalidFormat},
		{in: "5.", wantErr: ErrInvalidFormat},
		{in: "", wantErr: ErrInvalidFormat},
		{in: "   ", wantErr: ErrInvalidFormat},
		{in: " 5.00", wantErr: ErrInvalidFormat},
		{in: "1e3", wantErr: ErrInvalidFormat},
		{in: "92233720368547758", want: 9223372036854775800},
		{in: "92233720368547758.08", wantErr: ErrInvalidAmount},
		{in: "92233720368547759", wantErr: ErrInvalidAmount},
		{in: "99999999999999999999", wantErr: ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCents(tt.in, tt.allowZero)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseCents(%q) error = %v, want %v", tt.in, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCents(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseCents(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestSum(t *testing.T) {
	tests := []struct {
		name    string
		amounts []int64
		want    int64
		wantErr error
	}{
		{"empty", nil, 0, nil},
		{"several", []int64{1000, 250, 1}, 1251, nil},
		{"up to the limit", []int64{math.MaxInt64 - 1, 1}, math.MaxInt64, nil},
		{"past the limit", []int64{math.MaxInt64, 1}, 0, ErrInvalidAmount},
		{"largest parseable twice", []int64{9223372036854775800, 9223372036854775800}, 0, ErrInvalidAmount},
		{"negative", []int64{100, -1}, 0, ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Sum(tt.amounts...)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Sum(%v) error = %v, want %v", tt.amounts, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Sum(%v) = %d, want %d", tt.amounts, got, tt.want)
			}
		})
	}
}

func TestFormatCents(t *testing.T) {
	tests := []struct {
		cents     int64
		want      string
		wantPlain string
	}{
		{0, "$0.00", "0.00"},
		{1, "$0.01", "0.01"},
		{550, "$5.50", "5.50"},
		{123456789, "$1234567.89", "1234567.89"},
		{-105, "-$1.05", "-1.05"},
		{-5, "-$0.05", "-0.05"},
	}

	for _, tt := range tests {
		if got := FormatCents(tt.cents); got != tt.want {
			t.Errorf("FormatCents(%d) = %q, want %q", tt.cents, got, tt.want)
		}
		if got := FormatCentsPlain(tt.cents); got != tt.wantPlain {
			t.Errorf("FormatCentsPlain(%d) = %q, want %q", tt.cents, got, tt.wantPlain)
		}
	}
}

func TestFormatThenParse(t *testing.T) {
	for _, cents := range []int64{1, 10, 99, 100, 101, 4999, 100000} {
		got, err := ParseCents(FormatCentsPlain(cents), false)
		if err != nil {
			t.Fatalf("ParseCents(FormatCentsPlain(%d)) error: %v", cents, err)
		}
		if got != cents {
			t.Errorf("round trip of %d gave %d", cents, got)
		}
	}
}
