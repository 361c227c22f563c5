package validator

import (
	"errors"
	"testing"
	"time"
)

var bucharest = mustLocation("Europe/Bucharest")

func mustLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

func TestValidateInterval(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"empty means unavailable", "", nil},
		{"well formed", "09:00-17:00", nil},
		{"syntactic only", "25:99-07:00", nil},
		{"missing dash", "09:00 17:00", ErrInvalidInterval},
		{"two dashes", "09:00-17:00-18:00", ErrInvalidInterval},
		{"one colon", "0900-17:00", ErrInvalidInterval},
		{"no colons", "9-17", ErrInvalidInterval},
		{"letters", "09:0a-17:00", ErrIntervalHasLetters},
		{"word", "closed", ErrInvalidInterval},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInterval(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ValidateInterval(%q) = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateSlots(t *testing.T) {
	now := time.Date(2030, 6, 10, 12, 0, 0, 0, bucharest)

	tests := []struct {
		name    string
		date    string
		start   string
		count   int
		wantErr error
	}{
		{"full working day", "2099-01-01", "08:00", 24, nil},
		{"one past closing", "2099-01-01", "08:00", 25, ErrSlotsOutsideWorkingDay},
		{"before opening", "2099-01-01", "07:30", 2, ErrSlotsOutsideWorkingDay},
		{"last slot ends at closing", "2099-01-01", "19:30", 1, nil},
		{"last slot ends after closing", "2099-01-01", "19:30", 2, ErrSlotsOutsideWorkingDay},
		{"crosses midnight", "2099-01-01", "23:00", 3, ErrSlotsSpanDays},
		{"ends at midnight", "2099-01-01", "23:30", 1, ErrSlotsSpanDays},
		{"missing start", "2099-01-01", " ", 3, ErrStartSlotRequired},
		{"missing count", "2099-01-01", "09:00", 0, ErrSlotCountRequired},
		{"bad date", "01/01/2099", "09:00", 1, ErrInvalidSlotFormat},
		{"bad time", "2099-01-01", "9am", 1, ErrInvalidSlotFormat},
		{"in the past", "2030-06-10", "11:30", 1, ErrSlotInPast},
		{"later today", "2030-06-10", "12:30", 2, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSlots(tt.date, tt.start, tt.count, now, bucharest)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ValidateSlots(%q, %q, %d) = %v, want %v", tt.date, tt.start, tt.count, err, tt.wantErr)
			}
		})
	}
}

func TestGenerateSlots(t *testing.T) {
	slots, err := GenerateSlots("2099-03-02", "08:00", 24, bucharest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 24 {
		t.Fatalf("expected 24 slots, got %d", len(slots))
	}

	first, last := slots[0], slots[len(slots)-1]
	if got := first.Start.Format(TimeLayout); got != "08:00" {
		t.Errorf("first start = %s, want 08:00", got)
	}
	if got := last.Start.Format(TimeLayout); got != "19:30" {
		t.Errorf("last start = %s, want 19:30", got)
	}
	if got := last.End.Format(TimeLayout); got != "20:00" {
		t.Errorf("last end = %s, want 20:00", got)
	}

	for i := 1; i < len(slots); i++ {
		if !slots[i].Start.Equal(slots[i-1].End) {
			t.Fatalf("slot %d does not start where slot %d ends", i, i-1)
		}
		if d := slots[i].End.Sub(slots[i].Start); d != 30*time.Minute {
			t.Fatalf("slot %d lasts %s", i, d)
		}
	}
}

func TestGenerateSlotsRejectsBadInput(t *testing.T) {
	if _, err := GenerateSlots("2099-03-02", "noon", 2, bucharest); !errors.Is(err, ErrInvalidSlotFormat) {
		t.Fatalf("expected ErrInvalidSlotFormat, got %v", err)
	}
}

func TestIntervalTag(t *testing.T) {
	type week struct {
		Mon string `validate:"interval"`
		Tue string `validate:"interval"`
	}

	v := NewValidator()
	if err := v.Validate(&week{Mon: "09:00-12:00"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := v.Validate(&week{Mon: "09:00-12:00", Tue: "morning"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	fields := v.FormatValidationErrors(err)
	if _, ok := fields["Tue"]; !ok {
		t.Fatalf("expected error on Tue, got %v", fields)
	}
}
