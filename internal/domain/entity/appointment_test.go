package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestDeriveStatus(t *testing.T) {
	now := time.Date(2030, 5, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		date      time.Time
		lifecycle AppointmentLifecycle
		want      ConsultationStatus
	}{
		{"future scheduled", now.Add(time.Hour), AppointmentScheduled, StatusActive},
		{"exactly now", now, AppointmentScheduled, StatusActive},
		{"past scheduled", now.Add(-time.Minute), AppointmentScheduled, StatusAttended},
		{"future cancelled", now.Add(time.Hour), AppointmentCancelled, StatusCancelled},
		{"past cancelled", now.Add(-time.Hour), AppointmentCancelled, StatusCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveStatus(tt.date, tt.lifecycle, now); got != tt.want {
				t.Fatalf("DeriveStatus = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestAppointmentIsParty(t *testing.T) {
	patient, doctor := uuid.New(), uuid.New()
	a := &Appointment{PacientID: patient, MedicID: doctor}

	if !a.IsParty(patient) || !a.IsParty(doctor) {
		t.Fatal("expected both parties to be recognised")
	}
	if a.IsParty(uuid.New()) {
		t.Fatal("stranger recognised as party")
	}
}

func TestParseConsultationStatus(t *testing.T) {
	if s, ok := ParseConsultationStatus(" attended "); !ok || s != StatusAttended {
		t.Fatalf("got %q, %v", s, ok)
	}
	if _, ok := ParseConsultationStatus("pending"); ok {
		t.Fatal("unknown status accepted")
	}
}

func TestParseSortOrder(t *testing.T) {
	cases := map[string]SortOrder{
		"asc":           SortAsc,
		"ASC":           SortAsc,
		"desc":          SortDesc,
		"":              SortDesc,
		"1; DROP TABLE": SortDesc,
	}
	for raw, want := range cases {
		if got := ParseSortOrder(raw); got != want {
			t.Errorf("ParseSortOrder(%q) = %s, want %s", raw, got, want)
		}
	}
}

func TestAvailabilityOverlaps(t *testing.T) {
	base := time.Date(2030, 5, 1, 9, 0, 0, 0, time.UTC)
	slot := &Availability{StartTime: base}

	if !slot.Overlaps(base.Add(15 * time.Minute)) {
		t.Error("15 minutes later should overlap")
	}
	if !slot.Overlaps(base.Add(-29 * time.Minute)) {
		t.Error("29 minutes earlier should overlap")
	}
	if slot.Overlaps(base.Add(30 * time.Minute)) {
		t.Error("adjacent slot should not overlap")
	}
	if slot.Overlaps(base.Add(-30 * time.Minute)) {
		t.Error("adjacent slot before should not overlap")
	}
}
