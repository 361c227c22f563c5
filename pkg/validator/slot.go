package validator

import (
	"errors"
	"strings"
	"time"
	"unicode"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"

	slotLength   = 30 * time.Minute
	workdayStart = 8
	workdayEnd   = 20
)

var (
	ErrInvalidInterval        = errors.New("invalid time format, please use HH:MM-HH:MM format")
	ErrIntervalHasLetters     = errors.New("invalid time format, please use HH:MM-HH:MM format without letters")
	ErrStartSlotRequired      = errors.New("please select a start slot")
	ErrSlotCountRequired      = errors.New("please select the number of consecutive consultations")
	ErrInvalidSlotFormat      = errors.New("invalid date or start slot, use YYYY-MM-DD and HH:MM")
	ErrSlotInPast             = errors.New("the datetime of the first availability slot must not be in the past")
	ErrSlotsSpanDays          = errors.New("consultations must be in the same day")
	ErrSlotsOutsideWorkingDay = errors.New("all consultations must be between 8:00 and 20:00")
)

// TimeSlot is one generated [Start, End) consultation slot.
type TimeSlot struct {
	Start time.Time
	End   time.Time
}

// ValidateInterval checks a weekly timetable entry. Empty means Unavailable.
//
// The check is syntactic only: exactly one '-', exactly two ':' and no
// letters. It does not verify that both halves are real times or that the
// start precedes the end, so "25:99-07:00" is accepted.
func ValidateInterval(interval string) error {
	if interval == "" {
		return nil
	}
	if strings.Count(interval, ":") != 2 {
		return ErrInvalidInterval
	}
	if strings.Count(interval, "-") != 1 {
		return ErrInvalidInterval
	}
	for _, r := range interval {
		if unicode.IsLetter(r) {
			return ErrIntervalHasLetters
		}
	}
	return nil
}

// ValidateSlots checks a batch of count consecutive slots starting at
// startSlot on date against the publishing rules: not in the past, same
// calendar day, and inside the 08:00-20:00 working window.
func ValidateSlots(date, startSlot string, count int, now time.Time, loc *time.Location) error {
	if strings.TrimSpace(startSlot) == "" {
		return ErrStartSlotRequired
	}
	if count <= 0 {
		return ErrSlotCountRequired
	}

	start, err := parseSlotStart(date, startSlot, loc)
	if err != nil {
		return err
	}
	if start.Before(now) {
		return ErrSlotInPast
	}

	end := start.Add(time.Duration(count) * slotLength)
	y, m, d := start.Date()
	if !end.Before(time.Date(y, m, d+1, 0, 0, 0, 0, start.Location())) {
		return ErrSlotsSpanDays
	}

	opens := time.Date(y, m, d, workdayStart, 0, 0, 0, start.Location())
	closes := time.Date(y, m, d, workdayEnd, 0, 0, 0, start.Location())
	if start.Before(opens) || end.After(closes) {
		return ErrSlotsOutsideWorkingDay
	}

	return nil
}

// GenerateSlots expands a batch into its consecutive 30-minute slots.
func GenerateSlots(date, startSlot string, count int, loc *time.Location) ([]TimeSlot, error) {
	start, err := parseSlotStart(date, startSlot, loc)
	if err != nil {
		return nil, err
	}

	slots := make([]TimeSlot, 0, count)
	for i := 0; i < count; i++ {
		s := start.Add(time.Duration(i) * slotLength)
		slots = append(slots, TimeSlot{Start: s, End: s.Add(slotLength)})
	}
	return slots, nil
}

// ParseDate parses a YYYY-MM-DD date at midnight in loc.
func ParseDate(date string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(date), loc)
}

func parseSlotStart(date, startSlot string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	start, err := time.ParseInLocation(DateLayout+" "+TimeLayout, strings.TrimSpace(date)+" "+strings.TrimSpace(startSlot), loc)
	if err != nil {
		return time.Time{}, ErrInvalidSlotFormat
	}
	return start, nil
}
