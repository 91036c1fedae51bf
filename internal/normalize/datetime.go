package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/bcampbell/fuzzytime"
	"github.com/itlightning/dateparse"

	"eventbooking/internal/domain"
)

const (
	msgInvalidDate = "Invalid date format"
	msgInvalidTime = "Invalid time format. Use HH:MM or HH:MM AM/PM."
)

var (
	time12Regex = regexp.MustCompile(`(?i)^(0?[1-9]|1[0-2]):([0-5]\d)[` + spaceClass + `]*(am|pm)$`)
	time24Regex = regexp.MustCompile(`^([01]?\d|2[0-3]):([0-5]\d)$`)
)

// Date parses s as a calendar date and returns it as YYYY-MM-DD.
// Time of day and zone offset are discarded; the written calendar day is kept.
func Date(s string) (string, error) {
	s = strings.TrimSpace(s)
	if t, err := dateparse.ParseAny(s); err == nil && t.Year() != 0 {
		return t.Format("2006-01-02"), nil
	}

	// Free-text dates ("Tuesday 5th March 2024") that dateparse rejects.
	dt, _, err := fuzzytime.Extract(s)
	if err != nil || dt.Empty() || !dt.HasYear() || !dt.HasMonth() || !dt.HasDay() {
		return "", domain.NewValidationError("date", msgInvalidDate)
	}
	// fuzzytime does not check the day against the month ("February 30").
	t := time.Date(dt.Year(), time.Month(dt.Month()), dt.Day(), 0, 0, 0, 0, time.UTC)
	if t.Year() != dt.Year() || int(t.Month()) != dt.Month() || t.Day() != dt.Day() {
		return "", domain.NewValidationError("date", msgInvalidDate)
	}
	return t.Format("2006-01-02"), nil
}

// Time accepts "H:MM AM/PM" (case-insensitive) or 24-hour "H:MM" and returns
// zero-padded 24-hour HH:MM.
func Time(s string) (string, error) {
	s = strings.TrimSpace(s)
	if m := time12Regex.FindStringSubmatch(s); m != nil {
		hour, _ := strconv.Atoi(m[1])
		switch {
		case strings.EqualFold(m[3], "am") && hour == 12:
			hour = 0
		case strings.EqualFold(m[3], "pm") && hour != 12:
			hour += 12
		}
		return fmt.Sprintf("%02d:%s", hour, m[2]), nil
	}
	if m := time24Regex.FindStringSubmatch(s); m != nil {
		hour, _ := strconv.Atoi(m[1])
		return fmt.Sprintf("%02d:%s", hour, m[2]), nil
	}
	return "", domain.NewValidationError("time", msgInvalidTime)
}
