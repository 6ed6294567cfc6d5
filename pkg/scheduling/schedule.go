package scheduling

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrEmptyDailyTimes is returned when a daily-cadence frequency is given no
// per-day times. Callers must supply at least one HH:MM entry; there is no
// silent default for daily schedules.
var ErrEmptyDailyTimes = errors.New("dailyTimes cannot be empty for daily medications")

// fallbackTime is used for weekly and monthly cadences when the caller
// supplies no times.
const fallbackTime = "09:00"

// GenerateSchedule expands a medication's date range and frequency into the
// concrete dose timestamps to persist. Both bounds are inclusive. The result
// is strictly increasing, with seconds and sub-second components zeroed, and
// is a pure function of its inputs.
//
// Daily cadences emit one timestamp per entry of dailyTimes for every calendar
// day in the range, in list order. Weekly cadences step by the frequency's day
// interval and monthly cadences by one calendar month, both using only the
// first entry of dailyTimes (or 09:00 when none is given). An unrecognized
// frequency yields an empty schedule rather than an error; validate with
// ParseFrequency first if that matters.
func GenerateSchedule(startDate, endDate time.Time, frequency Frequency, dailyTimes []string) ([]time.Time, error) {
	var scheduled []time.Time

	switch frequency.Cadence() {
	case CadenceDaily:
		if len(dailyTimes) == 0 {
			return nil, ErrEmptyDailyTimes
		}
		for day := startDate; !day.After(endDate); day = day.AddDate(0, 0, 1) {
			for _, hhmm := range dailyTimes {
				at, err := atTime(day, hhmm)
				if err != nil {
					return nil, err
				}
				scheduled = append(scheduled, at)
			}
		}

	case CadenceWeekly:
		step := frequency.DayInterval()
		hhmm := firstOrFallback(dailyTimes)
		for day := startDate; !day.After(endDate); day = day.AddDate(0, 0, step) {
			at, err := atTime(day, hhmm)
			if err != nil {
				return nil, err
			}
			scheduled = append(scheduled, at)
		}

	case CadenceMonthly:
		hhmm := firstOrFallback(dailyTimes)
		for day := startDate; !day.After(endDate); day = day.AddDate(0, 1, 0) {
			at, err := atTime(day, hhmm)
			if err != nil {
				return nil, err
			}
			scheduled = append(scheduled, at)
		}
	}

	return scheduled, nil
}

func firstOrFallback(dailyTimes []string) string {
	if len(dailyTimes) > 0 && dailyTimes[0] != "" {
		return dailyTimes[0]
	}
	return fallbackTime
}

// atTime places an HH:MM wall-clock time onto the given day, zeroing seconds
// and nanoseconds.
func atTime(day time.Time, hhmm string) (time.Time, error) {
	hour, minute, err := ParseHHMM(hhmm)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location()), nil
}

// ParseHHMM parses a 24-hour "HH:MM" string.
func ParseHHMM(s string) (hour, minute int, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid time %q: bad hour", s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid time %q: bad minute", s)
	}
	return hour, minute, nil
}

// FormatHHMM renders an hour/minute pair as a 24-hour "HH:MM" string.
func FormatHHMM(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}
