package scheduling

import "fmt"

// Frequency is the closed set of medication cadences supported by the scheduler.
type Frequency string

const (
	OnceADay        Frequency = "Once a day"
	TwiceADay       Frequency = "Twice a day"
	ThreeTimesADay  Frequency = "Three times a day"
	FourTimesADay   Frequency = "Four times a day"
	OnceAWeek       Frequency = "Once a week"
	TwiceAWeek      Frequency = "Twice a week"
	ThreeTimesAWeek Frequency = "Three times a week"
	OnceAMonth      Frequency = "Once a month"
)

// Cadence is the cycle class implied by a frequency.
type Cadence int

const (
	CadenceUnknown Cadence = iota
	CadenceDaily
	CadenceWeekly
	CadenceMonthly
)

// Frequencies lists all supported frequency values in display order.
func Frequencies() []Frequency {
	return []Frequency{
		OnceADay, TwiceADay, ThreeTimesADay, FourTimesADay,
		OnceAWeek, TwiceAWeek, ThreeTimesAWeek,
		OnceAMonth,
	}
}

// ParseFrequency validates a wire-format frequency string.
func ParseFrequency(s string) (Frequency, error) {
	f := Frequency(s)
	switch f {
	case OnceADay, TwiceADay, ThreeTimesADay, FourTimesADay,
		OnceAWeek, TwiceAWeek, ThreeTimesAWeek, OnceAMonth:
		return f, nil
	}
	return "", fmt.Errorf("unknown frequency: %q", s)
}

// Cadence returns the cycle class of the frequency.
func (f Frequency) Cadence() Cadence {
	switch f {
	case OnceADay, TwiceADay, ThreeTimesADay, FourTimesADay:
		return CadenceDaily
	case OnceAWeek, TwiceAWeek, ThreeTimesAWeek:
		return CadenceWeekly
	case OnceAMonth:
		return CadenceMonthly
	}
	return CadenceUnknown
}

// DayInterval returns the day step used for weekly cadences. "Twice a week"
// steps every 3 days and "Three times a week" every 2 days, which yields 2-3
// occurrences per 7-day window rather than an exact per-calendar-week count.
func (f Frequency) DayInterval() int {
	switch f {
	case OnceAWeek:
		return 7
	case TwiceAWeek:
		return 3
	case ThreeTimesAWeek:
		return 2
	}
	return 7
}

// SlotsPerDay returns how many per-day time slots a daily frequency uses.
func (f Frequency) SlotsPerDay() int {
	switch f {
	case OnceADay:
		return 1
	case TwiceADay:
		return 2
	case ThreeTimesADay:
		return 3
	case FourTimesADay:
		return 4
	}
	return 0
}

func (f Frequency) String() string {
	return string(f)
}
