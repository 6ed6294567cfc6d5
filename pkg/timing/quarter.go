package timing

import "time"

// Quarter is one of the four fixed day buckets used to group timing statistics.
type Quarter string

const (
	QuarterMorning   Quarter = "morning"
	QuarterAfternoon Quarter = "afternoon"
	QuarterEvening   Quarter = "evening"
	QuarterNight     Quarter = "night"
)

// Quarters lists all quarters in chronological display order.
func Quarters() []Quarter {
	return []Quarter{QuarterMorning, QuarterAfternoon, QuarterEvening, QuarterNight}
}

// DefaultTimes holds the system default preferred time per quarter. These seed
// new preference records and fill gaps when no learned preference exists.
var DefaultTimes = map[Quarter]string{
	QuarterMorning:   "09:00",
	QuarterAfternoon: "15:00",
	QuarterEvening:   "21:00",
	QuarterNight:     "03:00",
}

// QuarterHours maps each quarter to its inclusive [min,max] hour bounds on a
// 24-hour clock.
var QuarterHours = map[Quarter][2]int{
	QuarterMorning:   {6, 11},
	QuarterAfternoon: {12, 17},
	QuarterEvening:   {18, 23},
	QuarterNight:     {0, 5},
}

// QuarterLabels provides human-readable labels for each quarter.
var QuarterLabels = map[Quarter]string{
	QuarterMorning:   "Morning (6 AM - 12 PM)",
	QuarterAfternoon: "Afternoon (12 PM - 6 PM)",
	QuarterEvening:   "Evening (6 PM - 12 AM)",
	QuarterNight:     "Night (12 AM - 6 AM)",
}

// ClassifyQuarter buckets an instant by its local hour. Classification is
// total: every hour of the day belongs to exactly one quarter.
func ClassifyQuarter(t time.Time) Quarter {
	hour := t.Hour()
	switch {
	case hour >= 6 && hour <= 11:
		return QuarterMorning
	case hour >= 12 && hour <= 17:
		return QuarterAfternoon
	case hour >= 18 && hour <= 23:
		return QuarterEvening
	}
	return QuarterNight
}

// Label returns the human-readable label for the quarter.
func (q Quarter) Label() string {
	if label, ok := QuarterLabels[q]; ok {
		return label
	}
	return string(q)
}
