package reminder

import (
	"fmt"
	"time"
)

// FormatOverdueDuration renders how long a dose has been overdue, in whole
// minutes under an hour and whole hours beyond that. Returns "" when the dose
// is not overdue.
func FormatOverdueDuration(scheduledAt, now time.Time) string {
	if !now.After(scheduledAt) {
		return ""
	}

	minutes := int(now.Sub(scheduledAt).Minutes())
	if minutes < 60 {
		return fmt.Sprintf("%d minute%s", minutes, plural(minutes))
	}

	hours := minutes / 60
	return fmt.Sprintf("%d hour%s", hours, plural(hours))
}

// DoseMessage builds the reminder message for a dose that is due.
func DoseMessage(medicationName, dosage string, scheduledAt time.Time) string {
	return fmt.Sprintf("Time to take %s (%s) - scheduled for %s",
		medicationName, dosage, scheduledAt.Format("15:04"))
}

// OverdueMessage builds the alert message for a dose past its slot.
func OverdueMessage(medicationName, dosage, overdue string) string {
	return fmt.Sprintf("%s (%s) is overdue by %s", medicationName, dosage, overdue)
}

// IsDue reports whether a dose's slot has arrived, allowing scheduled times up
// to tolerance in the future to count as due.
func IsDue(scheduledAt, now time.Time, tolerance time.Duration) bool {
	diff := scheduledAt.Sub(now)
	return diff <= tolerance
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
