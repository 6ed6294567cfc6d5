package reminder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatOverdueDuration(t *testing.T) {
	base := time.Date(2024, time.March, 5, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		now  time.Time
		want string
	}{
		{"not overdue", base.Add(-5 * time.Minute), ""},
		{"exactly on time", base, ""},
		{"one minute", base.Add(1 * time.Minute), "1 minute"},
		{"minutes", base.Add(45 * time.Minute), "45 minutes"},
		{"one hour", base.Add(60 * time.Minute), "1 hour"},
		{"partial hours truncate", base.Add(119 * time.Minute), "1 hour"},
		{"hours", base.Add(3 * time.Hour), "3 hours"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatOverdueDuration(base, tt.now))
		})
	}
}

func TestDoseMessage(t *testing.T) {
	scheduledAt := time.Date(2024, time.March, 5, 9, 30, 0, 0, time.UTC)
	assert.Equal(t,
		"Time to take Lisinopril (10mg) - scheduled for 09:30",
		DoseMessage("Lisinopril", "10mg", scheduledAt))
}

func TestOverdueMessage(t *testing.T) {
	assert.Equal(t,
		"Metformin (500mg) is overdue by 2 hours",
		OverdueMessage("Metformin", "500mg", "2 hours"))
}

func TestIsDue(t *testing.T) {
	now := time.Date(2024, time.March, 5, 9, 0, 0, 0, time.UTC)
	tolerance := time.Minute

	assert.True(t, IsDue(now.Add(-time.Hour), now, tolerance))
	assert.True(t, IsDue(now, now, tolerance))
	assert.True(t, IsDue(now.Add(30*time.Second), now, tolerance))
	assert.False(t, IsDue(now.Add(2*time.Minute), now, tolerance))
}

func TestIsDuplicateKey(t *testing.T) {
	assert.False(t, isDuplicateKey(nil))
	assert.True(t, isDuplicateKey(errUnique("UNIQUE constraint failed: events.key")))
	assert.True(t, isDuplicateKey(errUnique(`duplicate key value violates unique constraint "idx_events_key"`)))
	assert.False(t, isDuplicateKey(errUnique("connection refused")))
}

type errUnique string

func (e errUnique) Error() string { return string(e) }
