package timing

import (
	"fmt"
	"math"
	"time"

	"github.com/Zyelixify/MediGuard/pkg/models"
	"github.com/Zyelixify/MediGuard/pkg/scheduling"
)

// Delays beyond this magnitude are treated as anomalous (a dose marked taken
// hours or days off its slot) and do not contribute to the learned average.
const outlierDelayMinutes = 120

// Adjustment only kicks in once the sample is large enough and the drift is
// persistent.
const (
	adjustMinSamples  = 3
	adjustMinDelay    = 15
	adjustDampingRate = 0.25
)

// PreferenceStore is the persistence surface the tracker mutates. Get returns
// (nil, nil) when no record exists for the pair. Save must rely on the unique
// (account_id, quarter) constraint for concurrent upserts on the same key.
type PreferenceStore interface {
	GetPreference(accountID string, quarter Quarter) (*models.TimingPreference, error)
	SavePreference(pref *models.TimingPreference) error
	ListPreferences(accountID string) ([]models.TimingPreference, error)
	DeletePreferences(accountID string) error
}

// Tracker learns per-account, per-quarter dose timing preferences from
// observed taken events and feeds them back into schedule generation.
type Tracker struct {
	store PreferenceStore
}

// NewTracker creates a tracker backed by the given preference store.
func NewTracker(store PreferenceStore) *Tracker {
	return &Tracker{store: store}
}

// RecordTiming folds one dose-taken observation into the account's timing
// statistic for the quarter of the scheduled slot. The quarter is keyed off
// scheduledAt, not takenAt, so recurring doses at a fixed slot accumulate in
// the same bucket. Outlier delays (more than 2 hours either way) are dropped
// without touching state.
func (t *Tracker) RecordTiming(accountID string, scheduledAt, takenAt time.Time) error {
	delayMinutes := int(math.Round(takenAt.Sub(scheduledAt).Minutes()))

	if delayMinutes > outlierDelayMinutes || delayMinutes < -outlierDelayMinutes {
		return nil
	}

	quarter := ClassifyQuarter(scheduledAt)

	existing, err := t.store.GetPreference(accountID, quarter)
	if err != nil {
		return fmt.Errorf("failed to load timing preference: %w", err)
	}

	if existing == nil {
		pref := &models.TimingPreference{
			AccountID:     accountID,
			Quarter:       string(quarter),
			PreferredTime: DefaultTimes[quarter],
			TotalTaken:    1,
			AverageDelay:  delayMinutes,
		}
		if err := t.store.SavePreference(pref); err != nil {
			return fmt.Errorf("failed to create timing preference: %w", err)
		}
		return nil
	}

	newTotal := existing.TotalTaken + 1
	newAverage := int(math.Round(float64(existing.AverageDelay*existing.TotalTaken+delayMinutes) / float64(newTotal)))

	if newTotal >= adjustMinSamples && abs(newAverage) >= adjustMinDelay {
		adjusted, err := AdjustTime(existing.PreferredTime, newAverage, quarter)
		if err != nil {
			return fmt.Errorf("failed to adjust preferred time: %w", err)
		}
		existing.PreferredTime = adjusted
	}

	existing.TotalTaken = newTotal
	existing.AverageDelay = newAverage

	if err := t.store.SavePreference(existing); err != nil {
		return fmt.Errorf("failed to update timing preference: %w", err)
	}
	return nil
}

// AdjustTime shifts an HH:MM time by a damped fraction of the observed average
// delay, then clamps the hour back into the quarter's bounds. The damping (25%
// of the delay per adjustment) avoids oscillation from short streaks; the
// clamp keeps the learned time inside its quarter window even under sustained
// drift.
func AdjustTime(currentTime string, delayMinutes int, quarter Quarter) (string, error) {
	hour, minute, err := scheduling.ParseHHMM(currentTime)
	if err != nil {
		return "", err
	}

	adjustment := int(math.Round(float64(delayMinutes) * adjustDampingRate))

	total := hour*60 + minute + adjustment
	total = ((total % (24 * 60)) + 24*60) % (24 * 60) // wrap around midnight

	bounds := QuarterHours[quarter]
	adjHour := total / 60
	adjMinute := total % 60
	if adjHour < bounds[0] {
		adjHour = bounds[0]
	}
	if adjHour > bounds[1] {
		adjHour = bounds[1]
	}

	return scheduling.FormatHHMM(adjHour, adjMinute), nil
}

// PersonalizedTimes returns one HH:MM per quarter for the account: system
// defaults overlaid with any learned preferences. A missing preference record
// is not an error; the default fills the gap.
func (t *Tracker) PersonalizedTimes(accountID string) (map[Quarter]string, error) {
	result := make(map[Quarter]string, len(DefaultTimes))
	for quarter, hhmm := range DefaultTimes {
		result[quarter] = hhmm
	}

	prefs, err := t.store.ListPreferences(accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list timing preferences: %w", err)
	}
	for _, pref := range prefs {
		result[Quarter(pref.Quarter)] = pref.PreferredTime
	}

	return result, nil
}

// ResetPreferences deletes all learned preferences for the account.
func (t *Tracker) ResetPreferences(accountID string) error {
	return t.store.DeletePreferences(accountID)
}

// QuarterSlots maps each daily frequency to the ordered quarter slots its
// doses occupy. Weekly and monthly cadences use a single morning slot.
func QuarterSlots(frequency scheduling.Frequency) []Quarter {
	switch frequency {
	case scheduling.OnceADay:
		return []Quarter{QuarterMorning}
	case scheduling.TwiceADay:
		return []Quarter{QuarterMorning, QuarterEvening}
	case scheduling.ThreeTimesADay:
		return []Quarter{QuarterMorning, QuarterAfternoon, QuarterEvening}
	case scheduling.FourTimesADay:
		return []Quarter{QuarterMorning, QuarterAfternoon, QuarterEvening, QuarterNight}
	}
	return []Quarter{QuarterMorning}
}

// DefaultScheduleForFrequency returns the system default HH:MM list for a
// frequency's quarter slots.
func DefaultScheduleForFrequency(frequency scheduling.Frequency) []string {
	return timesForSlots(QuarterSlots(frequency), DefaultTimes)
}

// ScheduleForFrequency flattens a quarter→time mapping into the ordered
// dailyTimes list for a frequency, following the same slot layout as the
// defaults.
func ScheduleForFrequency(frequency scheduling.Frequency, times map[Quarter]string) []string {
	return timesForSlots(QuarterSlots(frequency), times)
}

func timesForSlots(slots []Quarter, times map[Quarter]string) []string {
	result := make([]string, 0, len(slots))
	for _, quarter := range slots {
		hhmm, ok := times[quarter]
		if !ok {
			hhmm = DefaultTimes[quarter]
		}
		result = append(result, hhmm)
	}
	return result
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
