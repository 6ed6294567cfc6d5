package timing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zyelixify/MediGuard/pkg/models"
	"github.com/Zyelixify/MediGuard/pkg/scheduling"
)

// memStore is an in-memory PreferenceStore for tracker tests
type memStore struct {
	prefs map[string]*models.TimingPreference
}

func newMemStore() *memStore {
	return &memStore{prefs: make(map[string]*models.TimingPreference)}
}

func (s *memStore) key(accountID string, quarter Quarter) string {
	return accountID + "/" + string(quarter)
}

func (s *memStore) GetPreference(accountID string, quarter Quarter) (*models.TimingPreference, error) {
	pref, ok := s.prefs[s.key(accountID, quarter)]
	if !ok {
		return nil, nil
	}
	copied := *pref
	return &copied, nil
}

func (s *memStore) SavePreference(pref *models.TimingPreference) error {
	copied := *pref
	s.prefs[s.key(pref.AccountID, Quarter(pref.Quarter))] = &copied
	return nil
}

func (s *memStore) ListPreferences(accountID string) ([]models.TimingPreference, error) {
	var result []models.TimingPreference
	for _, quarter := range Quarters() {
		if pref, ok := s.prefs[s.key(accountID, quarter)]; ok {
			result = append(result, *pref)
		}
	}
	return result, nil
}

func (s *memStore) DeletePreferences(accountID string) error {
	for _, quarter := range Quarters() {
		delete(s.prefs, s.key(accountID, quarter))
	}
	return nil
}

func at(hour, minute int) time.Time {
	return time.Date(2024, time.March, 5, hour, minute, 0, 0, time.UTC)
}

func TestClassifyQuarter_Boundaries(t *testing.T) {
	tests := []struct {
		hour int
		want Quarter
	}{
		{0, QuarterNight},
		{5, QuarterNight},
		{6, QuarterMorning},
		{11, QuarterMorning},
		{12, QuarterAfternoon},
		{17, QuarterAfternoon},
		{18, QuarterEvening},
		{23, QuarterEvening},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyQuarter(at(tt.hour, 0)), "hour %d", tt.hour)
	}
}

func TestRecordTiming_CreatesPreference(t *testing.T) {
	store := newMemStore()
	tracker := NewTracker(store)

	// Scheduled 09:00, taken 09:40
	err := tracker.RecordTiming("acct-1", at(9, 0), at(9, 40))
	require.NoError(t, err)

	pref, err := store.GetPreference("acct-1", QuarterMorning)
	require.NoError(t, err)
	require.NotNil(t, pref)
	assert.Equal(t, 1, pref.TotalTaken)
	assert.Equal(t, 40, pref.AverageDelay)
	assert.Equal(t, "09:00", pref.PreferredTime)
}

func TestRecordTiming_IncrementalAverage(t *testing.T) {
	store := newMemStore()
	tracker := NewTracker(store)

	require.NoError(t, tracker.RecordTiming("acct-1", at(9, 0), at(9, 40)))
	require.NoError(t, tracker.RecordTiming("acct-1", at(9, 0), at(9, 20)))

	pref, err := store.GetPreference("acct-1", QuarterMorning)
	require.NoError(t, err)
	require.NotNil(t, pref)
	assert.Equal(t, 2, pref.TotalTaken)
	assert.Equal(t, 30, pref.AverageDelay)
	// Below the sample threshold, preferred time stays put
	assert.Equal(t, "09:00", pref.PreferredTime)
}

func TestRecordTiming_DiscardsOutliers(t *testing.T) {
	store := newMemStore()
	tracker := NewTracker(store)

	// 150 minutes late: outside the 2-hour window, must not create state
	require.NoError(t, tracker.RecordTiming("acct-1", at(9, 0), at(11, 30)))

	pref, err := store.GetPreference("acct-1", QuarterMorning)
	require.NoError(t, err)
	assert.Nil(t, pref)

	// Exactly 120 minutes is still accepted
	require.NoError(t, tracker.RecordTiming("acct-1", at(9, 0), at(11, 0)))
	pref, err = store.GetPreference("acct-1", QuarterMorning)
	require.NoError(t, err)
	require.NotNil(t, pref)
	assert.Equal(t, 120, pref.AverageDelay)
}

func TestRecordTiming_QuarterKeyedOffScheduledSlot(t *testing.T) {
	store := newMemStore()
	tracker := NewTracker(store)

	// Scheduled in the morning, taken in the afternoon: still a morning stat
	require.NoError(t, tracker.RecordTiming("acct-1", at(11, 30), at(12, 30)))

	pref, err := store.GetPreference("acct-1", QuarterMorning)
	require.NoError(t, err)
	require.NotNil(t, pref)
	assert.Equal(t, 60, pref.AverageDelay)

	afternoon, err := store.GetPreference("acct-1", QuarterAfternoon)
	require.NoError(t, err)
	assert.Nil(t, afternoon)
}

func TestRecordTiming_AdjustsAfterPersistentDrift(t *testing.T) {
	store := newMemStore()
	tracker := NewTracker(store)

	// Three doses, each 40 minutes late
	require.NoError(t, tracker.RecordTiming("acct-1", at(9, 0), at(9, 40)))
	require.NoError(t, tracker.RecordTiming("acct-1", at(9, 0), at(9, 40)))
	require.NoError(t, tracker.RecordTiming("acct-1", at(9, 0), at(9, 40)))

	pref, err := store.GetPreference("acct-1", QuarterMorning)
	require.NoError(t, err)
	require.NotNil(t, pref)
	assert.Equal(t, 3, pref.TotalTaken)
	assert.Equal(t, 40, pref.AverageDelay)
	// 25% of 40 = +10 minutes on the third sample
	assert.Equal(t, "09:10", pref.PreferredTime)
}

func TestRecordTiming_EarlyDriftShiftsEarlier(t *testing.T) {
	store := newMemStore()
	tracker := NewTracker(store)

	for i := 0; i < 3; i++ {
		require.NoError(t, tracker.RecordTiming("acct-1", at(9, 0), at(8, 20)))
	}

	pref, err := store.GetPreference("acct-1", QuarterMorning)
	require.NoError(t, err)
	require.NotNil(t, pref)
	assert.Equal(t, -40, pref.AverageDelay)
	assert.Equal(t, "08:50", pref.PreferredTime)
}

func TestAdjustTime_ClampsToQuarterBounds(t *testing.T) {
	// 11:50 + 25% of 100 = 12:15, clamped back to hour 11
	adjusted, err := AdjustTime("11:50", 100, QuarterMorning)
	require.NoError(t, err)
	assert.Equal(t, "11:15", adjusted)

	// 06:05 - 25% of 100 = 05:40, clamped up to hour 6
	adjusted, err = AdjustTime("06:05", -100, QuarterMorning)
	require.NoError(t, err)
	assert.Equal(t, "06:40", adjusted)
}

func TestAdjustTime_WrapsAroundMidnight(t *testing.T) {
	// 00:10 - 25 minutes wraps to 23:45, clamped to the night window's hour 5
	adjusted, err := AdjustTime("00:10", -100, QuarterNight)
	require.NoError(t, err)
	assert.Equal(t, "05:45", adjusted)
}

func TestAdjustTime_RoundsAdjustment(t *testing.T) {
	// 25% of 18 = 4.5, rounds to 5
	adjusted, err := AdjustTime("09:00", 18, QuarterMorning)
	require.NoError(t, err)
	assert.Equal(t, "09:05", adjusted)

	_, err = AdjustTime("not-a-time", 10, QuarterMorning)
	assert.Error(t, err)
}

func TestPersonalizedTimes_DefaultsAndOverlay(t *testing.T) {
	store := newMemStore()
	tracker := NewTracker(store)

	times, err := tracker.PersonalizedTimes("acct-1")
	require.NoError(t, err)
	assert.Equal(t, DefaultTimes, times)

	require.NoError(t, store.SavePreference(&models.TimingPreference{
		AccountID:     "acct-1",
		Quarter:       string(QuarterEvening),
		PreferredTime: "20:15",
		TotalTaken:    5,
		AverageDelay:  -20,
	}))

	times, err = tracker.PersonalizedTimes("acct-1")
	require.NoError(t, err)
	assert.Equal(t, "20:15", times[QuarterEvening])
	assert.Equal(t, DefaultTimes[QuarterMorning], times[QuarterMorning])
}

func TestResetPreferences(t *testing.T) {
	store := newMemStore()
	tracker := NewTracker(store)

	require.NoError(t, tracker.RecordTiming("acct-1", at(9, 0), at(9, 30)))
	require.NoError(t, tracker.ResetPreferences("acct-1"))

	pref, err := store.GetPreference("acct-1", QuarterMorning)
	require.NoError(t, err)
	assert.Nil(t, pref)
}

func TestDefaultScheduleForFrequency(t *testing.T) {
	assert.Equal(t, []string{"09:00"}, DefaultScheduleForFrequency(scheduling.OnceADay))
	assert.Equal(t, []string{"09:00", "21:00"}, DefaultScheduleForFrequency(scheduling.TwiceADay))
	assert.Equal(t, []string{"09:00", "15:00", "21:00"}, DefaultScheduleForFrequency(scheduling.ThreeTimesADay))
	assert.Equal(t, []string{"09:00", "15:00", "21:00", "03:00"}, DefaultScheduleForFrequency(scheduling.FourTimesADay))
	// Weekly cadences use a single morning slot
	assert.Equal(t, []string{"09:00"}, DefaultScheduleForFrequency(scheduling.OnceAWeek))
}

func TestScheduleForFrequency_UsesLearnedTimes(t *testing.T) {
	times := map[Quarter]string{
		QuarterMorning: "08:30",
		QuarterEvening: "20:45",
	}

	got := ScheduleForFrequency(scheduling.TwiceADay, times)
	assert.Equal(t, []string{"08:30", "20:45"}, got)

	// Missing quarters fall back to defaults
	got = ScheduleForFrequency(scheduling.ThreeTimesADay, times)
	assert.Equal(t, []string{"08:30", "15:00", "20:45"}, got)
}
