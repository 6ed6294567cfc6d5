package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestGenerateSchedule_DailySingleTime(t *testing.T) {
	start := day(2024, time.March, 1)
	end := day(2024, time.March, 7)

	doses, err := GenerateSchedule(start, end, OnceADay, []string{"09:00"})
	require.NoError(t, err)
	require.Len(t, doses, 7)

	for i, dose := range doses {
		assert.Equal(t, 9, dose.Hour())
		assert.Equal(t, 0, dose.Minute())
		assert.Equal(t, 0, dose.Second())
		assert.Equal(t, start.AddDate(0, 0, i).Day(), dose.Day())
	}
}

func TestGenerateSchedule_DailyMultipleTimes(t *testing.T) {
	start := day(2024, time.March, 1)
	end := day(2024, time.March, 10)

	doses, err := GenerateSchedule(start, end, ThreeTimesADay, []string{"08:00", "14:30", "20:00"})
	require.NoError(t, err)
	// 10 days x 3 times
	require.Len(t, doses, 30)

	// Per-day times appear in list order
	assert.Equal(t, 8, doses[0].Hour())
	assert.Equal(t, 14, doses[1].Hour())
	assert.Equal(t, 30, doses[1].Minute())
	assert.Equal(t, 20, doses[2].Hour())

	for i := 1; i < len(doses); i++ {
		assert.True(t, doses[i].After(doses[i-1]), "schedule must be strictly increasing")
	}
}

func TestGenerateSchedule_DailyRequiresTimes(t *testing.T) {
	start := day(2024, time.March, 1)
	end := day(2024, time.March, 7)

	_, err := GenerateSchedule(start, end, OnceADay, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyDailyTimes)
}

func TestGenerateSchedule_SingleDayRange(t *testing.T) {
	start := day(2024, time.March, 5)

	doses, err := GenerateSchedule(start, start, TwiceADay, []string{"09:00", "21:00"})
	require.NoError(t, err)
	require.Len(t, doses, 2)
	assert.Equal(t, 5, doses[0].Day())
	assert.Equal(t, 5, doses[1].Day())
}

func TestGenerateSchedule_WeeklyIntervals(t *testing.T) {
	start := day(2024, time.March, 1)
	end := day(2024, time.March, 28)

	tests := []struct {
		frequency Frequency
		stepDays  int
		count     int
	}{
		{OnceAWeek, 7, 4},        // days 1, 8, 15, 22
		{TwiceAWeek, 3, 10},      // days 1, 4, 7, ... 28
		{ThreeTimesAWeek, 2, 14}, // days 1, 3, 5, ... 27
	}

	for _, tt := range tests {
		t.Run(string(tt.frequency), func(t *testing.T) {
			doses, err := GenerateSchedule(start, end, tt.frequency, []string{"09:00"})
			require.NoError(t, err)
			require.Len(t, doses, tt.count)

			for i := 1; i < len(doses); i++ {
				gap := doses[i].Sub(doses[i-1])
				assert.Equal(t, time.Duration(tt.stepDays)*24*time.Hour, gap)
			}
		})
	}
}

func TestGenerateSchedule_WeeklyFallbackTime(t *testing.T) {
	start := day(2024, time.March, 1)
	end := day(2024, time.March, 14)

	doses, err := GenerateSchedule(start, end, OnceAWeek, nil)
	require.NoError(t, err)
	require.Len(t, doses, 2)
	assert.Equal(t, 9, doses[0].Hour())
	assert.Equal(t, 0, doses[0].Minute())
}

func TestGenerateSchedule_MonthlyCalendarStep(t *testing.T) {
	start := day(2024, time.January, 15)
	end := day(2024, time.December, 31)

	doses, err := GenerateSchedule(start, end, OnceAMonth, []string{"10:00"})
	require.NoError(t, err)
	require.Len(t, doses, 12)

	for i, dose := range doses {
		assert.Equal(t, time.Month(i+1), dose.Month())
		assert.Equal(t, 15, dose.Day())
		assert.Equal(t, 10, dose.Hour())
	}
}

func TestGenerateSchedule_EmptyRange(t *testing.T) {
	start := day(2024, time.March, 10)
	end := day(2024, time.March, 5)

	doses, err := GenerateSchedule(start, end, OnceADay, []string{"09:00"})
	require.NoError(t, err)
	assert.Empty(t, doses)
}

func TestGenerateSchedule_UnknownFrequencyYieldsEmpty(t *testing.T) {
	start := day(2024, time.March, 1)
	end := day(2024, time.March, 7)

	doses, err := GenerateSchedule(start, end, Frequency("As needed"), []string{"09:00"})
	require.NoError(t, err)
	assert.Empty(t, doses)
}

func TestGenerateSchedule_InvalidTime(t *testing.T) {
	start := day(2024, time.March, 1)
	end := day(2024, time.March, 7)

	_, err := GenerateSchedule(start, end, OnceADay, []string{"25:00"})
	assert.Error(t, err)

	_, err = GenerateSchedule(start, end, OnceADay, []string{"nine"})
	assert.Error(t, err)
}

func TestGenerateSchedule_Deterministic(t *testing.T) {
	start := day(2024, time.March, 1)
	end := day(2024, time.April, 30)

	first, err := GenerateSchedule(start, end, TwiceADay, []string{"08:00", "20:00"})
	require.NoError(t, err)
	second, err := GenerateSchedule(start, end, TwiceADay, []string{"08:00", "20:00"})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestParseFrequency(t *testing.T) {
	for _, f := range Frequencies() {
		parsed, err := ParseFrequency(string(f))
		require.NoError(t, err)
		assert.Equal(t, f, parsed)
	}

	_, err := ParseFrequency("Every other day")
	assert.Error(t, err)

	// Case sensitive on purpose
	_, err = ParseFrequency("once a day")
	assert.Error(t, err)
}

func TestFrequencyCadence(t *testing.T) {
	assert.Equal(t, CadenceDaily, FourTimesADay.Cadence())
	assert.Equal(t, CadenceWeekly, TwiceAWeek.Cadence())
	assert.Equal(t, CadenceMonthly, OnceAMonth.Cadence())
	assert.Equal(t, CadenceUnknown, Frequency("whenever").Cadence())
}

func TestParseHHMM(t *testing.T) {
	hour, minute, err := ParseHHMM("07:45")
	require.NoError(t, err)
	assert.Equal(t, 7, hour)
	assert.Equal(t, 45, minute)

	for _, bad := range []string{"", "0745", "7:60", "24:00", "-1:30", "aa:bb"} {
		_, _, err := ParseHHMM(bad)
		assert.Error(t, err, "expected error for %q", bad)
	}
}

func TestFormatHHMM(t *testing.T) {
	assert.Equal(t, "03:05", FormatHHMM(3, 5))
	assert.Equal(t, "23:59", FormatHHMM(23, 59))
}
