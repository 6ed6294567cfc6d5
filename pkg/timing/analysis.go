package timing

import (
	"fmt"
	"math"

	"github.com/Zyelixify/MediGuard/pkg/models"
)

// DataQuality describes how much confidence the learned statistic deserves.
type DataQuality struct {
	Quality string `json:"quality"`
	Message string `json:"message"`
	Color   string `json:"color"`
}

// FormattedPreference is a preference record decorated for presentation.
type FormattedPreference struct {
	models.TimingPreference
	QuarterLabel string `json:"quarter_label"`
	DelayText    string `json:"delay_text"`
}

// Summary aggregates timing behaviour across all quarters for one account.
type Summary struct {
	TotalDataPoints        int     `json:"total_data_points"`
	AverageAccuracy        int     `json:"average_accuracy"`
	MostProblematicQuarter *string `json:"most_problematic_quarter"`
	OverallQuality         string  `json:"overall_quality"`
}

// FormatPreference decorates a preference with its quarter label and a
// human-readable delay description.
func FormatPreference(pref models.TimingPreference) FormattedPreference {
	var delayText string
	switch {
	case pref.AverageDelay > 0:
		delayText = fmt.Sprintf("Usually %d min late", pref.AverageDelay)
	case pref.AverageDelay < 0:
		delayText = fmt.Sprintf("Usually %d min early", -pref.AverageDelay)
	default:
		delayText = "Usually on time"
	}

	return FormattedPreference{
		TimingPreference: pref,
		QuarterLabel:     Quarter(pref.Quarter).Label(),
		DelayText:        delayText,
	}
}

// AdjustmentNeeded reports whether the learned drift is persistent enough to
// warrant shifting the preferred time. Uses the same thresholds as the
// tracker's update rule.
func AdjustmentNeeded(pref models.TimingPreference) bool {
	return pref.TotalTaken >= adjustMinSamples && abs(pref.AverageDelay) > adjustMinDelay
}

// AdjustmentSuggestion describes the shift the tracker would apply, or an
// empty string when no adjustment is warranted or it rounds to zero.
func AdjustmentSuggestion(pref models.TimingPreference) string {
	if !AdjustmentNeeded(pref) {
		return ""
	}

	adjustMinutes := int(math.Round(float64(pref.AverageDelay) * adjustDampingRate))
	if adjustMinutes == 0 {
		return ""
	}

	direction := "earlier"
	if adjustMinutes > 0 {
		direction = "later"
	}
	return fmt.Sprintf("Scheduling time adjusted to be %d minutes %s", abs(adjustMinutes), direction)
}

// GetDataQuality tiers the preference by sample size.
func GetDataQuality(pref models.TimingPreference) DataQuality {
	if pref.TotalTaken < 3 {
		return DataQuality{
			Quality: "Insufficient",
			Message: "Need more data points for reliable insights",
			Color:   "gray",
		}
	}

	if pref.TotalTaken >= 10 {
		return DataQuality{
			Quality: "Excellent",
			Message: "High confidence in timing patterns",
			Color:   "green",
		}
	}

	if pref.TotalTaken >= 5 {
		return DataQuality{
			Quality: "Good",
			Message: "Reliable timing insights available",
			Color:   "blue",
		}
	}

	return DataQuality{
		Quality: "Fair",
		Message: "Basic insights available, improving with more data",
		Color:   "yellow",
	}
}

// Concerns flags problematic timing patterns. Flags are independent; an
// account can be both off schedule and frequently late.
func Concerns(pref models.TimingPreference) []string {
	var concerns []string

	if abs(pref.AverageDelay) > 60 {
		concerns = append(concerns, "Consistently off schedule by over 1 hour")
	}

	if pref.AverageDelay > 30 {
		concerns = append(concerns, "Frequently taking medications late")
	}

	if pref.AverageDelay < -30 {
		concerns = append(concerns, "Often taking medications very early")
	}

	return concerns
}

// Summarize aggregates all quarter preferences for an account. An empty input
// yields the "No data" summary with zeroed fields and no problematic quarter.
func Summarize(prefs []models.TimingPreference) Summary {
	if len(prefs) == 0 {
		return Summary{OverallQuality: "No data"}
	}

	totalDataPoints := 0
	accuracySum := 0
	worst := prefs[0]
	for _, pref := range prefs {
		totalDataPoints += pref.TotalTaken
		accuracySum += abs(pref.AverageDelay)
		if abs(pref.AverageDelay) > abs(worst.AverageDelay) {
			worst = pref
		}
	}
	averageAccuracy := float64(accuracySum) / float64(len(prefs))

	overallQuality := "Poor"
	switch {
	case totalDataPoints >= 20 && averageAccuracy < 15:
		overallQuality = "Excellent"
	case totalDataPoints >= 10 && averageAccuracy < 30:
		overallQuality = "Good"
	case totalDataPoints >= 5:
		overallQuality = "Fair"
	}

	worstLabel := Quarter(worst.Quarter).Label()
	return Summary{
		TotalDataPoints:        totalDataPoints,
		AverageAccuracy:        int(math.Round(averageAccuracy)),
		MostProblematicQuarter: &worstLabel,
		OverallQuality:         overallQuality,
	}
}
