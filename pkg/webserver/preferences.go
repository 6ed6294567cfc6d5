package webserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zyelixify/MediGuard/pkg/db"
	"github.com/Zyelixify/MediGuard/pkg/models"
	"github.com/Zyelixify/MediGuard/pkg/timing"
	"github.com/Zyelixify/MediGuard/pkg/utils"
)

// SimulateScenarioRequest selects a canned timing history for development
type SimulateScenarioRequest struct {
	Scenario string `json:"scenario" binding:"required"`
}

// PreferenceInsight decorates one preference with its derived insights
type PreferenceInsight struct {
	timing.FormattedPreference
	AdjustmentNeeded     bool               `json:"adjustment_needed"`
	AdjustmentSuggestion string             `json:"adjustment_suggestion,omitempty"`
	DataQuality          timing.DataQuality `json:"data_quality"`
	Concerns             []string           `json:"concerns,omitempty"`
}

// TimingInsightsResponse bundles per-quarter insights with the account summary
type TimingInsightsResponse struct {
	Preferences []PreferenceInsight `json:"preferences"`
	Summary     timing.Summary      `json:"summary"`
}

// getTimingPreferences lists the account's learned preference records
func (s *Server) getTimingPreferences(c *gin.Context) {
	account, err := s.getCurrentAccount(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse("Unauthorized"))
		return
	}

	repo := db.NewRepository(s.db)
	prefs, err := repo.ListPreferences(account.ID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get timing preferences")
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to get timing preferences"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse(prefs, "Timing preferences retrieved successfully"))
}

// getPersonalizedSchedule returns one HH:MM per quarter, defaults filling gaps
func (s *Server) getPersonalizedSchedule(c *gin.Context) {
	account, err := s.getCurrentAccount(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse("Unauthorized"))
		return
	}

	times, err := s.tracker.PersonalizedTimes(account.ID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get personalized schedule")
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to get personalized schedule"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse(times, "Personalized schedule retrieved successfully"))
}

// getTimingInsights returns derived insights per quarter plus the summary
func (s *Server) getTimingInsights(c *gin.Context) {
	account, err := s.getCurrentAccount(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse("Unauthorized"))
		return
	}

	repo := db.NewRepository(s.db)
	prefs, err := repo.ListPreferences(account.ID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get timing preferences")
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to get timing insights"))
		return
	}

	insights := make([]PreferenceInsight, 0, len(prefs))
	for _, pref := range prefs {
		insights = append(insights, PreferenceInsight{
			FormattedPreference:  timing.FormatPreference(pref),
			AdjustmentNeeded:     timing.AdjustmentNeeded(pref),
			AdjustmentSuggestion: timing.AdjustmentSuggestion(pref),
			DataQuality:          timing.GetDataQuality(pref),
			Concerns:             timing.Concerns(pref),
		})
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse(TimingInsightsResponse{
		Preferences: insights,
		Summary:     timing.Summarize(prefs),
	}, "Timing insights retrieved successfully"))
}

// resetTimingPreferences deletes all learned preferences for the account
func (s *Server) resetTimingPreferences(c *gin.Context) {
	account, err := s.getCurrentAccount(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse("Unauthorized"))
		return
	}

	if err := s.tracker.ResetPreferences(account.ID); err != nil {
		s.logger.WithError(err).Error("Failed to reset timing preferences")
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to reset timing preferences"))
		return
	}

	s.logger.WithField("account_id", account.ID).Info("Timing preferences reset")

	c.JSON(http.StatusOK, utils.NewSuccessResponse(nil, "Timing preferences reset successfully"))
}

// simulateTimingScenario seeds canned preference data for manual testing.
// Only available when DEV_MODE is enabled.
func (s *Server) simulateTimingScenario(c *gin.Context) {
	if !s.config.Security.DevMode {
		c.JSON(http.StatusForbidden, utils.NewErrorResponse("This endpoint is only available in development"))
		return
	}

	account, err := s.getCurrentAccount(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse("Unauthorized"))
		return
	}

	var req SimulateScenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Invalid request data"))
		return
	}

	repo := db.NewRepository(s.db)
	quarter := timing.QuarterMorning

	switch req.Scenario {
	case "consistently_late":
		err = repo.UpsertPreference(&models.TimingPreference{
			AccountID:     account.ID,
			Quarter:       string(quarter),
			PreferredTime: "09:10",
			TotalTaken:    6,
			AverageDelay:  40,
		})
	case "wildly_overdue":
		err = repo.UpsertPreference(&models.TimingPreference{
			AccountID:     account.ID,
			Quarter:       string(quarter),
			PreferredTime: timing.DefaultTimes[quarter],
			TotalTaken:    2,
			AverageDelay:  5,
		})
	case "consistently_early":
		err = repo.UpsertPreference(&models.TimingPreference{
			AccountID:     account.ID,
			Quarter:       string(quarter),
			PreferredTime: "08:52",
			TotalTaken:    10,
			AverageDelay:  -30,
		})
	case "reset":
		err = repo.DeletePreferences(account.ID)
	default:
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Unknown scenario"))
		return
	}

	if err != nil {
		s.logger.WithError(err).Error("Failed to simulate timing scenario")
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to simulate timing scenario"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse(gin.H{"scenario": req.Scenario}, "Scenario applied successfully"))
}
