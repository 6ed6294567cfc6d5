package webserver

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zyelixify/MediGuard/pkg/db"
	"github.com/Zyelixify/MediGuard/pkg/models"
	"github.com/Zyelixify/MediGuard/pkg/scheduling"
	"github.com/Zyelixify/MediGuard/pkg/timing"
	"github.com/Zyelixify/MediGuard/pkg/utils"
)

const dateLayout = "2006-01-02"

// CreateMedicationRequest represents the request to create a medication
type CreateMedicationRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=200"`
	Dosage    string `json:"dosage" binding:"required,min=1,max=100"`
	Frequency string `json:"frequency" binding:"required"`
	StartDate string `json:"start_date" binding:"required"` // YYYY-MM-DD
	EndDate   string `json:"end_date" binding:"required"`   // YYYY-MM-DD

	// When true, daily times come from the account's learned per-quarter
	// preferences instead of the system defaults
	Personalized bool `json:"personalized"`

	// Optional explicit HH:MM times; overrides both defaults and
	// personalization when present
	DailyTimes []string `json:"daily_times"`
}

// createMedication creates a medication and its full dose schedule
func (s *Server) createMedication(c *gin.Context) {
	account, err := s.getCurrentAccount(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse("Unauthorized"))
		return
	}

	var req CreateMedicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Invalid request data"))
		return
	}

	req.Name = s.validator.SanitizeInput(req.Name)
	req.Dosage = s.validator.SanitizeInput(req.Dosage)

	frequency, err := scheduling.ParseFrequency(req.Frequency)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(err.Error()))
		return
	}

	startDate, err := time.ParseInLocation(dateLayout, req.StartDate, time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Invalid start_date, expected YYYY-MM-DD"))
		return
	}
	endDate, err := time.ParseInLocation(dateLayout, req.EndDate, time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Invalid end_date, expected YYYY-MM-DD"))
		return
	}
	if !s.validator.ValidateDateRange(startDate, endDate) {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse("start_date must not be after end_date"))
		return
	}

	dailyTimes, err := s.resolveDailyTimes(&req, frequency, account.ID)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(err.Error()))
		return
	}

	scheduledDates, err := scheduling.GenerateSchedule(startDate, endDate, frequency, dailyTimes)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(err.Error()))
		return
	}

	medication := &models.Medication{
		AccountID:    account.ID,
		Name:         req.Name,
		Dosage:       req.Dosage,
		Frequency:    string(frequency),
		StartDate:    startDate,
		EndDate:      endDate,
		Personalized: req.Personalized,
	}

	repo := db.NewRepository(s.db)
	if err := repo.CreateMedication(medication); err != nil {
		s.logger.WithError(err).Error("Failed to create medication")
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to create medication"))
		return
	}

	event := &models.Event{
		Type:      models.EventMedicationCreated,
		Message:   fmt.Sprintf("Medication %s has been created by %s.", medication.Name, account.Name),
		Key:       fmt.Sprintf("MedicationCreated:%s,%s,%s", medication.ID, account.ID, time.Now().UTC().Format(time.RFC3339)),
		AccountID: account.ID,
	}
	if err := repo.CreateEvent(event); err != nil {
		s.logger.WithError(err).Error("Failed to create medication event")
	}

	doses := make([]models.ScheduledDose, 0, len(scheduledDates))
	for _, at := range scheduledDates {
		doses = append(doses, models.ScheduledDose{
			MedicationID: medication.ID,
			ScheduledAt:  at,
			Taken:        false,
		})
	}
	if err := repo.CreateScheduledDoses(doses); err != nil {
		s.logger.WithError(err).Error("Failed to create scheduled doses")
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to create dose schedule"))
		return
	}

	s.logger.WithFields(map[string]interface{}{
		"medication_id": medication.ID,
		"account_id":    account.ID,
		"frequency":     medication.Frequency,
		"dose_count":    len(doses),
		"personalized":  medication.Personalized,
	}).Info("Medication created")

	c.JSON(http.StatusCreated, utils.NewSuccessResponse(medication, "Medication created successfully"))
}

// resolveDailyTimes picks the per-day HH:MM list for schedule generation:
// explicit request times win, then learned per-quarter preferences when
// personalization is requested, then the system defaults for the frequency.
func (s *Server) resolveDailyTimes(req *CreateMedicationRequest, frequency scheduling.Frequency, accountID string) ([]string, error) {
	if len(req.DailyTimes) > 0 {
		for _, hhmm := range req.DailyTimes {
			if !s.validator.ValidateHHMM(hhmm) {
				return nil, fmt.Errorf("invalid daily time %q, expected HH:MM", hhmm)
			}
		}
		return req.DailyTimes, nil
	}

	if req.Personalized {
		personalized, err := s.tracker.PersonalizedTimes(accountID)
		if err != nil {
			return nil, err
		}
		return timing.ScheduleForFrequency(frequency, personalized), nil
	}

	return timing.DefaultScheduleForFrequency(frequency), nil
}

// getMedications lists the current account's medications
func (s *Server) getMedications(c *gin.Context) {
	account, err := s.getCurrentAccount(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse("Unauthorized"))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	repo := db.NewRepository(s.db)
	count, err := repo.GetMedicationsCount(account.ID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to count medications")
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to get medications"))
		return
	}

	pagination := utils.NewPagination(page, limit, count)
	medications, err := repo.GetMedicationsByAccountID(account.ID, pagination.Limit, pagination.GetOffset())
	if err != nil {
		s.logger.WithError(err).Error("Failed to get medications")
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to get medications"))
		return
	}

	c.JSON(http.StatusOK, utils.NewPaginatedResponse(medications, pagination, "Medications retrieved successfully"))
}

// getMedication returns a single medication with its doses
func (s *Server) getMedication(c *gin.Context) {
	account, err := s.getCurrentAccount(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse("Unauthorized"))
		return
	}

	repo := db.NewRepository(s.db)
	medication, err := repo.GetMedicationByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, utils.NewErrorResponse("Medication not found"))
		return
	}

	if medication.AccountID != account.ID {
		c.JSON(http.StatusForbidden, utils.NewErrorResponse("Access denied"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse(medication, "Medication retrieved successfully"))
}

// deleteMedication removes a medication and its remaining doses
func (s *Server) deleteMedication(c *gin.Context) {
	account, err := s.getCurrentAccount(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse("Unauthorized"))
		return
	}

	repo := db.NewRepository(s.db)
	medication, err := repo.GetMedicationByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, utils.NewErrorResponse("Medication not found"))
		return
	}

	if medication.AccountID != account.ID {
		c.JSON(http.StatusForbidden, utils.NewErrorResponse("Access denied"))
		return
	}

	if err := repo.DeleteMedication(medication.ID); err != nil {
		s.logger.WithError(err).Error("Failed to delete medication")
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to delete medication"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse(nil, "Medication deleted successfully"))
}

// getFrequencies lists supported frequency values for the creation form
func (s *Server) getFrequencies(c *gin.Context) {
	c.JSON(http.StatusOK, utils.NewSuccessResponse(scheduling.Frequencies(), "Frequencies retrieved successfully"))
}
