package webserver

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zyelixify/MediGuard/pkg/db"
	"github.com/Zyelixify/MediGuard/pkg/models"
	"github.com/Zyelixify/MediGuard/pkg/utils"
)

// UpdateDoseTakenRequest represents the request to mark a dose taken/untaken
type UpdateDoseTakenRequest struct {
	Taken bool `json:"taken"`

	// Optional override for when the dose was actually taken; defaults to now
	TakenAt *time.Time `json:"taken_at"`
}

// getScheduledDoses lists the current account's doses, filterable by range
// and taken state
func (s *Server) getScheduledDoses(c *gin.Context) {
	account, err := s.getCurrentAccount(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse("Unauthorized"))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	pagination := utils.NewPagination(page, limit, 0)

	var from, to *time.Time
	if v := c.Query("from"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Invalid from timestamp, expected RFC3339"))
			return
		}
		from = &parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Invalid to timestamp, expected RFC3339"))
			return
		}
		to = &parsed
	}

	var taken *bool
	if v := c.Query("taken"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Invalid taken filter"))
			return
		}
		taken = &parsed
	}

	repo := db.NewRepository(s.db)
	doses, err := repo.GetScheduledDosesByAccountID(account.ID, from, to, taken, pagination.Limit, pagination.GetOffset())
	if err != nil {
		s.logger.WithError(err).Error("Failed to get scheduled doses")
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to get scheduled doses"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse(doses, "Scheduled doses retrieved successfully"))
}

// updateDoseTaken marks a dose taken or untaken. Marking taken feeds the
// observation into the adaptive timing tracker and emits a DoseTaken event.
func (s *Server) updateDoseTaken(c *gin.Context) {
	account, err := s.getCurrentAccount(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse("Unauthorized"))
		return
	}

	var req UpdateDoseTakenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Invalid request data"))
		return
	}

	repo := db.NewRepository(s.db)
	dose, err := repo.GetScheduledDoseByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, utils.NewErrorResponse("Scheduled dose not found"))
		return
	}

	if dose.Medication.AccountID != account.ID {
		c.JSON(http.StatusForbidden, utils.NewErrorResponse("Access denied"))
		return
	}

	if req.Taken {
		takenAt := time.Now()
		if req.TakenAt != nil {
			takenAt = *req.TakenAt
		}

		dose.Taken = true
		dose.TakenAt = &takenAt

		if err := s.tracker.RecordTiming(account.ID, dose.ScheduledAt, takenAt); err != nil {
			// The dose update still proceeds; the learned statistic just
			// misses one observation
			s.logger.WithError(err).Error("Failed to record dose timing")
		}

		delayMinutes := int(math.Round(takenAt.Sub(dose.ScheduledAt).Minutes()))
		s.logger.LogDose(dose.ID, dose.MedicationID, account.ID, "taken", delayMinutes)

		event := &models.Event{
			Type:      models.EventDoseTaken,
			Message:   fmt.Sprintf("%s (%s) was marked as taken.", dose.Medication.Name, dose.Medication.Dosage),
			Key:       fmt.Sprintf("DoseTaken:%s,%s", dose.ID, takenAt.UTC().Format(time.RFC3339)),
			AccountID: account.ID,
			Metadata: models.JSON{
				"dose_id":       dose.ID,
				"medication_id": dose.MedicationID,
				"delay_minutes": delayMinutes,
			},
		}
		if err := repo.CreateEvent(event); err != nil {
			s.logger.WithError(err).Error("Failed to create dose event")
		}
	} else {
		dose.Taken = false
		dose.TakenAt = nil
		s.logger.LogDose(dose.ID, dose.MedicationID, account.ID, "untaken", 0)
	}

	if err := repo.UpdateScheduledDose(dose); err != nil {
		s.logger.WithError(err).Error("Failed to update scheduled dose")
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to update scheduled dose"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse(dose, "Scheduled dose updated successfully"))
}

// getAdherenceStats summarizes taken vs missed doses for the account
func (s *Server) getAdherenceStats(c *gin.Context) {
	account, err := s.getCurrentAccount(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse("Unauthorized"))
		return
	}

	repo := db.NewRepository(s.db)
	stats, err := repo.GetAdherenceStats(account.ID, time.Now())
	if err != nil {
		s.logger.WithError(err).Error("Failed to get adherence stats")
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to get adherence stats"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse(stats, "Adherence stats retrieved successfully"))
}
