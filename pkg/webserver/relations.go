package webserver

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zyelixify/MediGuard/pkg/db"
	"github.com/Zyelixify/MediGuard/pkg/models"
	"github.com/Zyelixify/MediGuard/pkg/utils"
)

// CreateRelationRequest is the payload for linking a caretaker to a patient
type CreateRelationRequest struct {
	PatientID string `json:"patient_id" binding:"required"`
}

// getCaretakerRelations lists relations where the account is either side
func (s *Server) getCaretakerRelations(c *gin.Context) {
	account, err := s.getCurrentAccount(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse("Unauthorized"))
		return
	}

	repo := db.NewRepository(s.db)
	relations, err := repo.GetCaretakerRelationsForAccount(account.ID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get caretaker relations")
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to get caretaker relations"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse(relations, "Caretaker relations retrieved successfully"))
}

// createCaretakerRelation links the calling caretaker to a patient. The
// relation starts unconfirmed; the patient confirms it. Creating a relation
// that already exists returns the existing record.
func (s *Server) createCaretakerRelation(c *gin.Context) {
	account, err := s.getCurrentAccount(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse("Unauthorized"))
		return
	}

	if account.Role != models.RoleCaretaker {
		c.JSON(http.StatusForbidden, utils.NewErrorResponse("Only caretakers can create caretaker relations"))
		return
	}

	var req CreateRelationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Invalid request data"))
		return
	}

	if req.PatientID == account.ID {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Cannot create a relation with yourself"))
		return
	}

	repo := db.NewRepository(s.db)

	patient, err := repo.GetAccountByID(req.PatientID)
	if err != nil {
		c.JSON(http.StatusNotFound, utils.NewErrorResponse("Patient not found"))
		return
	}
	if patient.Role != models.RolePatient {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Target account is not a patient"))
		return
	}

	if existing, err := repo.FindCaretakerRelation(patient.ID, account.ID); err == nil && existing != nil {
		c.JSON(http.StatusOK, utils.NewSuccessResponse(existing, "Caretaker relation already exists"))
		return
	}

	relation := &models.CaretakerRelation{
		PatientID:   patient.ID,
		CaretakerID: account.ID,
	}
	if err := repo.CreateCaretakerRelation(relation); err != nil {
		s.logger.WithError(err).Error("Failed to create caretaker relation")
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to create caretaker relation"))
		return
	}

	event := &models.Event{
		Type:      models.EventCaretakerRelationCreated,
		Message:   fmt.Sprintf("%s requested to be your caretaker", account.Name),
		Key:       fmt.Sprintf("CaretakerRelationCreated:%s", relation.ID),
		AccountID: patient.ID,
		Metadata: models.JSON{
			"relation_id":  relation.ID,
			"caretaker_id": account.ID,
		},
	}
	if err := repo.CreateEvent(event); err != nil {
		s.logger.WithError(err).Warn("Failed to create caretaker relation event")
	}

	s.logger.WithFields(map[string]interface{}{
		"relation_id":  relation.ID,
		"patient_id":   patient.ID,
		"caretaker_id": account.ID,
	}).Info("Caretaker relation created")

	c.JSON(http.StatusCreated, utils.NewSuccessResponse(relation, "Caretaker relation created successfully"))
}

// confirmCaretakerRelation lets the patient accept a pending relation
func (s *Server) confirmCaretakerRelation(c *gin.Context) {
	account, err := s.getCurrentAccount(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse("Unauthorized"))
		return
	}

	repo := db.NewRepository(s.db)
	relation, err := repo.GetCaretakerRelationByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, utils.NewErrorResponse("Caretaker relation not found"))
		return
	}

	if relation.PatientID != account.ID {
		c.JSON(http.StatusForbidden, utils.NewErrorResponse("Only the patient can confirm this relation"))
		return
	}

	if relation.IsConfirmed {
		c.JSON(http.StatusOK, utils.NewSuccessResponse(relation, "Caretaker relation already confirmed"))
		return
	}

	relation.IsConfirmed = true
	if err := repo.UpdateCaretakerRelation(relation); err != nil {
		s.logger.WithError(err).Error("Failed to confirm caretaker relation")
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to confirm caretaker relation"))
		return
	}

	event := &models.Event{
		Type:      models.EventCaretakerRelationConfirmed,
		Message:   fmt.Sprintf("%s accepted your caretaker request", account.Name),
		Key:       fmt.Sprintf("CaretakerRelationConfirmed:%s", relation.ID),
		AccountID: relation.CaretakerID,
		Metadata: models.JSON{
			"relation_id": relation.ID,
			"patient_id":  account.ID,
		},
	}
	if err := repo.CreateEvent(event); err != nil {
		s.logger.WithError(err).Warn("Failed to create relation confirmed event")
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse(relation, "Caretaker relation confirmed successfully"))
}

// deleteCaretakerRelation removes a relation; either side may do it
func (s *Server) deleteCaretakerRelation(c *gin.Context) {
	account, err := s.getCurrentAccount(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse("Unauthorized"))
		return
	}

	repo := db.NewRepository(s.db)
	relation, err := repo.GetCaretakerRelationByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, utils.NewErrorResponse("Caretaker relation not found"))
		return
	}

	if relation.PatientID != account.ID && relation.CaretakerID != account.ID {
		c.JSON(http.StatusForbidden, utils.NewErrorResponse("Access denied"))
		return
	}

	if err := repo.DeleteCaretakerRelation(relation.ID); err != nil {
		s.logger.WithError(err).Error("Failed to delete caretaker relation")
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to delete caretaker relation"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse(nil, "Caretaker relation deleted successfully"))
}
