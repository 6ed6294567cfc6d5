package webserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zyelixify/MediGuard/pkg/db"
	"github.com/Zyelixify/MediGuard/pkg/models"
	"github.com/Zyelixify/MediGuard/pkg/utils"
)

// getAccounts lists accounts, optionally filtered by role. Caretakers use this
// to look up patients when creating a relation.
func (s *Server) getAccounts(c *gin.Context) {
	if _, err := s.getCurrentAccount(c); err != nil {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse("Unauthorized"))
		return
	}

	role := models.AccountRole(c.Query("role"))
	if role != "" && role != models.RolePatient && role != models.RoleCaretaker {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Invalid role filter"))
		return
	}

	repo := db.NewRepository(s.db)
	accounts, err := repo.GetAccounts(role)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get accounts")
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to get accounts"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse(accounts, "Accounts retrieved successfully"))
}

// getCurrentAccountInfo returns the authenticated account
func (s *Server) getCurrentAccountInfo(c *gin.Context) {
	account, err := s.getCurrentAccount(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse("Unauthorized"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse(account, "Account retrieved successfully"))
}
