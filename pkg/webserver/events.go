package webserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Zyelixify/MediGuard/pkg/db"
	"github.com/Zyelixify/MediGuard/pkg/utils"
)

// getEvents lists the account's event feed, newest first
func (s *Server) getEvents(c *gin.Context) {
	account, err := s.getCurrentAccount(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse("Unauthorized"))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	repo := db.NewRepository(s.db)
	count, err := repo.GetEventsCount(account.ID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to count events")
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to get events"))
		return
	}

	pagination := utils.NewPagination(page, limit, count)
	events, err := repo.GetEventsByAccountID(account.ID, pagination.Limit, pagination.GetOffset())
	if err != nil {
		s.logger.WithError(err).Error("Failed to get events")
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to get events"))
		return
	}

	c.JSON(http.StatusOK, utils.NewPaginatedResponse(events, pagination, "Events retrieved successfully"))
}
