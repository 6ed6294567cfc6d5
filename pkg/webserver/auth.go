package webserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zyelixify/MediGuard/pkg/db"
	"github.com/Zyelixify/MediGuard/pkg/models"
	"github.com/Zyelixify/MediGuard/pkg/utils"
)

// RegisterRequest represents the request to register a new account
type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required"`
}

// LoginRequest represents the request to log in
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse carries the issued token and account profile
type AuthResponse struct {
	Token   string          `json:"token"`
	Account *models.Account `json:"account"`
}

// handleRegister creates a new account and issues a token
func (s *Server) handleRegister(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Invalid request data"))
		return
	}

	req.Email = s.validator.SanitizeInput(req.Email)
	req.Name = s.validator.SanitizeInput(req.Name)

	if !s.validator.ValidateEmail(req.Email) {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Invalid email address"))
		return
	}

	role := models.AccountRole(req.Role)
	if role != models.RolePatient && role != models.RoleCaretaker {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Role must be patient or caretaker"))
		return
	}

	repo := db.NewRepository(s.db)
	if _, err := repo.GetAccountByEmail(req.Email); err == nil {
		c.JSON(http.StatusConflict, utils.NewErrorResponse("An account with this email already exists"))
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.logger.WithError(err).Error("Failed to hash password")
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to create account"))
		return
	}

	account := &models.Account{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
		Role:         role,
	}

	if err := repo.CreateAccount(account); err != nil {
		s.logger.WithError(err).Error("Failed to create account")
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to create account"))
		return
	}

	token, err := s.jwtManager.GenerateToken(account.ID, account.Email, string(account.Role))
	if err != nil {
		s.logger.WithError(err).Error("Failed to generate token")
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to generate token"))
		return
	}

	s.logger.LogAuth(account.ID, account.Email, "register", true)

	c.JSON(http.StatusCreated, utils.NewSuccessResponse(AuthResponse{
		Token:   token,
		Account: account,
	}, "Account created successfully"))
}

// handleLogin verifies credentials and issues a token
func (s *Server) handleLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Invalid request data"))
		return
	}

	req.Email = s.validator.SanitizeInput(req.Email)

	repo := db.NewRepository(s.db)
	account, err := repo.GetAccountByEmail(req.Email)
	if err != nil || !utils.CheckPassword(account.PasswordHash, req.Password) {
		s.logger.LogAuth("", req.Email, "login", false)
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse("Invalid email or password"))
		return
	}

	token, err := s.jwtManager.GenerateToken(account.ID, account.Email, string(account.Role))
	if err != nil {
		s.logger.WithError(err).Error("Failed to generate token")
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to generate token"))
		return
	}

	s.logger.LogAuth(account.ID, account.Email, "login", true)

	c.JSON(http.StatusOK, utils.NewSuccessResponse(AuthResponse{
		Token:   token,
		Account: account,
	}, "Logged in successfully"))
}
