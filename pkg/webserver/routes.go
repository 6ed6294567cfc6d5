package webserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	// Health check endpoint (no auth required)
	s.router.GET("/health", s.healthCheck)

	// API v1 routes
	v1 := s.router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", s.handleRegister)
			auth.POST("/login", s.handleLogin)
		}

		// Protected routes (JWT authentication required)
		protected := v1.Group("")
		protected.Use(s.authMiddleware())
		{
			// Account management
			accounts := protected.Group("/accounts")
			{
				accounts.GET("", s.getAccounts)
				accounts.GET("/me", s.getCurrentAccountInfo)
			}

			// Caretaker relations
			relations := protected.Group("/relations")
			{
				relations.GET("", s.getCaretakerRelations)
				relations.POST("", s.createCaretakerRelation)
				relations.PUT("/:id/confirm", s.confirmCaretakerRelation)
				relations.DELETE("/:id", s.deleteCaretakerRelation)
			}

			// Medication management
			medications := protected.Group("/medications")
			{
				medications.GET("", s.getMedications)
				medications.POST("", s.createMedication)
				medications.GET("/:id", s.getMedication)
				medications.DELETE("/:id", s.deleteMedication)
			}

			// Frequency enumeration for the creation form
			protected.GET("/frequencies", s.getFrequencies)

			// Scheduled doses
			doses := protected.Group("/doses")
			{
				doses.GET("", s.getScheduledDoses)
				doses.PUT("/:id/taken", s.updateDoseTaken)
			}

			// Adherence summary
			protected.GET("/adherence", s.getAdherenceStats)

			// Timing preferences and insights
			preferences := protected.Group("/timing")
			{
				preferences.GET("/preferences", s.getTimingPreferences)
				preferences.GET("/personalized", s.getPersonalizedSchedule)
				preferences.GET("/insights", s.getTimingInsights)
				preferences.DELETE("/preferences", s.resetTimingPreferences)
				preferences.POST("/simulate", s.simulateTimingScenario)
			}

			// Event feed
			events := protected.Group("/events")
			{
				events.GET("", s.getEvents)
			}
		}
	}

	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})
}
