package controller

import (
	"github.com/gin-gonic/gin"

	"simulazioni-backend/internal/config"
	"simulazioni-backend/internal/service"
	"simulazioni-backend/pkg/middleware"
	"simulazioni-backend/utilities"
)

func RegisterRoutes(
	r *gin.Engine,
	cfg *config.APIConfig,
	authService service.AuthService,
	userService service.UserService,
	simulationService service.SimulationService,
	attemptService service.AttemptService,
	gradingService service.GradingService,
	reviewService service.ReviewService,
) {
	mutationLimit := middleware.RateLimitMiddleware(20, 40)

	// Auth routes.
	authCtrl := NewAuthController(authService)
	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/register", authCtrl.Register)
		authRoutes.POST("/login", authCtrl.Login)
		authRoutes.POST("/refresh", authCtrl.Refresh)
	}

	// User routes.
	userCtrl := NewUserController(userService)
	r.GET("/user", utilities.StaffOnly(), userCtrl.GetAllUsers)

	// Simulation routes.
	simCtrl := NewSimulationController(simulationService, attemptService)
	simRoutes := r.Group("/simulations")
	{
		simRoutes.GET("", simCtrl.GetSimulations)
		simRoutes.GET("/:id", simCtrl.GetSimulation)
		simRoutes.POST("", utilities.StaffOnly(), mutationLimit, simCtrl.CreateSimulation)
		simRoutes.POST("/:id/attempts", mutationLimit, simCtrl.SubmitAttempt)
	}

	// Grading routes.
	gradingCtrl := NewGradingController(gradingService)
	r.GET("/results/:id/open-answers", gradingCtrl.GetOpenAnswers)
	r.POST("/open-answers/:id/validate", utilities.StaffOnly(), mutationLimit, gradingCtrl.ValidateOpenAnswer)
	r.POST("/results/:id/validate-batch", utilities.StaffOnly(), mutationLimit, gradingCtrl.ValidateBatch)

	// Review routes.
	reviewCtrl := NewReviewController(reviewService, cfg.Review)
	r.GET("/reviews/pending", utilities.StaffOnly(), reviewCtrl.GetPendingReviews)
}
