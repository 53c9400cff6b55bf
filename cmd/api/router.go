package api

import (
	"net/http"

	"email-planner-backend/internal/auth/delivery"
	authUsecase "email-planner-backend/internal/auth/usecase"
	dashboardDelivery "email-planner-backend/internal/dashboard/delivery"
	draftDelivery "email-planner-backend/internal/draft/delivery"
	draftUsecase "email-planner-backend/internal/draft/usecase"
	emailDelivery "email-planner-backend/internal/email/delivery"
	emailUsecase "email-planner-backend/internal/email/usecase"
	"email-planner-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, authUsecase authUsecase.AuthUsecase, emailUsecase emailUsecase.EmailUsecase, draftUsecase draftUsecase.DraftUsecase, dashboardHandler *dashboardDelivery.DashboardHandler, cfg *config.Config) {
	authHandler := delivery.NewAuthHandler(authUsecase, cfg.FrontendURL)
	emailHandler := emailDelivery.NewEmailHandler(emailUsecase)
	draftHandler := draftDelivery.NewDraftHandler(draftUsecase)

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/register", authHandler.Register)
			auth.GET("/login/google", authHandler.GoogleLogin)
			auth.GET("/callback/google", authHandler.GoogleCallback)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.GET("/me", delivery.AuthMiddleware(authUsecase), authHandler.Me)
			auth.POST("/logout", authHandler.Logout)
		}

		// Email routes (protected)
		emails := api.Group("/emails")
		emails.Use(delivery.AuthMiddleware(authUsecase))
		{
			emails.GET("", emailHandler.ListEmails)
			emails.POST("/sync", emailHandler.SyncEmails)
			emails.POST("/analyze", emailHandler.AnalyzeBatch)
			emails.POST("/:id/analyze", emailHandler.AnalyzeEmail)
		}

		// Draft routes (protected)
		drafts := api.Group("/drafts")
		drafts.Use(delivery.AuthMiddleware(authUsecase))
		{
			drafts.GET("", draftHandler.ListDrafts)
			drafts.POST("/generate/:email_id", draftHandler.GenerateDraft)
		}

		// Dashboard routes (protected)
		dashboard := api.Group("/dashboard")
		dashboard.Use(delivery.AuthMiddleware(authUsecase))
		{
			dashboard.GET("/stats", dashboardHandler.GetStats)
			dashboard.GET("/timeline", dashboardHandler.GetTimeline)
		}
	}
}
