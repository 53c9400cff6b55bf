package api

import (
	authUsecase "email-planner-backend/internal/auth/usecase"
	dashboardDelivery "email-planner-backend/internal/dashboard/delivery"
	dashboardRepo "email-planner-backend/internal/dashboard/repository"
	draftUsecasePkg "email-planner-backend/internal/draft/usecase"
	emailUsecasePkg "email-planner-backend/internal/email/usecase"
	"email-planner-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	authUsecase      authUsecase.AuthUsecase
	emailUsecase     emailUsecasePkg.EmailUsecase
	draftUsecase     draftUsecasePkg.DraftUsecase
	dashboardHandler *dashboardDelivery.DashboardHandler
	config           *config.Config
}

func NewHandler(authUc authUsecase.AuthUsecase, emailUc emailUsecasePkg.EmailUsecase, draftUc draftUsecasePkg.DraftUsecase, statsRepo dashboardRepo.StatsRepository, cfg *config.Config) *Handler {
	return &Handler{
		authUsecase:      authUc,
		emailUsecase:     emailUc,
		draftUsecase:     draftUc,
		dashboardHandler: dashboardDelivery.NewDashboardHandler(statsRepo),
		config:           cfg,
	}
}

func (h *Handler) Start(addr string) error {
	r := gin.Default()
	gin.SetMode(gin.ReleaseMode)

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	SetupRoutes(r, h.authUsecase, h.emailUsecase, h.draftUsecase, h.dashboardHandler, h.config)

	return r.Run(addr)
}
