package main

import (
	"log"
	"os"

	api "email-planner-backend/cmd/api"
	authdomain "email-planner-backend/internal/auth/domain"
	authRepo "email-planner-backend/internal/auth/repository"
	authUsecase "email-planner-backend/internal/auth/usecase"
	dashboardRepo "email-planner-backend/internal/dashboard/repository"
	draftdomain "email-planner-backend/internal/draft/domain"
	draftRepo "email-planner-backend/internal/draft/repository"
	draftUsecase "email-planner-backend/internal/draft/usecase"
	emaildomain "email-planner-backend/internal/email/domain"
	emailRepo "email-planner-backend/internal/email/repository"
	emailUsecase "email-planner-backend/internal/email/usecase"
	"email-planner-backend/pkg/config"
	"email-planner-backend/pkg/database"
	"email-planner-backend/pkg/gmail"
	"email-planner-backend/pkg/llm"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(&authdomain.User{}, &authdomain.RefreshToken{}, &emaildomain.Email{}, &draftdomain.Draft{}); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize repositories (dependency injection)
	userRepo := authRepo.NewUserRepository(db)
	emailRepository := emailRepo.NewEmailRepository(db)
	draftRepository := draftRepo.NewDraftRepository(db)
	statsRepository := dashboardRepo.NewStatsRepository(db)

	// Initialize Gmail service
	gmailService := gmail.NewService(cfg.GoogleClientID, cfg.GoogleClientSecret)

	// Initialize LLM service
	llmClient := llm.NewClient(cfg.DeepSeekAPIBase, cfg.DeepSeekAPIKey)
	llmService := llm.NewService(llmClient)

	// Initialize use cases (dependency injection)
	authUsecaseInstance := authUsecase.NewAuthUsecase(userRepo, cfg)
	emailUsecaseInstance := emailUsecase.NewEmailUsecase(emailRepository, userRepo, gmailService, llmService)
	draftUsecaseInstance := draftUsecase.NewDraftUsecase(draftRepository, emailRepository, llmService)

	// Initialize HTTP handler
	handler := api.NewHandler(authUsecaseInstance, emailUsecaseInstance, draftUsecaseInstance, statsRepository, cfg)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	log.Printf("Server starting on port %s", port)
	if err := handler.Start(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
