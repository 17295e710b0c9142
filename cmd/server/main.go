package main

import (
	"context"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"buba/internal/config"
	"buba/internal/database"
	"buba/internal/handlers"
	"buba/internal/pictogram"
	"buba/internal/repository"
	"buba/internal/security"
	"buba/internal/service"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

func main() {
	cfg := config.Load()

	// Initialize database (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations completed successfully")

	// Repositories
	tutorRepo := repository.NewTutorRepository(db)
	apprenticeRepo := repository.NewApprenticeRepository(db)
	routineRepo := repository.NewRoutineRepository(db)
	agendaRepo := repository.NewAgendaRepository(db)

	// Services
	emailService, err := service.NewEmailService(context.Background(), cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.AppBaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}

	authService := service.NewAuthService(tutorRepo, cfg.SessionDuration)
	apprenticeService := service.NewApprenticeService(apprenticeRepo, cfg.MaxLoginAttempts, cfg.LoginLockout)
	rewardService := service.NewRewardService(apprenticeRepo)
	routineService := service.NewRoutineService(routineRepo)
	agendaService := service.NewAgendaService(agendaRepo)

	// rand.Rand is not safe for concurrent use; each game service
	// serializes access with its own mutex, so each gets its own.
	memoryService := service.NewMemoryService(rewardService, rand.New(rand.NewSource(time.Now().UnixNano())))
	equationService := service.NewEquationService(rewardService, rand.New(rand.NewSource(time.Now().UnixNano()+1)))
	quizService := service.NewQuizService(rewardService)

	// Security plumbing
	tokens := security.NewTokenIssuer(cfg.TokenSecret, cfg.ApprenticeSessionTTL)
	csrf := security.NewCSRFGenerator(cfg.CSRFSecret)
	limiter := security.NewRateLimiter(20, time.Minute)

	pictogramClient := pictogram.NewClient(cfg.PictogramBaseURL, cfg.PictogramLanguage)

	googleOAuth := &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{"openid", "email", "profile"},
	}

	// Handlers
	middleware := handlers.NewMiddleware(authService, tokens, csrf, limiter)
	authHandler := handlers.NewAuthHandler(authService, emailService, csrf, cfg.SessionDuration, googleOAuth, cfg.OAuthRedirectBaseURL)
	tutorHandler := handlers.NewTutorHandler(apprenticeService, routineService, agendaService, rewardService, emailService)
	apprenticeHandler := handlers.NewApprenticeHandler(apprenticeService, rewardService, tokens)
	memoryHandler := handlers.NewMemoryHandler(memoryService)
	equationHandler := handlers.NewEquationHandler(equationService)
	quizHandler := handlers.NewQuizHandler(quizService)
	tasksHandler := handlers.NewTasksHandler(routineService, agendaService)
	pictogramHandler := handlers.NewPictogramHandler(pictogramClient)

	mux := http.NewServeMux()

	// Tutor auth
	mux.HandleFunc("POST /api/auth/register", middleware.RateLimit(authHandler.Register))
	mux.HandleFunc("POST /api/auth/login", middleware.RateLimit(authHandler.Login))
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)
	mux.HandleFunc("GET /api/auth/me", middleware.RequireAuth(authHandler.Me))
	mux.HandleFunc("GET /api/auth/csrf", middleware.RequireAuth(authHandler.CSRFToken))
	mux.HandleFunc("POST /api/auth/forgot-password", middleware.RateLimit(authHandler.RequestPasswordReset))
	mux.HandleFunc("POST /api/auth/reset-password", middleware.RateLimit(authHandler.ResetPassword))
	mux.HandleFunc("GET /auth/google/start", authHandler.StartGoogleOAuth)
	mux.HandleFunc("GET /auth/google/callback", authHandler.GoogleOAuthCallback)

	// Tutor-facing management
	mux.HandleFunc("GET /api/apprentices", middleware.RequireAuth(tutorHandler.ListApprentices))
	mux.HandleFunc("POST /api/apprentices", middleware.RequireAuth(middleware.CSRFProtect(tutorHandler.CreateApprentice)))
	mux.HandleFunc("GET /api/apprentices/{id}", middleware.RequireAuth(tutorHandler.GetApprentice))
	mux.HandleFunc("PUT /api/apprentices/{id}", middleware.RequireAuth(middleware.CSRFProtect(tutorHandler.UpdateApprentice)))
	mux.HandleFunc("DELETE /api/apprentices/{id}", middleware.RequireAuth(middleware.CSRFProtect(tutorHandler.DeleteApprentice)))
	mux.HandleFunc("POST /api/apprentices/{id}/pin", middleware.RequireAuth(middleware.CSRFProtect(tutorHandler.RegeneratePIN)))
	mux.HandleFunc("GET /api/apprentices/{id}/progress", middleware.RequireAuth(tutorHandler.GetApprenticeProgress))
	mux.HandleFunc("GET /api/apprentices/{id}/routine", middleware.RequireAuth(tutorHandler.ListRoutineTasks))
	mux.HandleFunc("POST /api/apprentices/{id}/routine", middleware.RequireAuth(middleware.CSRFProtect(tutorHandler.CreateRoutineTask)))
	mux.HandleFunc("PUT /api/apprentices/{id}/routine/{taskID}", middleware.RequireAuth(middleware.CSRFProtect(tutorHandler.UpdateRoutineTask)))
	mux.HandleFunc("DELETE /api/apprentices/{id}/routine/{taskID}", middleware.RequireAuth(middleware.CSRFProtect(tutorHandler.DeleteRoutineTask)))
	mux.HandleFunc("GET /api/apprentices/{id}/agenda", middleware.RequireAuth(tutorHandler.ListAgendaEvents))
	mux.HandleFunc("POST /api/apprentices/{id}/agenda", middleware.RequireAuth(middleware.CSRFProtect(tutorHandler.CreateAgendaEvent)))
	mux.HandleFunc("PUT /api/apprentices/{id}/agenda/{eventID}", middleware.RequireAuth(middleware.CSRFProtect(tutorHandler.UpdateAgendaEvent)))
	mux.HandleFunc("DELETE /api/apprentices/{id}/agenda/{eventID}", middleware.RequireAuth(middleware.CSRFProtect(tutorHandler.DeleteAgendaEvent)))

	// Apprentice session
	mux.HandleFunc("POST /api/apprentice/login", middleware.RateLimit(apprenticeHandler.Login))
	mux.HandleFunc("GET /api/apprentice/me", middleware.RequireApprentice(apprenticeHandler.Me))
	mux.HandleFunc("GET /api/apprentice/progress", middleware.RequireApprentice(apprenticeHandler.Progress))

	// Games
	mux.HandleFunc("POST /api/games/memory/start", middleware.RequireApprentice(memoryHandler.Start))
	mux.HandleFunc("GET /api/games/memory", middleware.RequireApprentice(memoryHandler.State))
	mux.HandleFunc("POST /api/games/memory/input", middleware.RequireApprentice(memoryHandler.Input))
	mux.HandleFunc("POST /api/games/equations/start", middleware.RequireApprentice(equationHandler.Start))
	mux.HandleFunc("POST /api/games/equations/answer", middleware.RequireApprentice(equationHandler.Submit))
	mux.HandleFunc("GET /api/games/quizzes", middleware.RequireApprentice(quizHandler.Catalog))
	mux.HandleFunc("POST /api/games/quizzes/{type}/start", middleware.RequireApprentice(quizHandler.Start))
	mux.HandleFunc("POST /api/games/quizzes/answer", middleware.RequireApprentice(quizHandler.Answer))

	// Routine and agenda (apprentice view)
	mux.HandleFunc("GET /api/tasks/routine", middleware.RequireApprentice(tasksHandler.Routine))
	mux.HandleFunc("POST /api/tasks/routine/{taskID}/toggle", middleware.RequireApprentice(tasksHandler.ToggleTask))
	mux.HandleFunc("POST /api/tasks/routine/toggle-all", middleware.RequireApprentice(tasksHandler.ToggleAll))
	mux.HandleFunc("GET /api/tasks/agenda", middleware.RequireApprentice(tasksHandler.Agenda))

	// Pictograms
	mux.HandleFunc("GET /api/pictograms", middleware.RequireApprentice(pictogramHandler.Search))

	handler := handlers.Logging(mux)

	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go cleanupExpiredSessions(authService)

	if cfg.RoutineDailyReset {
		go resetRoutineAtMidnight(routineService)
	}

	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
}

// cleanupExpiredSessions periodically removes expired tutor sessions
func cleanupExpiredSessions(authService *service.AuthService) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		if err := authService.CleanupExpiredSessions(); err != nil {
			log.Printf("Warning: session cleanup failed: %v", err)
		}
	}
}

// resetRoutineAtMidnight reopens all routine tasks at local midnight.
// Only runs when ROUTINE_DAILY_RESET is enabled.
func resetRoutineAtMidnight(routineService *service.RoutineService) {
	for {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).Add(24 * time.Hour)
		time.Sleep(time.Until(next))

		count, err := routineService.ResetDailyCompletion()
		if err != nil {
			log.Printf("Warning: routine reset failed: %v", err)
			continue
		}
		log.Printf("Routine reset: reopened %d tasks", count)
	}
}
