package main

import (
	"errors"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/redboys/portal/internal/auth"
	"github.com/redboys/portal/internal/budgets"
	database "github.com/redboys/portal/internal/db"
	"github.com/redboys/portal/internal/events"
	"github.com/redboys/portal/internal/members"
	"github.com/redboys/portal/internal/metrics"
	"github.com/redboys/portal/internal/server"
	"github.com/redboys/portal/pkg/logging"
)

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func checkConfiguration() error {
	err := godotenv.Load()
	if err != nil {
		slog.Info("No .env file found, continuing with system environment variables")
	}

	if os.Getenv("JWT_SECRET") == "" {
		return errors.New("no JWT_SECRET provided")
	}
	if os.Getenv("MONGODB_URI") == "" {
		return errors.New("no MONGODB_URI provided")
	}
	if os.Getenv("ADMIN_PASSWORD_HASH") == "" {
		return errors.New("no ADMIN_PASSWORD_HASH provided")
	}
	return nil
}

func main() {
	logging.Setup()

	if err := checkConfiguration(); err != nil {
		slog.Error("Missing configuration, update to start server", "error", err)
		os.Exit(1)
	}

	dbService, err := database.NewDBService()
	if err != nil {
		slog.Error("Could not initialize database", "error", err)
		os.Exit(1)
	}
	defer dbService.Close()

	jwtManager := auth.NewJWTManager(os.Getenv("JWT_SECRET"))
	authService := auth.NewService(jwtManager, getEnv("ADMIN_USERNAME", "admin"), os.Getenv("ADMIN_PASSWORD_HASH"))
	authHandler := auth.NewHandler(authService, server.RespondJSON, server.RespondError)

	memberRepo := members.NewMongoRepository(dbService.DB)
	memberService := members.NewService(memberRepo)
	memberHandler := members.NewHandler(memberService, server.RespondJSON, server.RespondError)

	budgetRepo := budgets.NewMongoRepository(dbService.DB)
	budgetService := budgets.NewService(budgetRepo)
	budgetHandler := budgets.NewHandler(budgetService, server.RespondJSON, server.RespondError)

	eventRepo := events.NewMongoRepository(dbService.DB)
	eventService := events.NewService(eventRepo, budgetService)
	eventHandler := events.NewHandler(eventService, server.RespondJSON, server.RespondError)

	srv := server.New(
		authHandler,
		authService,
		memberHandler,
		eventHandler,
		budgetHandler,
		memberService,
		eventService,
		budgetService,
		dbService,
	)
	srv.RegisterRoutes()

	handler := server.LoggingMiddleware(server.CORSMiddleware(metrics.Middleware(srv.Router())))

	port := getEnv("PORT", "8080")
	slog.Info("Server starting", "port", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		slog.Error("Server failed to start", "error", err)
		os.Exit(1)
	}
}
