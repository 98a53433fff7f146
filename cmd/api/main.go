package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/emre/scholaris/internal/pkg/logger"
	"github.com/emre/scholaris/internal/server"
)

// @title Scholaris API
// @version 1.0
// @description School administration backend: students, courses, attendance, calendar and vocational tests
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@scholaris.app

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

func main() {
	// Optional local overrides; real deployments set env vars directly.
	if err := godotenv.Load(); err == nil {
		logger.Debug().Msg("Loaded environment from .env file")
	}

	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
