package main

import (
	"os"

	"github.com/cybersleuth25/unisphere/internal/pkg/logger"
	"github.com/cybersleuth25/unisphere/internal/server"
)

// @title UniSphere API
// @version 1.0
// @description API for UniSphere university social platform
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://www.unisphere.com/support
// @contact.email support@unisphere.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Blocks until a shutdown signal is handled.
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
