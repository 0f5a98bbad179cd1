// The api command runs the HTTP API server.
package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"CampusHire-backend/internal/config"
	"CampusHire-backend/internal/logger"
	"CampusHire-backend/internal/server"
)

// @title CampusHire API
// @version 1.0
// @description Job board backend where recruiters post jobs and students apply.
// @BasePath /api/v1
func main() {
	logger.Configure(gin.IsDebugging())

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize server")
	}

	log.Info().Int("port", cfg.Port).Msg("starting server")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
