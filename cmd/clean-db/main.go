// The clean-db command drops every table managed by the application.
// Intended for development databases only.
package main

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"CampusHire-backend/internal/config"
	"CampusHire-backend/internal/database"
	"CampusHire-backend/internal/logger"
	"CampusHire-backend/internal/model"
)

func main() {
	logger.Configure(gin.IsDebugging())

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	db, err := database.NewDBInstance(&cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := db.Migrator().DropTable(model.MigrateAble...); err != nil {
		log.Fatal().Err(err).Msg("failed to drop tables")
	}

	log.Info().Msg("all tables dropped")
}
