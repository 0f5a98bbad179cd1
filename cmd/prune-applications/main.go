// The prune-applications command deletes applications whose job no longer
// exists. Readers render placeholders for orphaned applications, so pruning
// is a maintenance task rather than a correctness requirement.
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

	result := db.
		Where("job_id NOT IN (?)", db.Model(&model.Job{}).Select("id")).
		Delete(&model.Application{})
	if result.Error != nil {
		log.Fatal().Err(result.Error).Msg("failed to prune applications")
	}

	log.Info().Int64("deleted", result.RowsAffected).Msg("pruned orphaned applications")
}
