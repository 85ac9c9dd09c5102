// Package providers contains dependency injection providers for the Songboard server.
package providers

import (
	"github.com/samber/do/v2"

	"github.com/songboard/songboard-server/internal/config"
	"github.com/songboard/songboard-server/internal/logger"
)

// ProvideConfig provides the application configuration.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	return config.LoadConfig()
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		Environment: cfg.App.Environment,
	})

	log.Info("Starting Songboard Server",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"primary_csv", cfg.Data.PrimaryPath,
		"annotations_csv", cfg.Data.AnnotationsPath,
		"metadata_path", cfg.Data.BasePath,
	)

	return log, nil
}
