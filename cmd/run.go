package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/hashboard/internal/app"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	steps, err := loadSteps(e.conf.TourCatalog, "")
	if err != nil {
		return err
	}

	center := e.center()
	opts := app.Options{
		Center:   center,
		Settings: e.settings(center),
		Events:   e.store.EventRepo(),
		Steps:    steps,
		Logger:   e.logger,
	}
	center.Welcome()

	e.logger.Info("starting", zap.String("version", version), zap.String("db", e.dbPath))
	return app.Run(cmd.Context(), opts)
}
