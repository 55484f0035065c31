package cmd

import (
	"log/slog"
	"os"

	"github.com/calbot-ai/calbot/internal/calendar"
	"github.com/calbot-ai/calbot/internal/config"
	"github.com/calbot-ai/calbot/internal/logging"
)

// openStore opens the persistent event store. A broken database degrades to
// an in-memory store with a warning rather than refusing to start.
func openStore(cfg *config.Config, logger *slog.Logger) (*calendar.Store, func()) {
	if err := os.MkdirAll(cfg.Paths.DataDir, 0755); err != nil {
		logger.Warn("creating data directory failed, using in-memory store", logging.Err(err))
		return calendar.NewFromSyncer(nil, logger, cfg.Calendar.SeedDemoEvents), func() {}
	}

	syncer, err := calendar.OpenSQLite(cfg.Paths.EventsDB)
	if err != nil {
		logger.Warn("opening event database failed, using in-memory store", logging.Err(err))
		return calendar.NewFromSyncer(nil, logger, cfg.Calendar.SeedDemoEvents), func() {}
	}

	store := calendar.NewFromSyncer(syncer, logger, cfg.Calendar.SeedDemoEvents)
	return store, func() {
		if err := syncer.Close(); err != nil {
			logger.Warn("closing event database failed", logging.Err(err))
		}
	}
}
