package main

import (
	"context"
	"log/slog"

	"github.com/aretw0/envcheck"
)

// recheckOnChange reloads and checks the workspace after every change
// until ctx is done.
func recheckOnChange(ctx context.Context, eng *envcheck.Engine, logger *slog.Logger) error {
	if _, err := eng.Check(ctx); err != nil {
		logger.Warn("initial check failed", "error", err)
	}

	changes, err := eng.Watch(ctx)
	if err != nil {
		return err
	}
	for range changes {
		if err := eng.Reload(ctx); err != nil {
			logger.Warn("reload failed", "error", err)
			continue
		}
		if _, err := eng.Check(ctx); err != nil && ctx.Err() == nil {
			logger.Warn("check failed", "error", err)
		}
	}
	return nil
}
