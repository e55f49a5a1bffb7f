package app

import (
	"context"

	"github.com/specialistvlad/easycompile/internal/ctxlog"
)

// Run executes the session and returns the process exit code.
func (a *App) Run(ctx context.Context) int {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "target", a.config.Target, "has_target", a.config.HasTarget)

	code := a.loop.Run(ctx, a.config.Target, a.config.HasTarget)

	a.logger.Debug("App.Run method finished.", "exit_code", code)
	return code
}
