// Package logger builds slog loggers with a fixed set of options and keeps
// attribute names consistent through small constructors such as Error,
// NotificationID and PageID.
//
//	log := logger.New(
//		logger.WithEnvironment("development", "dashboard"),
//		logger.WithContextValue("page_id", pageKey{}),
//	)
//	log.LogAttrs(ctx, slog.LevelWarn, "failed to render toast", logger.Error(err))
//
// Context extractors run on every log call, so request scoped values are
// never stale.
package logger
