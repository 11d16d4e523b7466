// Package httpserver runs an http.Server with graceful shutdown on context
// cancellation, SIGINT or SIGTERM.
//
//	srv := httpserver.New(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server failed", logger.Error(err))
//	}
package httpserver
