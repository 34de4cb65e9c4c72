// Package httpserver runs an HTTP handler with graceful shutdown.
//
//	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		return err
//	}
//
// Run returns when ctx is cancelled or the process receives SIGINT or
// SIGTERM, after in-flight requests finished or the shutdown timeout
// elapsed.
package httpserver
