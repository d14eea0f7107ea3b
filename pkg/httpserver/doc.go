// Package httpserver runs an http.Handler with the timeouts from Config and
// shuts it down gracefully when the run context is canceled.
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//
//	srv := httpserver.New(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, handler); err != nil {
//	    return err
//	}
//
// In-flight requests get ShutdownTimeout to finish. Errors are joined with
// ErrStart or ErrShutdown.
package httpserver
