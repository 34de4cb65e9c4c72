// Package logger builds *slog.Logger values for formkit binaries and holds
// the attribute helpers used across the form engine.
//
// New applies functional options and picks slog.NewTextHandler or
// slog.NewJSONHandler. The handler is wrapped in a LogHandlerDecorator that
// runs ContextExtractor callbacks for each record, so request-scoped values
// such as a request id reach every log line.
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, "formkit"),
//	    logger.WithLevelName(cfg.LogLevel),
//	    logger.WithContextValue("request_id", middleware.RequestIDKey),
//	)
//	log.Debug("field rejected",
//	    logger.Form("signup"),
//	    logger.FieldKey("f.acc.0.em"),
//	    logger.ValidatorID("email"),
//	)
//
// Error and Errors return an empty Attr for nil errors, so they can be passed
// unconditionally. Discard returns the logger used when none is configured.
package logger
