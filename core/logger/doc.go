// Package logger provides a structured logging facility based on Zap.
//
// New builds a logger from the log section of the configuration. The debug
// level selects zap's development preset; every other level uses the
// production preset at that level. Format is json or console.
//
// WithRayID extracts the ray id stored by the ray id middleware from a Fiber
// context and attaches it to the log entry, so all logs of one request can be
// correlated.
//
// # Usage
//
//	log, err := logger.New(&cfg.Log)
//	log.Info("Server started")
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger
