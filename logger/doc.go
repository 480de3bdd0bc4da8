// Package logger provides structured logging built on zerolog.
//
// It supports JSON and console output, level configuration, and
// component-scoped loggers. Loggers derived with WithContext carry the
// trace and span IDs of the active OpenTelemetry span.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//	  output: "stderr"
//
// # Usage
//
//	log := logger.Get("httpclient")
//	log.Info("request completed", logger.Fields(logger.FieldStatus, 200))
package logger
