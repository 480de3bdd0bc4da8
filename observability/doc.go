// Package observability provides OpenTelemetry tracing and metrics
// integration for dispatched HTTP calls.
//
// Setup:
//
//	shutdown, err := observability.Setup(ctx, cfg, "dispatchctl", version.GetVersionInfo().Version, "production")
//	defer shutdown(ctx)
//
// Metrics:
//
//	metrics, err := observability.NewDispatchMetrics(otel.Meter("my-client"))
//	metrics.Record(ctx, "GetAsync", "GET", observability.OutcomeSuccess, duration)
package observability
