package util

import (
	"context"
	"time"

	otlpruntime "go.opentelemetry.io/contrib/instrumentation/runtime"

	"github.com/mpapenbr/nascar-mfg-standings/log"
	"github.com/mpapenbr/nascar-mfg-standings/pkg/config"
)

// StartTelemetry sets up the exporters if telemetry is enabled.
// The returned function flushes and stops them.
func StartTelemetry(ctx context.Context, withRuntime bool) func() {
	if !config.EnableTelemetry {
		return func() {}
	}
	log.Info("Enabling telemetry", log.String("endpoint", config.TelemetryEndpoint))
	telemetry, err := config.SetupTelemetry(ctx)
	if err != nil {
		log.Warn("Could not setup telemetry", log.ErrorField(err))
		return func() {}
	}
	if withRuntime {
		err = otlpruntime.Start(otlpruntime.WithMinimumReadMemStatsInterval(time.Second))
		if err != nil {
			log.Warn("Could not start runtime metrics", log.ErrorField(err))
		}
	}
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := telemetry.Shutdown(ctx); err != nil {
			log.Warn("Could not shutdown telemetry", log.ErrorField(err))
		}
	}
}
