package config

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"

	"github.com/mpapenbr/nascar-mfg-standings/version"
)

const StdoutTelemetry = "stdout"

type Telemetry struct {
	meterProvider *metric.MeterProvider
	traceProvider *trace.TracerProvider
}

// Shutdown flushes pending telemetry data
func (t *Telemetry) Shutdown(ctx context.Context) error {
	return errors.Join(
		t.meterProvider.Shutdown(ctx),
		t.traceProvider.Shutdown(ctx),
	)
}

// SetupTelemetry installs global meter and trace providers exporting to TelemetryEndpoint
func SetupTelemetry(ctx context.Context) (*Telemetry, error) {
	res := resource.NewSchemaless(
		attribute.String("service.name", "nms"),
		attribute.String("service.version", version.Version),
	)
	metricExporter, traceExporter, err := createExporters(ctx)
	if err != nil {
		return nil, err
	}
	mp := metric.NewMeterProvider(
		metric.WithResource(res),
		metric.WithReader(metric.NewPeriodicReader(metricExporter)),
	)
	tp := trace.NewTracerProvider(
		trace.WithResource(res),
		trace.WithBatcher(traceExporter),
	)
	otel.SetMeterProvider(mp)
	otel.SetTracerProvider(tp)
	return &Telemetry{meterProvider: mp, traceProvider: tp}, nil
}

func createExporters(ctx context.Context) (metric.Exporter, trace.SpanExporter, error) {
	if TelemetryEndpoint == StdoutTelemetry {
		me, err := stdoutmetric.New()
		if err != nil {
			return nil, nil, err
		}
		te, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, nil, err
		}
		return me, te, nil
	}
	me, err := otlpmetricgrpc.New(ctx,
		otlpmetricgrpc.WithEndpoint(TelemetryEndpoint),
		otlpmetricgrpc.WithInsecure())
	if err != nil {
		return nil, nil, err
	}
	te, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(TelemetryEndpoint),
		otlptracegrpc.WithInsecure())
	if err != nil {
		return nil, nil, err
	}
	return me, te, nil
}
