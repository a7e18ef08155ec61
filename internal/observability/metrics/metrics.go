package metrics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Config configures the metrics provider.
type Config struct {
	Enabled          bool
	ExporterEndpoint string
	ExporterProtocol string
	ServiceName      string
	Environment      string
}

// Metrics exposes application-level instruments.
type Metrics struct {
	billsIssued     metric.Int64Counter
	paymentsApplied metric.Int64Counter
	overdueSwept    metric.Int64Counter
	paymentConflict metric.Int64Counter
}

// NewProvider configures and registers the meter provider.
func NewProvider(lc fx.Lifecycle, cfg Config, log *zap.Logger) (metric.MeterProvider, error) {
	if !cfg.Enabled {
		provider := noop.NewMeterProvider()
		otel.SetMeterProvider(provider)
		return provider, nil
	}

	exporter, err := newExporter(cfg.ExporterProtocol, cfg.ExporterEndpoint)
	if err != nil {
		return nil, err
	}

	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(10*time.Second))
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(provider)

	if lc != nil {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				if log != nil {
					log.Info("shutting down meter provider")
				}
				return provider.Shutdown(ctx)
			},
		})
	}

	if log != nil {
		log.Info("metrics initialized",
			zap.String("endpoint", cfg.ExporterEndpoint),
			zap.String("protocol", cfg.ExporterProtocol),
		)
	}

	return provider, nil
}

// New configures the domain metrics instruments.
func New(cfg Config, provider metric.MeterProvider) (*Metrics, error) {
	name := strings.TrimSpace(cfg.ServiceName)
	if name == "" {
		name = "waterworks"
	}
	meter := provider.Meter(name + "/billing")

	billsIssued, err := meter.Int64Counter("billing.bills_issued")
	if err != nil {
		return nil, err
	}
	paymentsApplied, err := meter.Int64Counter("billing.payments_applied")
	if err != nil {
		return nil, err
	}
	overdueSwept, err := meter.Int64Counter("billing.overdue_swept")
	if err != nil {
		return nil, err
	}
	paymentConflict, err := meter.Int64Counter("billing.payment_conflicts")
	if err != nil {
		return nil, err
	}

	return &Metrics{
		billsIssued:     billsIssued,
		paymentsApplied: paymentsApplied,
		overdueSwept:    overdueSwept,
		paymentConflict: paymentConflict,
	}, nil
}

// RecordBillIssued counts a freshly created bill by consumer category.
func (m *Metrics) RecordBillIssued(ctx context.Context, category string) {
	if m == nil {
		return
	}
	m.billsIssued.Add(ctx, 1, metric.WithAttributes(attribute.String("category", category)))
}

// RecordPaymentApplied counts a settled payment by mode.
func (m *Metrics) RecordPaymentApplied(ctx context.Context, mode string) {
	if m == nil {
		return
	}
	m.paymentsApplied.Add(ctx, 1, metric.WithAttributes(attribute.String("mode", mode)))
}

// RecordPaymentConflict counts a lost compare-and-swap race on a bill.
func (m *Metrics) RecordPaymentConflict(ctx context.Context) {
	if m == nil {
		return
	}
	m.paymentConflict.Add(ctx, 1)
}

// RecordOverdueSwept counts bills flipped to OVERDUE by the sweep job.
func (m *Metrics) RecordOverdueSwept(ctx context.Context, count int64) {
	if m == nil || count <= 0 {
		return
	}
	m.overdueSwept.Add(ctx, count)
}

func newExporter(protocol, endpoint string) (sdkmetric.Exporter, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	switch strings.ToLower(strings.TrimSpace(protocol)) {
	case "http", "http/protobuf":
		opts := []otlpmetrichttp.Option{}
		if endpoint != "" {
			opts = append(opts, otlpmetrichttp.WithEndpoint(endpoint))
		}
		return otlpmetrichttp.New(ctx, opts...)
	case "grpc", "grpc/protobuf", "":
		opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithInsecure()}
		if endpoint != "" {
			opts = append(opts, otlpmetricgrpc.WithEndpoint(endpoint))
		}
		return otlpmetricgrpc.New(ctx, opts...)
	default:
		return nil, fmt.Errorf("unsupported OTLP protocol %q", protocol)
	}
}
