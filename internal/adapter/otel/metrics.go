package otel

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "landlord"

// Metrics holds all landlord metric instruments.
type Metrics struct {
	CommandsProcessed metric.Int64Counter
	CommandsRejected  metric.Int64Counter
	StoreFailures     metric.Int64Counter
	QuotaResets       metric.Int64Counter
	CoinsPaidOut      metric.Int64Counter
	CommandDuration   metric.Float64Histogram
}

// NewMetrics creates all metric instruments.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	m.CommandsProcessed, err = meter.Int64Counter("landlord.commands.processed",
		metric.WithDescription("Number of chat commands processed"))
	if err != nil {
		return nil, err
	}

	m.CommandsRejected, err = meter.Int64Counter("landlord.commands.rejected",
		metric.WithDescription("Number of commands rejected by economy rules"))
	if err != nil {
		return nil, err
	}

	m.StoreFailures, err = meter.Int64Counter("landlord.store.failures",
		metric.WithDescription("Number of ledger store operation failures"))
	if err != nil {
		return nil, err
	}

	m.QuotaResets, err = meter.Int64Counter("landlord.quota.resets",
		metric.WithDescription("Number of hourly quota reset passes"))
	if err != nil {
		return nil, err
	}

	m.CoinsPaidOut, err = meter.Int64Counter("landlord.coins.paid_out",
		metric.WithDescription("Total coins credited to tenants"))
	if err != nil {
		return nil, err
	}

	m.CommandDuration, err = meter.Float64Histogram("landlord.command.duration_seconds",
		metric.WithDescription("Command handling duration in seconds"))
	if err != nil {
		return nil, err
	}

	return m, nil
}
