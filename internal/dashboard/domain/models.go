package domain

import "context"

type Service interface {
	// Summary aggregates utility-wide figures. Each figure is computed
	// independently; there is no snapshot isolation against in-flight
	// writes.
	Summary(ctx context.Context) (*Summary, error)
}

type Summary struct {
	ConsumersTotal     int64   `json:"consumers_total"`
	ConsumersActive    int64   `json:"consumers_active"`
	BilledPaise        int64   `json:"billed_paise"`
	CollectedPaise     int64   `json:"collected_paise"`
	OutstandingPaise   int64   `json:"outstanding_paise"`
	PendingMaintenance int64   `json:"pending_maintenance"`
	SourceCapacityMLD  float64 `json:"source_capacity_mld"`
}
