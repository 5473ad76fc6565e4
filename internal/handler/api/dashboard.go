package api

import (
	"context"

	"MetalPulse/internal/view"
)

// DashboardRequest are the query options of the JSON endpoint.
type DashboardRequest struct {
	Refresh bool `query:"refresh"`
}

// ChartRequest addresses one chart slot.
type ChartRequest struct {
	Slot string `param:"slot" validate:"required,oneof=goldChart silverChart ratioChart"`
}

// Invalidator drops cached upstream payloads.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// HealthResponse is the body of the health probe.
type HealthResponse struct {
	Status string   `json:"status"`
	Charts []string `json:"charts"`
}

// DashboardResponse is the JSON view model of one load.
type DashboardResponse struct {
	view.Page
	LoadedAt string `json:"loaded_at"`
}
