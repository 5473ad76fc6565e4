//go:build wireinject
// +build wireinject

package di

import (
	"MetalPulse/pkg/config"
	"MetalPulse/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Observability
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideKafkaProducer,
		ProvidePayloadCache,
		ProvideHTTPClient,

		// Repositories
		ProvideMarketSource,
		ProvideInvalidator,

		// Use cases and rendering
		ProvideDashboardLoader,
		ProvideChartRegistry,
		ProvideDashboardHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
