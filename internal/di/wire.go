//go:build wireinject
// +build wireinject

package di

import (
	"PriceScout/pkg/config"
	"PriceScout/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire generates the implementation of this function (wire_gen.go).
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideCache,
		ProvideClickHouseClient,
		ProvideKafkaProducer,
		ProvideKafkaConsumer,

		// Repositories
		ProvideFetcher,
		ProvideAnalysisStore,
		ProvideResultPublisher,

		// Engine components
		ProvidePricingOptions,
		ProvideExtractor,
		ProvideResearchGenerator,
		ProvideProgressHub,

		// Use cases
		ProvideAnalyzer,
		ProvideKafkaItemsHandler,

		// HTTP surface
		ProvidePricingHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
