//go:build wireinject
// +build wireinject

package di

import (
	"context"
	wire "github.com/google/wire"
	"petcare/internal"
	"petcare/internal/controllers"
	"petcare/internal/persistence"
	"petcare/internal/providers"
	"petcare/internal/services"
	"petcare/internal/structures"
)

func InitApp(ctx context.Context, cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,
		providers.NewClockProvider,
		providers.NewIDProvider,

		persistence.NewStorage,
		persistence.NewPersister,
		wire.Bind(new(persistence.PersisterInterface), new(*persistence.Persister)),
		persistence.NewScheduler,

		services.NewPetStore,
		services.NewTaskStore,
		services.NewUserStore,
		services.NewScanService,
		services.NewViewService,
		services.NewSeedService,

		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
