//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"scorekeeper/internal"
	"scorekeeper/internal/backup"
	"scorekeeper/internal/controllers"
	"scorekeeper/internal/providers"
	"scorekeeper/internal/repository"
	"scorekeeper/internal/services"
	"scorekeeper/internal/storage"
	"scorekeeper/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, func(), error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,

		storage.NewDocumentStore,
		repository.NewRecordRepository,
		services.NewActivityLogger,
		services.NewGuestLinkService,
		services.NewImportService,
		backup.ProvideSnapshotStore,
		backup.NewCoordinator,
		backup.NewScheduler,

		controllers.NewBackupController,
		controllers.NewGuestController,
		controllers.NewImportController,
		controllers.NewClientLogController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewHandler,
		internal.NewApp,
	)

	return nil, nil, nil
}
