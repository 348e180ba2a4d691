//go:build wireinject
// +build wireinject

package main

import (
	"BoxKeeper/cmd"
	"BoxKeeper/database"
	"BoxKeeper/internal/config"
	"BoxKeeper/internal/handlers"
	"BoxKeeper/internal/repository"
	"BoxKeeper/internal/services"
	"github.com/google/wire"
)

func Provider() (*config.Configuration, error) {
	return config.LoadConfiguration(config.Path())
}

func InitializeServer() (*cmd.Server, error) {
	wire.Build(
		cmd.NewServer,
		database.SetupDatabase,
		repository.NewStoreLock,
		repository.NewBoxRepository,
		repository.NewScreenRepository,
		services.NewLogService,
		services.NewBoxService,
		handlers.NewBoxHandler,
		services.NewAssignmentService,
		handlers.NewAssignmentHandler,
		services.NewScreenService,
		services.NewScreenAssignmentService,
		handlers.NewScreenHandler,
		services.NewJanitorService,
		Provider,
	)
	return nil, nil
}
