//go:build wireinject
// +build wireinject

package main

import (
	"assetline/config"
	"assetline/internal/command"
	"assetline/internal/cron"
	"assetline/internal/database"
	"assetline/internal/handler"
	"assetline/internal/middleware"
	"assetline/internal/router"
	"assetline/internal/service"
	"assetline/internal/telemetry"

	"github.com/google/wire"
	"go.uber.org/zap"
)

// wireApp init application.
func wireApp(*config.Configuration, *zap.Logger) (*App, func(), error) {
	panic(
		wire.Build(
			database.ProviderSet,
			service.ProviderSet,
			handler.ProviderSet,
			middleware.ProviderSet,
			router.ProviderSet,
			cron.ProviderSet,
			newHttpServer,
			telemetry.ProviderSet,
			newApp,
		),
	)
}

// wireCommand init application.
func wireCommand(*config.Configuration, *zap.Logger) (*command.Command, func(), error) {
	panic(
		wire.Build(
			database.ProviderSet,
			telemetry.ProviderSet,
			service.ProviderSet,
			command.ProviderSet,
		),
	)
}
