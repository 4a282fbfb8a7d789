//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/outfit-studio/internal/bootstrap"
	"github.com/yanqian/outfit-studio/internal/domain/mood"
	"github.com/yanqian/outfit-studio/internal/domain/outfit"
	"github.com/yanqian/outfit-studio/internal/domain/wardrobe"
	"github.com/yanqian/outfit-studio/internal/infra/config"
	httpiface "github.com/yanqian/outfit-studio/internal/interface/http"
	"github.com/yanqian/outfit-studio/pkg/logger"
)

func initializeApp() (*bootstrap.App, func(), error) {
	wire.Build(
		config.Load,
		logger.New,
		providePostgresPool,
		provideValkeyClient,
		provideWardrobeConfig,
		provideOutfitServiceConfig,
		provideItemRepository,
		provideMoodRepository,
		provideSavedRepository,
		provideOutfitStore,
		provideImageStorage,
		provideAuthService,
		provideItemSource,
		provideMoodSource,
		wardrobe.NewService,
		mood.NewService,
		outfit.NewService,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil, nil
}
