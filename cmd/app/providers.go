package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/outfit-studio/internal/domain/auth"
	"github.com/yanqian/outfit-studio/internal/domain/mood"
	"github.com/yanqian/outfit-studio/internal/domain/outfit"
	"github.com/yanqian/outfit-studio/internal/domain/wardrobe"
	"github.com/yanqian/outfit-studio/internal/infra/config"
	"github.com/yanqian/outfit-studio/internal/infra/imagestore"
	"github.com/yanqian/outfit-studio/internal/infra/itemrepo"
	"github.com/yanqian/outfit-studio/internal/infra/moodrepo"
	"github.com/yanqian/outfit-studio/internal/infra/outfitcache"
	"github.com/yanqian/outfit-studio/internal/infra/outfitrepo"
)

func provideWardrobeConfig(cfg *config.Config) wardrobe.Config {
	return wardrobe.Config{
		MaxColorsPerItem: cfg.Wardrobe.MaxColorsPerItem,
		MaxImageBytes:    cfg.Wardrobe.MaxImageBytes,
		ImageBaseURL:     cfg.Wardrobe.ImageBaseURL,
		DefaultPageSize:  cfg.Wardrobe.DefaultPageSize,
	}
}

func provideOutfitServiceConfig(cfg *config.Config) outfit.ServiceConfig {
	g := cfg.Generator
	return outfit.ServiceConfig{
		Generator: outfit.Config{
			AttemptMultiplier:   g.AttemptMultiplier,
			MinItems:            g.MinItems,
			MaxCount:            g.MaxCount,
			MinOutfitScore:      g.MinOutfitScore,
			GenerationThreshold: g.GenerationThreshold,
			DressChance:         g.DressChance,
			OuterwearChance:     g.OuterwearChance,
			StandaloneTopChance: g.StandaloneTopChance,
			AccessoryMin:        g.AccessoryMin,
			AccessoryMax:        g.AccessoryMax,
			CoreReuseRatio:      g.CoreReuseRatio,
			ShoeColorThreshold:  g.ShoeColorThreshold,
			Weights: outfit.Weights{
				Color:        g.Weights.Color,
				Completeness: g.Weights.Completeness,
				Style:        g.Weights.Style,
				Logic:        g.Weights.Logic,
			},
			MoodBaseWeight:       g.Mood.BaseWeight,
			MoodColorWeight:      g.Mood.ColorWeight,
			SimilarColorDistance: g.SimilarColorDistance,
			NonCoreOverlapLimit:  g.NonCoreOverlapLimit,
		},
		DefaultCount:  cfg.Outfits.DefaultCount,
		MoodBatchSize: cfg.Outfits.MoodBatchSize,
		CacheTTL:      cfg.Outfits.CacheTTL,
		TrendingLimit: cfg.Outfits.TrendingLimit,
		SimilarLimit:  cfg.Outfits.SimilarLimit,
		Seed:          g.Seed,
	}
}

func provideAuthService(cfg *config.Config, logger *slog.Logger) auth.Service {
	if !cfg.Auth.Enabled {
		logger.Warn("api authentication disabled")
		return nil
	}
	return auth.NewService(auth.Config{
		Secret:   cfg.Auth.Secret,
		Issuer:   cfg.Auth.Issuer,
		TokenTTL: cfg.Auth.TokenTTL,
	})
}

// providePostgresPool returns nil when no DSN is set or the database is
// unreachable; repositories then fall back to memory.
func providePostgresPool(cfg *config.Config, logger *slog.Logger) (*pgxpool.Pool, func()) {
	noop := func() {}
	dsn := strings.TrimSpace(cfg.Postgres.DSN)
	if dsn == "" {
		logger.Info("postgres dsn not set, using memory repositories")
		return nil, noop
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory repositories", "error", err)
		return nil, noop
	}
	if cfg.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Postgres.MaxConns
	}
	if cfg.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory repositories", "error", err)
		return nil, noop
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory repositories", "error", err)
		pool.Close()
		return nil, noop
	}
	logger.Info("postgres repositories enabled")
	return pool, pool.Close
}

func provideItemRepository(pool *pgxpool.Pool) wardrobe.Repository {
	if pool == nil {
		return itemrepo.NewMemoryRepository()
	}
	return itemrepo.NewPostgresRepository(pool)
}

func provideMoodRepository(pool *pgxpool.Pool) mood.Repository {
	if pool == nil {
		return moodrepo.NewMemoryRepository()
	}
	return moodrepo.NewPostgresRepository(pool)
}

func provideSavedRepository(pool *pgxpool.Pool) outfit.SavedRepository {
	if pool == nil {
		return outfitrepo.NewMemoryRepository()
	}
	return outfitrepo.NewPostgresRepository(pool)
}

// provideValkeyClient returns nil when valkey is disabled or unreachable.
func provideValkeyClient(cfg *config.Config, logger *slog.Logger) (valkey.Client, func()) {
	noop := func() {}
	if !cfg.Valkey.Enabled {
		return nil, noop
	}
	opt, err := buildValkeyOptions(cfg.Valkey.Addr)
	if err != nil {
		logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
		return nil, noop
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back to memory store", "error", err)
		return nil, noop
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back to memory store", "error", err)
		client.Close()
		return nil, noop
	}
	logger.Info("valkey outfit store enabled", "addr", cfg.Valkey.Addr)
	return client, client.Close
}

func provideOutfitStore(cfg *config.Config, client valkey.Client) outfit.Store {
	if client == nil {
		return outfitcache.NewMemoryStore()
	}
	return outfitcache.NewValkeyStore(client, cfg.Valkey.Prefix)
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}

func provideImageStorage(cfg *config.Config, logger *slog.Logger) wardrobe.ImageStorage {
	r2 := cfg.Storage.R2
	if !r2.Enabled() {
		logger.Info("r2 storage not configured, keeping item images in memory")
		return imagestore.NewMemoryStorage()
	}
	storage, err := imagestore.NewR2Storage(r2.Endpoint, r2.AccessKey, r2.SecretKey, r2.Bucket, r2.Region, logger)
	if err != nil {
		logger.Error("failed to initialize r2 storage, keeping item images in memory", "error", err)
		return imagestore.NewMemoryStorage()
	}
	return storage
}

func provideItemSource(svc wardrobe.Service) outfit.ItemSource {
	return svc
}

func provideMoodSource(svc mood.Service) outfit.MoodSource {
	return svc
}
