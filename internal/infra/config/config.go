package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Auth      AuthConfig      `yaml:"auth"`
	Generator GeneratorConfig `yaml:"generator"`
	Outfits   OutfitsConfig   `yaml:"outfits"`
	Wardrobe  WardrobeConfig  `yaml:"wardrobe"`
	Postgres  PostgresConfig  `yaml:"postgres"`
	Valkey    ValkeyConfig    `yaml:"valkey"`
	Storage   StorageConfig   `yaml:"storage"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address         string          `yaml:"address"`
	ReadTimeout     time.Duration   `yaml:"readTimeout"`
	WriteTimeout    time.Duration   `yaml:"writeTimeout"`
	ShutdownTimeout time.Duration   `yaml:"shutdownTimeout"`
	CORSOrigins     []string        `yaml:"corsOrigins"`
	RateLimit       RateLimitConfig `yaml:"rateLimit"`
	Retry           RetryConfig     `yaml:"retry"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// RetryConfig configures best-effort retries for idempotent requests.
type RetryConfig struct {
	Enabled     bool          `yaml:"enabled"`
	MaxAttempts int           `yaml:"maxAttempts"`
	BaseBackoff time.Duration `yaml:"baseBackoff"`
	Exclude     []string      `yaml:"exclude"`
}

// AuthConfig guards the API with HMAC-signed bearer tokens when enabled.
type AuthConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Secret   string        `yaml:"secret"`
	Issuer   string        `yaml:"issuer"`
	TokenTTL time.Duration `yaml:"tokenTtl"`
}

// GeneratorConfig tunes the outfit generator.
type GeneratorConfig struct {
	AttemptMultiplier    int             `yaml:"attemptMultiplier"`
	MinItems             int             `yaml:"minItems"`
	MaxCount             int             `yaml:"maxCount"`
	MinOutfitScore       float64         `yaml:"minOutfitScore"`
	GenerationThreshold  float64         `yaml:"generationThreshold"`
	DressChance          float64         `yaml:"dressChance"`
	OuterwearChance      float64         `yaml:"outerwearChance"`
	StandaloneTopChance  float64         `yaml:"standaloneTopChance"`
	AccessoryMin         int             `yaml:"accessoryMin"`
	AccessoryMax         int             `yaml:"accessoryMax"`
	CoreReuseRatio       float64         `yaml:"coreReuseRatio"`
	ShoeColorThreshold   float64         `yaml:"shoeColorThreshold"`
	SimilarColorDistance float64         `yaml:"similarColorDistance"`
	NonCoreOverlapLimit  float64         `yaml:"nonCoreOverlapLimit"`
	Weights              WeightsConfig   `yaml:"weights"`
	Mood                 MoodBlendConfig `yaml:"mood"`
	Seed                 uint64          `yaml:"seed"`
}

// WeightsConfig blends the outfit sub-scores.
type WeightsConfig struct {
	Color        float64 `yaml:"color"`
	Completeness float64 `yaml:"completeness"`
	Style        float64 `yaml:"style"`
	Logic        float64 `yaml:"logic"`
}

// MoodBlendConfig blends the outfit score with the mood palette fit.
type MoodBlendConfig struct {
	BaseWeight  float64 `yaml:"baseWeight"`
	ColorWeight float64 `yaml:"colorWeight"`
}

// OutfitsConfig controls the outfit service around the generator.
type OutfitsConfig struct {
	DefaultCount  int           `yaml:"defaultCount"`
	MoodBatchSize int           `yaml:"moodBatchSize"`
	CacheTTL      time.Duration `yaml:"cacheTtl"`
	TrendingLimit int           `yaml:"trendingLimit"`
	SimilarLimit  int           `yaml:"similarLimit"`
}

// WardrobeConfig controls item management.
type WardrobeConfig struct {
	MaxColorsPerItem int    `yaml:"maxColorsPerItem"`
	MaxImageBytes    int64  `yaml:"maxImageBytes"`
	ImageBaseURL     string `yaml:"imageBaseUrl"`
	DefaultPageSize  int    `yaml:"defaultPageSize"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// ValkeyConfig contains connection information for the generation cache.
type ValkeyConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Prefix  string `yaml:"prefix"`
}

// StorageConfig points at the S3-compatible bucket holding item images.
type StorageConfig struct {
	R2 R2Config `yaml:"r2"`
}

// R2Config holds Cloudflare R2 credentials.
type R2Config struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
}

// Enabled reports whether every R2 setting is present.
func (c R2Config) Enabled() bool {
	return c.Endpoint != "" && c.AccessKey != "" && c.SecretKey != "" && c.Bucket != ""
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	setString(&cfg.HTTP.Address, "HTTP_ADDRESS")
	setDuration(&cfg.HTTP.ShutdownTimeout, "HTTP_SHUTDOWN_TIMEOUT")
	if v := os.Getenv("HTTP_CORS_ORIGINS"); v != "" {
		cfg.HTTP.CORSOrigins = splitList(v)
	}
	setBool(&cfg.HTTP.RateLimit.Enabled, "HTTP_RATE_LIMIT_ENABLED")
	setInt(&cfg.HTTP.RateLimit.RequestsPerMinute, "HTTP_RATE_LIMIT_RPM")
	setInt(&cfg.HTTP.RateLimit.Burst, "HTTP_RATE_LIMIT_BURST")
	setBool(&cfg.HTTP.Retry.Enabled, "HTTP_RETRY_ENABLED")
	setInt(&cfg.HTTP.Retry.MaxAttempts, "HTTP_RETRY_MAX_ATTEMPTS")
	setDuration(&cfg.HTTP.Retry.BaseBackoff, "HTTP_RETRY_BASE_BACKOFF")

	setBool(&cfg.Auth.Enabled, "AUTH_ENABLED")
	setString(&cfg.Auth.Secret, "AUTH_SECRET")
	setString(&cfg.Auth.Issuer, "AUTH_ISSUER")

	if v := os.Getenv("GENERATOR_SEED"); v != "" {
		if parsed, err := strconv.ParseUint(v, 10, 64); err == nil {
			cfg.Generator.Seed = parsed
		}
	}
	setInt(&cfg.Generator.MaxCount, "GENERATOR_MAX_COUNT")
	setFloat(&cfg.Generator.MinOutfitScore, "GENERATOR_MIN_SCORE")

	setDuration(&cfg.Outfits.CacheTTL, "OUTFITS_CACHE_TTL")
	setInt(&cfg.Outfits.DefaultCount, "OUTFITS_DEFAULT_COUNT")

	setString(&cfg.Wardrobe.ImageBaseURL, "WARDROBE_IMAGE_BASE_URL")
	if v := os.Getenv("WARDROBE_MAX_IMAGE_BYTES"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Wardrobe.MaxImageBytes = parsed
		}
	}

	setString(&cfg.Postgres.DSN, "POSTGRES_DSN")
	if v := os.Getenv("POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Postgres.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("POSTGRES_MIN_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Postgres.MinConns = int32(parsed)
		}
	}

	setBool(&cfg.Valkey.Enabled, "VALKEY_ENABLED")
	setString(&cfg.Valkey.Addr, "VALKEY_ADDR")
	setString(&cfg.Valkey.Prefix, "VALKEY_PREFIX")

	setString(&cfg.Storage.R2.Endpoint, "R2_ENDPOINT")
	setString(&cfg.Storage.R2.AccessKey, "R2_ACCESS_KEY")
	setString(&cfg.Storage.R2.SecretKey, "R2_SECRET_KEY")
	setString(&cfg.Storage.R2.Bucket, "R2_BUCKET")
	setString(&cfg.Storage.R2.Region, "R2_REGION")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v == "1" || strings.EqualFold(v, "true")
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			*dst = parsed
		}
	}
}

func setFloat(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = parsed
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			*dst = parsed
		}
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:         ":8080",
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 120,
				Burst:             30,
			},
			Retry: RetryConfig{
				Enabled:     true,
				MaxAttempts: 3,
				BaseBackoff: 150 * time.Millisecond,
				Exclude: []string{
					"/api/v1/outfits/saved",
					"/api/v1/items",
					"/api/v1/moods",
				},
			},
		},
		Auth: AuthConfig{
			Issuer:   "outfit-studio",
			TokenTTL: 24 * time.Hour,
		},
		Generator: GeneratorConfig{
			AttemptMultiplier:    20,
			MinItems:             3,
			MaxCount:             10,
			MinOutfitScore:       40,
			GenerationThreshold:  50,
			DressChance:          0.3,
			OuterwearChance:      0.4,
			StandaloneTopChance:  0.6,
			AccessoryMin:         1,
			AccessoryMax:         3,
			CoreReuseRatio:       0.6,
			ShoeColorThreshold:   60,
			SimilarColorDistance: 50,
			NonCoreOverlapLimit:  0.5,
			Weights: WeightsConfig{
				Color:        0.25,
				Completeness: 0.35,
				Style:        0.25,
				Logic:        0.15,
			},
			Mood: MoodBlendConfig{
				BaseWeight:  0.7,
				ColorWeight: 0.3,
			},
		},
		Outfits: OutfitsConfig{
			DefaultCount:  3,
			MoodBatchSize: 5,
			CacheTTL:      24 * time.Hour,
			TrendingLimit: 5,
			SimilarLimit:  5,
		},
		Wardrobe: WardrobeConfig{
			MaxColorsPerItem: 3,
			MaxImageBytes:    5 << 20,
			ImageBaseURL:     "/media",
			DefaultPageSize:  50,
		},
		Postgres: PostgresConfig{
			MaxConns: 4,
		},
		Valkey: ValkeyConfig{
			Prefix: "outfit",
		},
		Storage: StorageConfig{
			R2: R2Config{Region: "auto"},
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if c.HTTP.Retry.Enabled {
		if c.HTTP.Retry.MaxAttempts <= 0 {
			return errors.New("http.retry.maxAttempts must be positive")
		}
		if c.HTTP.Retry.BaseBackoff <= 0 {
			return errors.New("http.retry.baseBackoff must be positive")
		}
	}
	if c.Auth.Enabled && len(c.Auth.Secret) < 16 {
		return errors.New("auth.secret must be at least 16 characters when auth is enabled")
	}

	g := c.Generator
	if g.MaxCount <= 0 {
		return errors.New("generator.maxCount must be positive")
	}
	if g.MinItems <= 0 {
		return errors.New("generator.minItems must be positive")
	}
	if g.AccessoryMin < 0 || g.AccessoryMax < g.AccessoryMin {
		return errors.New("generator.accessoryMin must be between 0 and accessoryMax")
	}
	for name, p := range map[string]float64{
		"dressChance":         g.DressChance,
		"outerwearChance":     g.OuterwearChance,
		"standaloneTopChance": g.StandaloneTopChance,
		"coreReuseRatio":      g.CoreReuseRatio,
		"nonCoreOverlapLimit": g.NonCoreOverlapLimit,
	} {
		if p < 0 || p > 1 {
			return fmt.Errorf("generator.%s must be within [0, 1]", name)
		}
	}
	if g.MinOutfitScore < 0 || g.MinOutfitScore > 100 || g.GenerationThreshold < 0 || g.GenerationThreshold > 100 {
		return errors.New("generator score thresholds must be within [0, 100]")
	}
	w := g.Weights
	if w.Color < 0 || w.Completeness < 0 || w.Style < 0 || w.Logic < 0 {
		return errors.New("generator.weights cannot be negative")
	}

	if c.Outfits.CacheTTL < 0 {
		return errors.New("outfits.cacheTtl cannot be negative")
	}
	if c.Outfits.DefaultCount > g.MaxCount {
		return errors.New("outfits.defaultCount cannot exceed generator.maxCount")
	}
	if c.Wardrobe.MaxImageBytes < 0 {
		return errors.New("wardrobe.maxImageBytes cannot be negative")
	}
	if c.Valkey.Enabled && strings.TrimSpace(c.Valkey.Addr) == "" {
		return errors.New("valkey.addr cannot be empty when valkey is enabled")
	}
	return nil
}
