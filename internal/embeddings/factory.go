package embeddings

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// FactoryConfig controls backend construction.
type FactoryConfig struct {
	// ModelsDir is the root directory holding vector tables, laid out as
	// fasttext/<lang>.vec and nlpl/<lang>/model.txt.
	ModelsDir string `yaml:"models_dir" mapstructure:"models_dir"`

	// DefaultVariant is substituted when Create is asked for an empty
	// variant. Empty DefaultVariant means VariantFastText.
	DefaultVariant Variant `yaml:"default_variant" mapstructure:"default_variant"`

	// CacheEnabled wraps constructed backends in a Redis lookup cache.
	CacheEnabled bool `yaml:"cache_enabled" mapstructure:"cache_enabled"`

	// CacheURL is the Redis connection URL, e.g. redis://localhost:6379/0.
	CacheURL string `yaml:"cache_url" mapstructure:"cache_url"`

	// CacheTTL is the lifetime of cached lookups.
	CacheTTL time.Duration `yaml:"cache_ttl" mapstructure:"cache_ttl"`
}

// Factory builds file-backed embedding backends. It owns the variant
// dispatch: the switch in Create is the single place a new backend family
// has to be added.
type Factory struct {
	config FactoryConfig
	logger *zap.Logger
}

// NewFactory creates a backend factory.
func NewFactory(config FactoryConfig, logger *zap.Logger) *Factory {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Factory{config: config, logger: logger}
}

// Create constructs the backend for a (language, variant) pair. An empty
// variant resolves to the factory's configured default. An unsupported
// variant yields an *InvalidVariantError; backend loading failures are
// passed through unchanged.
func (f *Factory) Create(language string, variant Variant) (Embedder, error) {
	if variant == "" {
		variant = f.config.DefaultVariant
		if variant == "" {
			variant = VariantFastText
		}
	}

	var (
		emb Embedder
		err error
	)
	switch variant {
	case VariantFastText:
		emb, err = NewFastTextEmbedder(f.config.ModelsDir, language, f.logger)
	case VariantNLPL:
		emb, err = NewNLPLEmbedder(f.config.ModelsDir, language, f.logger)
	default:
		return nil, &InvalidVariantError{Variant: variant}
	}
	if err != nil {
		return nil, err
	}

	if f.config.CacheEnabled {
		if cached := f.wrapInCache(emb, language, variant); cached != nil {
			return cached, nil
		}
	}
	return emb, nil
}

// wrapInCache attaches a Redis lookup cache to the backend. An unreachable
// Redis disables caching rather than failing construction.
func (f *Factory) wrapInCache(inner Embedder, language string, variant Variant) Embedder {
	opts, err := redis.ParseURL(f.config.CacheURL)
	if err != nil {
		f.logger.Warn("Invalid cache URL, disabling lookup cache", zap.Error(err))
		return nil
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		f.logger.Warn("Redis connection failed, disabling lookup cache", zap.Error(err))
		return nil
	}

	ttl := f.config.CacheTTL
	if ttl <= 0 {
		ttl = 6 * time.Hour
	}
	return NewCachedEmbedder(inner, client, CacheOptions{
		KeyPrefix: "cltk:emb:" + language + ":" + string(variant),
		TTL:       ttl,
	}, f.logger)
}

var _ BackendFactory = (*Factory)(nil)
