package shelf

import (
	"fmt"

	"github.com/koios/moonlight-shelf/internal/artwork"
	"github.com/koios/moonlight-shelf/internal/config"
	"github.com/koios/moonlight-shelf/internal/redis"
	"github.com/koios/moonlight-shelf/internal/settings"
	"go.uber.org/zap"
)

// NewProviderFromConfig wires a provider to the configured settings backend
// and artwork locations. The returned close function releases the backend.
func NewProviderFromConfig(cfg *config.Config, logger *zap.Logger) (*Provider, func() error, error) {
	reader, closeFn, err := newReader(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	resolver := artwork.NewResolver(artwork.Options{
		AppGroup:    cfg.Artwork.AppGroup,
		Placeholder: cfg.Artwork.Placeholder,
		Containers:  artwork.StaticContainer{Root: cfg.Artwork.ContainerPath},
		Bundle:      artwork.Bundle{Dir: cfg.Artwork.BundlePath},
	}, logger)

	return NewProvider(reader, resolver, logger), closeFn, nil
}

func newReader(cfg *config.Config, logger *zap.Logger) (settings.Reader, func() error, error) {
	switch cfg.Settings.Backend {
	case config.BackendFile:
		logger.Info("Reading settings from file",
			zap.String("path", cfg.Settings.File),
			zap.String("suite", cfg.Settings.Suite))
		return settings.NewFileStore(cfg.Settings.File, cfg.Settings.Suite), func() error { return nil }, nil
	case config.BackendRedis:
		store, err := redis.NewStore(cfg.Redis, cfg.Settings.Suite, logger)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown settings backend: %s", cfg.Settings.Backend)
	}
}
