package pipeline

import (
	"context"
	"errors"
	"log/slog"

	"ffstrip/internal/catalog"
	"ffstrip/internal/config"
	"ffstrip/internal/logging"
	"ffstrip/internal/media/ffprobe"
	"ffstrip/internal/media/remux"
	"ffstrip/internal/probecache"
)

// ffprobeInspector runs ffprobe, consulting the probe cache first when one
// is attached.
type ffprobeInspector struct {
	binary string
	cache  *probecache.Store
	logger *slog.Logger
}

// NewInspector builds the production inspector. When the probe cache is
// enabled but unavailable (locked by a concurrent run, unreadable path),
// the inspector degrades to plain ffprobe invocations with a warning.
// Close releases the cache, if any.
func NewInspector(cfg *config.Config, logger *slog.Logger) (Inspector, func() error) {
	logger = logging.NewComponentLogger(logger, "inspect")

	var cache *probecache.Store
	if cfg.ProbeCache.Enabled {
		store, err := probecache.Open(cfg.ProbeCache.Path, logger)
		switch {
		case err == nil:
			cache = store
		case errors.Is(err, probecache.ErrLocked):
			logger.Warn("probe cache in use by another run, continuing without it")
		default:
			logger.Warn("probe cache unavailable", logging.Error(err))
		}
	}

	inspector := &ffprobeInspector{binary: cfg.FFprobeBinary(), cache: cache, logger: logger}
	closeFn := func() error {
		if cache != nil {
			return cache.Close()
		}
		return nil
	}
	return inspector, closeFn
}

func (i *ffprobeInspector) Inspect(ctx context.Context, path string) ([]catalog.Track, error) {
	if i.cache != nil {
		if key, err := probecache.KeyFor(path); err == nil {
			if raw, found, err := i.cache.Lookup(ctx, key); err == nil && found {
				if result, err := ffprobe.Parse(raw); err == nil {
					return result.Tracks(), nil
				}
				// Corrupt cache entry; fall through to a live probe.
			}
		}
	}

	result, err := ffprobe.Inspect(ctx, i.binary, path)
	if err != nil {
		return nil, err
	}

	if i.cache != nil {
		if key, err := probecache.KeyFor(path); err == nil {
			if err := i.cache.Put(ctx, key, result.RawJSON()); err != nil {
				i.logger.Warn("probe cache write failed", logging.Error(err))
			}
		}
	}
	return result.Tracks(), nil
}

// ffmpegRemuxer shells out to ffmpeg.
type ffmpegRemuxer struct {
	binary string
}

// NewRemuxer builds the production remuxer.
func NewRemuxer(cfg *config.Config) Remuxer {
	return &ffmpegRemuxer{binary: cfg.FFmpegBinary()}
}

func (r *ffmpegRemuxer) Remux(ctx context.Context, plan remux.Plan) error {
	return remux.Execute(ctx, r.binary, plan)
}
