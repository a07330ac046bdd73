package library

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/suryansh-23/subspot/internal/cache"
	"github.com/suryansh-23/subspot/internal/config"
	"github.com/suryansh-23/subspot/internal/logging"
	"github.com/suryansh-23/subspot/internal/subtitle"
	"golang.org/x/sync/errgroup"
)

// File is the decode result of one configured source. Err is set when the
// file could not be read or decoded; the other files are unaffected.
type File struct {
	Subtitle string
	Media    string
	Records  []subtitle.Record
	Warnings int
	Cached   bool
	Err      error
}

// Options controls how sources are loaded.
type Options struct {
	Parallelism int
	Cache       *cache.Cache
	Logger      *slog.Logger
}

// OptionsFromConfig derives load options from the library section.
func OptionsFromConfig(cfg config.Library, c *cache.Cache, logger *slog.Logger) Options {
	return Options{Parallelism: cfg.Parallelism, Cache: c, Logger: logger}
}

// NewCache builds the decoded-file cache described by the library section.
func NewCache(cfg config.Library) *cache.Cache {
	return cache.New(cfg.CacheEntries, time.Duration(cfg.CacheTTLSeconds)*time.Second)
}

// Load decodes every source. Results keep the order of sources. The returned
// error is only non-nil when ctx is cancelled.
func Load(ctx context.Context, sources []config.Source, opts Options) ([]File, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	limit := opts.Parallelism
	if limit < 1 {
		limit = 1
	}

	files := make([]File, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, src := range sources {
		files[i] = File{Subtitle: src.Subtitle, Media: src.Media}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			files[i] = loadOne(src, opts.Cache, logger)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return files, err
	}
	return files, nil
}

func loadOne(src config.Source, c *cache.Cache, logger *slog.Logger) File {
	file := File{Subtitle: src.Subtitle, Media: src.Media}
	info, err := os.Stat(src.Subtitle)
	if err != nil {
		file.Err = fmt.Errorf("decode %s: %w", src.Subtitle, err)
		logger.Warn("subtitle unavailable", "file", src.Subtitle, "error", err)
		return file
	}
	if info.IsDir() {
		file.Err = fmt.Errorf("decode %s: is a directory", src.Subtitle)
		return file
	}

	if entry, ok := c.Get(src.Subtitle); ok && entry.Fresh(info.ModTime(), info.Size()) {
		file.Records = entry.Records
		file.Cached = true
		logger.Debug("subtitle cache hit", "file", src.Subtitle, "records", len(entry.Records))
		return file
	}

	start := time.Now()
	records, err := subtitle.DecodeFile(src.Subtitle, subtitle.WithWarningHandler(func(w error) {
		file.Warnings++
		attrs := []any{"file", src.Subtitle, "error", w}
		var fe *subtitle.FieldError
		if errors.As(w, &fe) {
			attrs = append(attrs, "line", fe.Line)
		}
		logger.Warn("subtitle warning", attrs...)
	}))
	if err != nil {
		c.Invalidate(src.Subtitle)
		file.Err = err
		logger.Warn("subtitle decode failed", "file", src.Subtitle, "error", err)
		return file
	}
	file.Records = records
	logger.Debug("subtitle decoded",
		"file", src.Subtitle,
		"records", len(records),
		"warnings", file.Warnings,
		"elapsed", time.Since(start))

	c.Put(cache.Entry{
		Path:    src.Subtitle,
		ModTime: info.ModTime(),
		Size:    info.Size(),
		Records: records,
	})
	return file
}

// Failed returns the number of files that carry an error.
func Failed(files []File) int {
	n := 0
	for _, f := range files {
		if f.Err != nil {
			n++
		}
	}
	return n
}
