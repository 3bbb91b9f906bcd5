package commands

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/guyfedwards/newsdesk/internal/config"
	"github.com/guyfedwards/newsdesk/internal/content"
	"github.com/guyfedwards/newsdesk/internal/content/memory"
	"github.com/guyfedwards/newsdesk/internal/content/miniflux"
	"github.com/guyfedwards/newsdesk/internal/content/rss"
	"github.com/guyfedwards/newsdesk/internal/content/sanity"
	"github.com/guyfedwards/newsdesk/internal/kv"
	"github.com/guyfedwards/newsdesk/internal/kv/badgerkv"
	"github.com/guyfedwards/newsdesk/internal/kv/memorykv"
	"github.com/guyfedwards/newsdesk/internal/kv/rediskv"
	"github.com/guyfedwards/newsdesk/internal/kv/sqlitekv"
)

// OpenKV opens the local store named by the storage config. Preview mode
// always keeps its state in memory.
func OpenKV(ctx context.Context, runtime *config.Runtime, log *slog.Logger) (kv.Store, error) {
	backend := runtime.Config.Storage.Backend
	if runtime.IsPreviewMode() {
		backend = config.StorageMemory
	}

	switch backend {
	case config.StorageMemory:
		return memorykv.New(), nil
	case config.StorageBadger:
		return badgerkv.New(runtime.StoragePath())
	case config.StorageSQLite:
		dir, name := filepath.Split(runtime.StoragePath())
		return sqlitekv.New(dir, name)
	case config.StorageRedis:
		url := runtime.Config.Storage.RedisURL
		if url == "" {
			return nil, fmt.Errorf("commands.OpenKV: redis storage needs storage.redisUrl or REDIS_URL")
		}
		return rediskv.New(ctx, url, rediskv.DefaultPrefix)
	default:
		return nil, fmt.Errorf("commands.OpenKV: %w: %q", config.ErrUnknownStorage, backend)
	}
}

// OpenSource builds the configured content source. RSS feeds are fetched
// once here; feeds that fail are logged and left out.
func OpenSource(ctx context.Context, runtime *config.Runtime, log *slog.Logger) (content.Source, error) {
	switch runtime.ContentSource() {
	case config.SourceSanity:
		client, err := runtime.HTTPClient()
		if err != nil {
			return nil, fmt.Errorf("commands.OpenSource: %w", err)
		}
		s := runtime.Config.Sanity
		return sanity.New(sanity.Config{
			ProjectID:         s.ProjectID,
			Dataset:           s.Dataset,
			APIVersion:        s.APIVersion,
			Token:             s.Token,
			UseCDN:            s.UseCDN,
			RequestsPerSecond: s.RequestsPerSecond,
			HTTPClient:        client,
			UserAgent:         runtime.UserAgent(),
		})
	case config.SourceMiniflux:
		m := runtime.Config.Miniflux
		if m == nil || m.Host == "" {
			return nil, fmt.Errorf("commands.OpenSource: miniflux source needs miniflux.host")
		}
		return miniflux.New(m.Host, m.APIKey), nil
	case config.SourceRSS:
		var feeds []rss.Feed
		for _, f := range runtime.GetFeeds() {
			feeds = append(feeds, rss.Feed{URL: f.URL, Name: f.Name, Category: f.Category})
		}
		src := rss.New(feeds, runtime.UserAgent(), log)
		if err := src.Refresh(ctx); err != nil {
			log.Warn("some feeds could not be fetched", "error", err)
		}
		return src, nil
	case config.SourceMock:
		return memory.Mock(time.Now()), nil
	default:
		return nil, fmt.Errorf("commands.OpenSource: %w: %q", config.ErrUnknownSource, runtime.ContentSource())
	}
}
