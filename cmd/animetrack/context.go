package main

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"sync"

	"animetracker/internal/catalog"
	"animetracker/internal/catalog/anilist"
	"animetracker/internal/catalog/cache"
	"animetracker/internal/config"
	"animetracker/internal/identity"
	"animetracker/internal/watchlist"
)

// app is everything a command needs, built once per invocation.
type app struct {
	cfg       *config.ClientConfig
	logger    *slog.Logger
	lookup    *catalog.Lookup
	session   *identity.Session
	watchlist *watchlist.Container

	closers []func()
}

type commandContext struct {
	configFlag *string
	userFlag   *string

	appOnce sync.Once
	app     *app
	appErr  error
}

func newCommandContext(configFlag, userFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		userFlag:   userFlag,
	}
}

func (c *commandContext) ensureApp(ctx context.Context) (*app, error) {
	c.appOnce.Do(func() {
		c.app, c.appErr = c.build(ctx)
	})
	return c.app, c.appErr
}

func (c *commandContext) build(ctx context.Context) (*app, error) {
	var path string
	if c.configFlag != nil {
		path = strings.TrimSpace(*c.configFlag)
	}
	cfg, err := config.LoadClient(path)
	if err != nil {
		return nil, err
	}
	if c.userFlag != nil && strings.TrimSpace(*c.userFlag) != "" {
		cfg.UserID = strings.TrimSpace(*c.userFlag)
	}

	logger := setupLogger(cfg.LogLevel)
	a := &app{cfg: cfg, logger: logger}

	var source catalog.Source = anilist.New(anilist.Config{
		BaseURL:        cfg.AniList.BaseURL,
		PageSize:       cfg.AniList.PageSize,
		Timeout:        cfg.AniList.Timeout,
		MaxAttempts:    cfg.AniList.Retry.MaxAttempts,
		InitialBackoff: cfg.AniList.Retry.InitialBackoff,
		MaxBackoff:     cfg.AniList.Retry.MaxBackoff,
	}, logger)

	if cfg.Redis.Enabled {
		rdb, err := cache.Connect(ctx, cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			logger.Warn("catalog cache unavailable, querying anilist directly", "error", err)
		} else {
			cached := cache.New(source, rdb, cfg.Redis.TTL, logger)
			a.closers = append(a.closers, func() { _ = cached.Close() })
			source = cached
		}
	}
	a.lookup = catalog.NewLookup(source, logger)

	// Sign in before the container subscribes; commands decide when the
	// list is fetched.
	a.session = identity.NewSession()
	if cfg.UserID != "" {
		if err := a.session.SignIn(identity.Identity{UserID: cfg.UserID, Token: cfg.Token}); err != nil {
			return nil, err
		}
	}

	api := watchlist.NewClient(cfg.APIURL, cfg.Timeout, logger)
	a.watchlist = watchlist.NewContainer(api, a.session, logger)
	a.closers = append(a.closers, a.watchlist.Close)

	return a, nil
}

func (c *commandContext) close() {
	if c.app == nil {
		return
	}
	for i := len(c.app.closers) - 1; i >= 0; i-- {
		c.app.closers[i]()
	}
}

// syncWatchlist loads the signed-in user's list for commands that only
// annotate or look up entries. A failed fetch is logged and leaves the list
// empty.
func (a *app) syncWatchlist(ctx context.Context) {
	a.watchlist.Load(ctx, a.session.Current())
}

// identity returns the signed-in user or errSignInRequired.
func (a *app) identity() (identity.Identity, error) {
	id := a.session.Current()
	if id.Guest() {
		return id, errSignInRequired
	}
	return id, nil
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelWarn
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewTextHandler(os.Stderr, opts)
	return slog.New(handler)
}
