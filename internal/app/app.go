package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/timemap/cardstack/internal/config"
	"github.com/timemap/cardstack/internal/i18n"
	"github.com/timemap/cardstack/internal/state"
	"github.com/timemap/cardstack/internal/timemap"
	"github.com/timemap/cardstack/internal/ui"
)

// Options configure the cardstack application.
type Options struct {
	ConfigPath string        // empty uses ~/.config/cardstack/config.toml
	DataPath   string        // local bundle; empty fetches from SERVER_ROOT
	PollEvery  time.Duration // zero loads the data once
	LogPath    string        // empty discards logs
	Language   string        // overrides the configured language
	Debug      bool
}

// Run boots the cardstack TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	logger, closeLog, err := newLogger(opts.LogPath, opts.Debug)
	if err != nil {
		return err
	}
	defer closeLog()

	dep, err := config.LoadDeployment(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load deployment config: %w", err)
	}

	env := terminalEnv(opts.Language)
	appStore := config.Initialize(dep.Store, env, logger)
	if opts.Language != "" {
		appStore = appStore.With("app.language", opts.Language)
	}
	messages := i18n.For(appStore.Language())
	logger.Info("configuration loaded",
		"language", messages.Locale,
		"template", appStore.CardTemplate(),
		"sources", appStore.Features().UseSources,
	)

	fetcher, err := newFetcher(dep, opts.DataPath)
	if err != nil {
		return fmt.Errorf("init data source: %w", err)
	}

	store := &state.Store{}

	// Populate the store before the UI starts so the first frame has data.
	refresh(ctx, store, fetcher, logger)
	if opts.PollEvery > 0 {
		StartPoller(ctx, store, fetcher, opts.PollEvery, logger)
	}

	title := dep.DisplayTitle
	if title == "" {
		title = dep.Title
	}
	return ui.Run(ui.Options{
		Context:  ctx,
		Store:    store,
		AppStore: appStore,
		Messages: messages,
		Logger:   logger,
		Title:    title,
		OnSelect: func(ev timemap.Event) {
			logger.Info("event selected", "id", ev.ID, "date", ev.Date, "location", ev.Location)
		},
	})
}

// newFetcher picks the data source: a local bundle when path is set,
// otherwise the deployment's server endpoints.
func newFetcher(dep config.Deployment, path string) (timemap.Fetcher, error) {
	if strings.TrimSpace(path) != "" {
		return &timemap.BundleFile{Path: path}, nil
	}
	return timemap.NewClient(dep.ServerRoot, timemap.Endpoints{
		Events:       dep.EventsExt,
		Associations: dep.AssociationsExt,
		Sources:      dep.SourcesExt,
	})
}

// terminalEnv describes the client for the default tree.
func terminalEnv(language string) config.Env {
	env := config.Env{Now: time.Now(), Language: language}
	if _, height, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		env.ScreenHeight = height
	}
	return env
}

// newLogger writes text logs to path. The TUI owns the terminal, so without
// a path logs are discarded.
func newLogger(path string, debug bool) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	options := &slog.HandlerOptions{Level: level}
	if strings.TrimSpace(path) == "" {
		return slog.New(slog.NewTextHandler(io.Discard, options)), func() {}, nil
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return slog.New(slog.NewTextHandler(file, options)), func() { _ = file.Close() }, nil
}
