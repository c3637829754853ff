package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/timemap/cardstack/internal/app"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	opts, err := parseFlags(args)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "cardstack: %v\n", err)
		return 2
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "cardstack: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags(args []string) (app.Options, error) {
	var opts app.Options
	flagSet := pflag.NewFlagSet("cardstack", pflag.ContinueOnError)
	flagSet.StringVarP(&opts.ConfigPath, "config", "c", "", "deployment config path (.toml, .yaml or .jsonc; default ~/.config/cardstack/config.toml)")
	flagSet.StringVarP(&opts.DataPath, "data", "d", "", "read events from a local JSON bundle instead of SERVER_ROOT")
	flagSet.DurationVar(&opts.PollEvery, "poll", 0, "reload interval, e.g. 30s (default: load once)")
	flagSet.StringVar(&opts.LogPath, "log", "", "append logs to this file")
	flagSet.StringVar(&opts.Language, "lang", "", "interface language, e.g. es-MX or en-US")
	flagSet.BoolVar(&opts.Debug, "debug", false, "log at debug level")

	if err := flagSet.Parse(args); err != nil {
		return app.Options{}, err
	}
	if rest := flagSet.Args(); len(rest) > 0 {
		return app.Options{}, fmt.Errorf("unexpected argument: %s", rest[0])
	}
	if opts.PollEvery < 0 {
		return app.Options{}, fmt.Errorf("--poll must not be negative")
	}
	if opts.PollEvery > 0 && opts.PollEvery < time.Second {
		opts.PollEvery = time.Second
	}
	return opts, nil
}
