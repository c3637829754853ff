package main

import (
	"errors"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func TestParseFlags(t *testing.T) {
	opts, err := parseFlags([]string{"-c", "site.yaml", "--data", "bundle.json", "--poll", "30s", "--lang", "en-US", "--debug"})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if opts.ConfigPath != "site.yaml" || opts.DataPath != "bundle.json" {
		t.Fatalf("paths = %q, %q", opts.ConfigPath, opts.DataPath)
	}
	if opts.PollEvery != 30*time.Second || opts.Language != "en-US" || !opts.Debug {
		t.Fatalf("opts = %+v", opts)
	}
}

func TestParseFlags_ClampsAndRejects(t *testing.T) {
	opts, err := parseFlags([]string{"--poll", "10ms"})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if opts.PollEvery != time.Second {
		t.Fatalf("PollEvery = %v, want 1s floor", opts.PollEvery)
	}

	if _, err := parseFlags([]string{"--poll", "-1s"}); err == nil {
		t.Fatalf("negative poll accepted")
	}
	if _, err := parseFlags([]string{"extra"}); err == nil {
		t.Fatalf("positional argument accepted")
	}
	if _, err := parseFlags([]string{"--help"}); !errors.Is(err, pflag.ErrHelp) {
		t.Fatalf("--help err = %v, want pflag.ErrHelp", err)
	}
}
