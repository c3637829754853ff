// Package app provides the orchestration layer for cardstack.
//
// # Overview
//
// This package wires together configuration, data loading, state
// management and the UI. It is the composition root: the application
// store is built here exactly once and handed to the UI by pointer.
//
// # Startup
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       │
//	       ├─────> newLogger()              slog text handler or discard
//	       ├─────> config.LoadDeployment()  TOML, YAML or JSONC file
//	       ├─────> config.Initialize()      merge override onto defaults
//	       ├─────> newFetcher()             bundle file or HTTP client
//	       ├─────> refresh()                first load into state.Store
//	       ├─────> StartPoller()            only with a poll interval
//	       └─────> ui.Run()                 TUI (blocks)
//
// # Polling Behavior
//
// Without a poll interval the domain is loaded once. With one, a goroutine
// reloads it on each tick and records failures in the store; after
// consecutive failures the interval doubles up to maxBackoff, and the
// previous data stays visible.
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - unreadable or malformed deployment file
//   - invalid server root
//   - unwritable log file
//
// Recoverable errors (logged and shown in the status bar):
//   - domain load failures, initial or periodic
//
// A missing deployment file is not an error; the defaults apply.
package app
