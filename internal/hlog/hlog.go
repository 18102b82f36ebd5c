// Package hlog is the structured logging surface every host-boundary error
// and pipeline milestone goes through. It is a thin wrapper over log15,
// matching the context-key-value, leveled-Logger idiom go-ethereum's own
// internal log package uses (that package is itself a fork of log15, so
// this goes to the upstream instead of re-deriving the fork). Every record
// carries its call stack, captured via log15's CallerStackHandler, which is
// itself built on github.com/go-stack/stack — the caller-frame library the
// geth lineage pairs with log15.
package hlog

import (
	"os"

	"github.com/inconshreveable/log15"
)

// Logger is the interface the rest of the module depends on, so call sites
// never import log15 directly.
type Logger = log15.Logger

var root Logger

func init() {
	root = log15.New()
	root.SetHandler(withCaller(log15.StreamHandler(os.Stderr, log15.TerminalFormat())))
}

// New returns a child logger carrying ctx as additional key/value pairs on
// every record it emits.
func New(ctx ...interface{}) Logger { return root.New(ctx...) }

// SetVerbose switches the root logger between info and debug level.
func SetVerbose(v bool) {
	lvl := log15.LvlInfo
	if v {
		lvl = log15.LvlDebug
	}
	root.SetHandler(log15.LvlFilterHandler(lvl, withCaller(log15.StreamHandler(os.Stderr, log15.TerminalFormat()))))
}

// withCaller annotates every record with its call stack, formatted under a
// single "stack" key, before handing it to h.
func withCaller(h log15.Handler) log15.Handler {
	return log15.CallerStackHandler("%+v", h)
}
