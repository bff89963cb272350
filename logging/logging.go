// Copyright 2026 The httpredir Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package logging logs redirect chains executed by an httpredir.Client.
//
// New builds a human-friendly slog logger on top of tint. Install adds
// handlers to an httpredir.HandlerGroup which log each hop, each
// redirect followed and the outcome of every execution:
//
//	logger := logging.New(os.Stderr, slog.LevelInfo)
//	handlers := &httpredir.HandlerGroup{}
//	logging.Install(handlers, logger)
package logging

import (
	"io"
	"log/slog"
	"time"

	"github.com/gogama/httpredir"
	"github.com/gogama/httpredir/request"
	"github.com/lmittmann/tint"
)

// New returns a logger writing plain tint-formatted records to w.
func New(w io.Writer, level slog.Leveler) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		NoColor:    true,
	}))
}

// NewColor is like New but colors its output for a terminal.
func NewColor(w io.Writer, level slog.Leveler) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
	}))
}

// Handler returns an event handler which logs to logger.
func Handler(logger *slog.Logger) httpredir.Handler {
	if logger == nil {
		panic("httpredir/logging: nil logger")
	}
	return httpredir.HandlerFunc(func(evt httpredir.Event, e *request.Execution) {
		handle(logger, evt, e)
	})
}

// Install adds a handler logging to logger for every event it
// reports on.
func Install(g *httpredir.HandlerGroup, logger *slog.Logger) {
	h := Handler(logger)
	g.PushBack(httpredir.BeforeHop, h)
	g.PushBack(httpredir.AfterHopTimeout, h)
	g.PushBack(httpredir.BeforeRedirect, h)
	g.PushBack(httpredir.AfterExecutionEnd, h)
}

func handle(logger *slog.Logger, evt httpredir.Event, e *request.Execution) {
	id := slog.String("execution", e.ID.String())
	switch evt {
	case httpredir.BeforeHop:
		logger.Debug("hop", id,
			slog.Int("hop", e.Hop),
			slog.String("method", e.Request.Method),
			slog.String("url", e.Request.URL.String()))
	case httpredir.AfterHopTimeout:
		logger.Warn("hop timed out", id,
			slog.Int("hop", e.Hop),
			slog.String("url", urlString(e)))
	case httpredir.BeforeRedirect:
		logger.Info("redirect", id,
			slog.Int("status", e.StatusCode()),
			slog.String("from", urlString(e)),
			slog.String("to", e.Location.String()))
	case httpredir.AfterExecutionEnd:
		attrs := []any{id,
			slog.Int("status", e.StatusCode()),
			slog.String("url", urlString(e)),
			slog.Int("redirects", e.Redirects()),
			slog.Duration("duration", e.Duration()),
		}
		if e.Err != nil {
			logger.Error("execution failed", append(attrs, tint.Err(e.Err))...)
			return
		}
		logger.Info("execution done", attrs...)
	}
}

func urlString(e *request.Execution) string {
	if u := e.URL(); u != nil {
		return u.String()
	}
	return ""
}
