// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package emitter is the thin progress/error event sink the pipeline
// executor reports to. spec.md treats the real structured-logging/emitter
// UX as an external collaborator; this is the minimal concrete shape that
// lets the module build and run end to end.
package emitter

import "github.com/gizzahub/lpci-go/internal/lpclog"

// Event is a single progress notification.
type Event struct {
	Job    string
	Series string
	Arch   string
	Stage  string // e.g. "launch", "install-packages", "run", "copy-out"
	Detail string
}

// Emitter receives progress and error notifications from the executor.
type Emitter interface {
	Progress(Event)
	Error(job string, err error)
}

// LogEmitter reports events to a structured logger.
type LogEmitter struct {
	Logger *lpclog.Logger
}

// NewLogEmitter returns an Emitter backed by the given logger.
func NewLogEmitter(l *lpclog.Logger) *LogEmitter {
	return &LogEmitter{Logger: l}
}

func (e *LogEmitter) Progress(ev Event) {
	e.Logger.Sugar().Infow(ev.Stage,
		"job", ev.Job, "stage", ev.Stage, "series", ev.Series, "arch", ev.Arch, "detail", ev.Detail)
}

func (e *LogEmitter) Error(job string, err error) {
	e.Logger.Sugar().Errorw("job failed", "job", job, "error", err)
}
