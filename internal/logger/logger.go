// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger wraps zerolog for the sync daemon and the sync server.
// Sync components tag entries with [FieldEntity] and [FieldRecordID]; the
// HTTP layer attaches a request logger carrying [FieldTraceID] to the
// context, retrieved with [FromContext] or [FromRequest].
package logger

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger embeds zerolog.Logger, so the zerolog event API is available
// directly.
type Logger struct {
	zerolog.Logger
}

// Field names shared by the sync components.
const (
	FieldEntity   = "entity"
	FieldRecordID = "record_id"
	FieldTraceID  = "trace_id"
)

// NewLogger returns a JSON logger writing to stdout. Every entry carries
// role ("wealthwise-sync-server", "wealthwise-syncd"), a "ts" timestamp and
// the calling function under "func"; all levels down to debug are emitted.
func NewLogger(role string) *Logger {
	return newLogger(role, os.Stdout)
}

// NewClientLogger is like [NewLogger] but appends to a "<role>.log" file next
// to the executable, so a daemon started from a desktop session keeps its
// logs. It falls back to stdout when the file cannot be opened.
func NewClientLogger(role string) *Logger {
	execPath, _ := os.Executable()
	return newFileLogger(role, filepath.Join(filepath.Dir(execPath), role+".log"))
}

func newFileLogger(role, logPath string) *Logger {
	logFile, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return newLogger(role, os.Stdout)
	}
	return newLogger(role, logFile)
}

func newLogger(role string, out io.Writer) *Logger {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	zerolog.CallerFieldName = "func"
	zerolog.CallerMarshalFunc = func(pc uintptr, _ string, _ int) string {
		return runtime.FuncForPC(pc).Name()
	}

	return &Logger{zerolog.New(out).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()}
}

// Nop returns a *Logger that discards everything. Used by tests.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger returns a new *Logger that inherits all fields of the
// receiver. The child logger can be enriched with additional context fields
// without affecting the parent logger.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

// ForEntity returns a child logger tagged with the entity type the caller
// syncs.
func (l *Logger) ForEntity(entity fmt.Stringer) *Logger {
	return &Logger{l.With().Str(FieldEntity, entity.String()).Logger()}
}

// FromRequest returns the request logger attached by the trace id
// middleware.
func FromRequest(r *http.Request) *Logger {
	return &Logger{*log.Ctx(r.Context())}
}

// FromContext extracts the zerolog.Logger stored in ctx by zerolog's log.Ctx
// helper and returns it as a *Logger.
//
// If no logger has been attached to ctx, zerolog returns its global logger,
// so this function never returns nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}
