// Copyright 2024 The gpssvm Authors
// This file is part of gpssvm.
//
// gpssvm is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// gpssvm is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with gpssvm. If not, see <http://www.gnu.org/licenses/>.

// Package log is a small leveled, key/value logger in the teacher's idiom:
// a message plus an even list of context pairs, rendered either as
// colorized terminal text or as plain text depending on whether the
// destination is a TTY.
package log

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/go-stack/stack"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// Level is a logging severity, ordered from most to least verbose.
type Level int

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelCrit
)

var levelNames = [...]string{
	LevelTrace: "TRACE",
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO ",
	LevelWarn:  "WARN ",
	LevelError: "ERROR",
	LevelCrit:  "CRIT ",
}

func (l Level) String() string {
	if int(l) < 0 || int(l) >= len(levelNames) {
		return "?????"
	}
	return levelNames[l]
}

var levelColors = [...]*color.Color{
	LevelTrace: color.New(color.FgWhite),
	LevelDebug: color.New(color.FgBlue),
	LevelInfo:  color.New(color.FgGreen),
	LevelWarn:  color.New(color.FgYellow),
	LevelError: color.New(color.FgRed),
	LevelCrit:  color.New(color.FgRed, color.Bold),
}

// Logger emits leveled, key/value-annotated messages. Context passed to
// New is prepended to every subsequent call's own context.
type Logger struct {
	h       *Handler
	context []any
}

// Handler owns the destination writer, minimum level, and TTY detection
// that decide how a Logger's calls are rendered.
type Handler struct {
	mu       sync.Mutex
	w        io.Writer
	colorize bool
	minLevel Level
}

// NewHandler wraps w. Colorized output is enabled automatically when w is a
// terminal (detected via go-isatty), matching the teacher's TTY-aware
// handler selection; w is wrapped with go-colorable so ANSI codes render
// correctly regardless of platform.
func NewHandler(w io.Writer, minLevel Level) *Handler {
	h := &Handler{w: w, minLevel: minLevel}
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		h.colorize = true
		h.w = colorable.NewColorable(f)
	}
	return h
}

// log renders one record. call is the go-stack frame of the Logger method
// the caller invoked (Trace/Debug/.../Crit), giving every line a
// caller=file:line field the way the teacher's log15-style logger attaches
// call-site context to every Record.
func (h *Handler) log(level Level, msg string, ctx []any, call stack.Call) {
	if level < h.minLevel {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	ts := time.Now().Format("15:04:05.000")
	if h.colorize {
		levelColors[level].Fprintf(h.w, "%s[%s] %-40s caller=%v", ts, level, msg, call)
	} else {
		fmt.Fprintf(h.w, "%s[%s] %-40s caller=%v", ts, level, msg, call)
	}
	for i := 0; i+1 < len(ctx); i += 2 {
		fmt.Fprintf(h.w, " %v=%v", ctx[i], ctx[i+1])
	}
	fmt.Fprintln(h.w)
}

var root = &Logger{h: NewHandler(os.Stderr, LevelInfo)}

// Root returns the package-level default logger.
func Root() *Logger { return root }

// SetOutput reconfigures the root logger's destination and minimum level.
func SetOutput(w io.Writer, minLevel Level) {
	root.h = NewHandler(w, minLevel)
}

// New returns a child logger with ctx permanently prepended to every call.
func New(ctx ...any) *Logger {
	return &Logger{h: root.h, context: ctx}
}

func (l *Logger) with(ctx []any) []any {
	if len(l.context) == 0 {
		return ctx
	}
	return append(append([]any{}, l.context...), ctx...)
}

// callerSkip skips the Logger method's own frame (0 identifies the caller of
// Caller itself, i.e. the Logger method), landing one frame further out on
// the application code that invoked Trace/Debug/.../Crit/Tracef.
const callerSkip = 1

func (l *Logger) Trace(msg string, ctx ...any) {
	l.h.log(LevelTrace, msg, l.with(ctx), stack.Caller(callerSkip))
}
func (l *Logger) Debug(msg string, ctx ...any) {
	l.h.log(LevelDebug, msg, l.with(ctx), stack.Caller(callerSkip))
}
func (l *Logger) Info(msg string, ctx ...any) {
	l.h.log(LevelInfo, msg, l.with(ctx), stack.Caller(callerSkip))
}
func (l *Logger) Warn(msg string, ctx ...any) {
	l.h.log(LevelWarn, msg, l.with(ctx), stack.Caller(callerSkip))
}
func (l *Logger) Error(msg string, ctx ...any) {
	l.h.log(LevelError, msg, l.with(ctx), stack.Caller(callerSkip))
}

// Crit logs at LevelCrit and terminates the process, matching the
// teacher's convention that Crit is fatal.
func (l *Logger) Crit(msg string, ctx ...any) {
	l.h.log(LevelCrit, msg, l.with(ctx), stack.Caller(callerSkip))
	os.Exit(1)
}

// Tracef implements vm.TraceLogger by rendering a printf-style trace line
// at LevelTrace with no additional key/value context. It captures its own
// call site directly rather than delegating to Trace, so caller= still
// points at the vm package code that emitted the trace, not at this
// adapter method.
func (l *Logger) Tracef(format string, args ...any) {
	l.h.log(LevelTrace, fmt.Sprintf(format, args...), l.context, stack.Caller(callerSkip))
}
