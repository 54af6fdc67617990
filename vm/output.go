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

package vm

import (
	"bufio"
	"fmt"
	"io"
)

// OutputSink is the VM's abstract, line-oriented output channel (spec §6).
// Print and PrintClock write to it; nothing else does.
type OutputSink interface {
	Print(line string)
}

// TraceLogger is the VM's logging sink (spec §6), kept separate from
// OutputSink. It is a narrow interface so that package vm does not import
// package log directly — callers wire in whatever structured logger they
// like (see package log for the one this repo ships).
type TraceLogger interface {
	Tracef(format string, args ...any)
}

// WriterSink adapts an io.Writer (e.g. os.Stdout or a bytes.Buffer in tests)
// to OutputSink.
type WriterSink struct {
	w *bufio.Writer
}

// NewWriterSink wraps w as a buffered OutputSink. Flush must be called
// (or deferred) by the owner once the VM run completes.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: bufio.NewWriter(w)}
}

// Print writes line followed by a newline.
func (s *WriterSink) Print(line string) {
	fmt.Fprintln(s.w, line)
}

// Flush flushes any buffered output.
func (s *WriterSink) Flush() error {
	return s.w.Flush()
}

// discardLogger is a no-op TraceLogger, used when the caller does not want
// trace output.
type discardLogger struct{}

func (discardLogger) Tracef(string, ...any) {}

// DiscardLogger returns a TraceLogger that drops every trace line.
func DiscardLogger() TraceLogger { return discardLogger{} }

// discardSink is a no-op OutputSink.
type discardSink struct{}

func (discardSink) Print(string) {}

// DiscardSink returns an OutputSink that drops every line.
func DiscardSink() OutputSink { return discardSink{} }
