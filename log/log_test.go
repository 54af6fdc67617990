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

package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := &Logger{h: NewHandler(&buf, LevelWarn)}

	l.Debug("should be dropped")
	if buf.Len() != 0 {
		t.Fatalf("Debug() at LevelWarn threshold wrote %q; want nothing", buf.String())
	}

	l.Warn("should appear", "key", "value")
	out := buf.String()
	if !strings.Contains(out, "should appear") {
		t.Errorf("output = %q; want message text", out)
	}
	if !strings.Contains(out, "key=value") {
		t.Errorf("output = %q; want key=value context", out)
	}
	if !strings.Contains(out, "WARN") {
		t.Errorf("output = %q; want level tag", out)
	}
}

func TestNewChildLoggerPrependsContext(t *testing.T) {
	var buf bytes.Buffer
	child := &Logger{h: NewHandler(&buf, LevelTrace), context: []any{"component", "vm"}}

	child.Info("ready")
	out := buf.String()
	if !strings.Contains(out, "component=vm") {
		t.Errorf("output = %q; want inherited context", out)
	}
}

func TestTracefImplementsVMTraceLogger(t *testing.T) {
	var buf bytes.Buffer
	l := &Logger{h: NewHandler(&buf, LevelTrace)}

	l.Tracef("Woke up at %d", 42)
	if !strings.Contains(buf.String(), "Woke up at 42") {
		t.Errorf("output = %q; want formatted trace line", buf.String())
	}
}

func TestLoggerIncludesCallerLocation(t *testing.T) {
	var buf bytes.Buffer
	l := &Logger{h: NewHandler(&buf, LevelInfo)}

	l.Info("hello")
	out := buf.String()
	if !strings.Contains(out, "caller=log_test.go:") {
		t.Errorf("output = %q; want caller=log_test.go:<line>", out)
	}
}

func TestDumpProducesNonEmptyOutput(t *testing.T) {
	out := Dump(struct{ A, B int }{A: 1, B: 2})
	if !strings.Contains(out, "1") || !strings.Contains(out, "2") {
		t.Errorf("Dump() = %q; want field values present", out)
	}
}
