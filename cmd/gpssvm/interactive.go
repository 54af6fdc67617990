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

package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"

	"github.com/probecore/gpssvm/log"
	"github.com/probecore/gpssvm/vm"
)

// runInteractive drives interp one top-level instruction at a time from a
// readline console, in the teacher's js-console vein (cmd/gprobe's
// interactive REPL wraps peterh/liner the same way, trading the JS runtime
// for this VM's own Step).
func runInteractive(interp *vm.Interpreter, logger *log.Logger) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	fmt.Println("gpssvm interactive console. Commands: step (s), continue (c), dump (d), quit (q)")
	for {
		cmd, err := line.Prompt("(gpssvm) ")
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
				return nil
			}
			return fmt.Errorf("reading console input: %w", err)
		}
		line.AppendHistory(cmd)

		switch strings.TrimSpace(cmd) {
		case "step", "s":
			cont, err := interp.Step()
			if err != nil {
				return fmt.Errorf("step at pc=%d: %w", interp.PC(), err)
			}
			fmt.Printf("pc=%d clock_ms=%d remaining_starts=%d\n", interp.PC(), interp.ClockMS(), interp.RemainingStarts())
			if !cont {
				fmt.Println("halted")
				return nil
			}

		case "continue", "c":
			if err := interp.Run(); err != nil {
				return fmt.Errorf("continue from pc=%d: %w", interp.PC(), err)
			}
			fmt.Println("halted")
			return nil

		case "dump", "d":
			fmt.Print(dumpMemoryTable(interp.Memory()))

		case "quit", "q", "":
			return nil

		default:
			fmt.Printf("unknown command %q\n", cmd)
		}
	}
}
