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
	"fmt"
	"strings"

	"golang.org/x/term"
)

// defaultListingWidth is used when the output is not a terminal (piped to a
// file, captured in a test) and term.GetSize cannot report a width.
const defaultListingWidth = 80

// Disassemble returns a human-readable listing of code, one instruction per
// line, annotated with its operand. Lines are truncated to the terminal
// width (via golang.org/x/term) when fd is a terminal, matching the
// teacher's Disassemble helper but operating on tagged Instruction records
// rather than packed bytecode words.
func Disassemble(code []Instruction, fd int) string {
	width := defaultListingWidth
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			width = w
		}
	}

	var b strings.Builder
	for i, instr := range code {
		var line string
		switch instr.Op {
		case OpGenerate, OpAdvance, OpTerminate:
			line = fmt.Sprintf("[%04d] %-12s begin=%d", i, instr.Op, instr.Begin)
		case OpPush, OpSaveValue, OpPrint:
			line = fmt.Sprintf("[%04d] %-12s addr=%d", i, instr.Op, instr.Addr)
		case OpTransfer:
			line = fmt.Sprintf("[%04d] %-12s target=%d", i, instr.Op, instr.Addr)
		case OpTestVar:
			line = fmt.Sprintf("[%04d] %-12s else=%d", i, instr.Op, instr.Addr)
		default:
			line = fmt.Sprintf("[%04d] %-12s", i, instr.Op)
		}
		if len(line) > width {
			line = line[:width]
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}
