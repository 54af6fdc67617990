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

import "errors"

// All failures in the core VM are fatal: the interpreter aborts with one of
// these sentinels rather than attempting partial recovery (spec §7).

// ErrStackUnderflow is returned when Pop is executed on an empty operand stack.
var ErrStackUnderflow = errors.New("vm: stack underflow")

// ErrTypeMismatch is returned by same-tag-only value operations (equality,
// ordering, coercion) when the operand tags disagree or the coercion does
// not apply to the value's tag.
var ErrTypeMismatch = errors.New("vm: type mismatch")

// ErrMemoryHole is returned when a SaveValue targets an index more than one
// past the end of memory (only i == len(memory) is a valid append).
var ErrMemoryHole = errors.New("vm: memory hole")

// ErrStartUnderflow is returned when Terminate(n) would drive remaining
// starts negative.
var ErrStartUnderflow = errors.New("vm: start count underflow")

// ErrInvalidTime is returned when a time operand popped by a suspending
// instruction is negative, NaN, or infinite.
var ErrInvalidTime = errors.New("vm: invalid time operand")

// ErrMalformedResumption is returned when a scheduled event's instruction_id
// does not reference a suspending instruction (Generate/Advance) inside the
// program, or when a Transfer/TestVar target is greater than len(code) (a
// target equal to len(code) just ends the run).
var ErrMalformedResumption = errors.New("vm: malformed resumption")
