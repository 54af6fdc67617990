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

// Package vm implements the GPSS-style bytecode virtual machine and its
// event-driven scheduler: a single-threaded cooperative engine that
// interleaves linear instruction dispatch with wake-up-driven resumption
// (spec §2). Suspending instructions (Generate, Advance) hand control to a
// future-event set keyed by virtual clock time; the scheduler rebuilds each
// suspended instruction's stack arguments by re-running a declared prefix of
// the program before resuming it.
package vm

import (
	"fmt"
)

// DefaultStarts is the default value of remaining_starts (the GPSS START N
// count) when a caller does not override it (spec §6).
const DefaultStarts uint32 = 15

// Interpreter is the VM's entire state (spec §3): the program, program
// counter, active transact, remaining starts, virtual clock, future-event
// set, global memory, and operand stack.
type Interpreter struct {
	code            []Instruction
	pc              uint32
	currentTransact *Transact
	remainingStarts uint32
	clockMS         uint64
	events          *Scheduler
	memory          *Memory
	stack           *Stack

	rng    RandomSource
	output OutputSink
	logger TraceLogger
}

// Option configures an Interpreter at construction time.
type Option func(*Interpreter)

// WithStarts overrides the default remaining_starts (START N) count.
func WithStarts(n uint32) Option {
	return func(i *Interpreter) { i.remainingStarts = n }
}

// WithRNG overrides the default RandomSource.
func WithRNG(r RandomSource) Option {
	return func(i *Interpreter) { i.rng = r }
}

// WithOutput overrides the default (discarding) OutputSink.
func WithOutput(o OutputSink) Option {
	return func(i *Interpreter) { i.output = o }
}

// WithLogger overrides the default (discarding) TraceLogger.
func WithLogger(l TraceLogger) Option {
	return func(i *Interpreter) { i.logger = l }
}

// New constructs an Interpreter for code, with memoryImage as the initial
// memory (spec §6's "Memory initialization"). remaining_starts defaults to
// DefaultStarts; the RNG defaults to NewMathRand(1), and output and logger
// default to no-ops until overridden with options.
func New(code []Instruction, memoryImage []Value, opts ...Option) *Interpreter {
	vm := &Interpreter{
		code:            code,
		memory:          NewMemory(memoryImage),
		stack:           NewStack(),
		events:          NewScheduler(),
		remainingStarts: DefaultStarts,
		rng:             NewMathRand(1),
		output:          DiscardSink(),
		logger:          DiscardLogger(),
	}
	for _, opt := range opts {
		opt(vm)
	}
	return vm
}

// PC returns the current program counter.
func (vm *Interpreter) PC() uint32 { return vm.pc }

// ClockMS returns the current virtual clock, in milliseconds.
func (vm *Interpreter) ClockMS() uint64 { return vm.clockMS }

// RemainingStarts returns the remaining_starts counter.
func (vm *Interpreter) RemainingStarts() uint32 { return vm.remainingStarts }

// CurrentTransact returns the active transact, or nil if none is active.
func (vm *Interpreter) CurrentTransact() *Transact { return vm.currentTransact }

// PendingEvents returns the number of events in the future-event set.
func (vm *Interpreter) PendingEvents() int { return vm.events.Len() }

// Memory exposes the VM's global memory for introspection (disassembly,
// debug dumps); callers must not mutate it outside of Write's append/
// overwrite rules, which it enforces itself.
func (vm *Interpreter) Memory() *Memory { return vm.memory }

// Run drives the dispatcher until remaining_starts reaches zero or the
// program counter runs past the end of code (spec §4.4's outer loop).
func (vm *Interpreter) Run() error {
	for {
		cont, err := vm.Step()
		if err != nil {
			return err
		}
		if !cont {
			return nil
		}
	}
}

// Step executes at most one top-level instruction and reports whether the
// VM can still make progress afterward. It is exposed alongside Run for
// step-by-step tracing tools (see cmd/gpssvm) and tests that need to
// observe intermediate state.
func (vm *Interpreter) Step() (bool, error) {
	if vm.remainingStarts == 0 || int(vm.pc) >= len(vm.code) {
		return false, nil
	}
	if err := vm.step(); err != nil {
		return false, err
	}
	return vm.remainingStarts > 0 && int(vm.pc) < len(vm.code), nil
}

// step executes exactly one top-level instruction, dispatching to the pure,
// suspending, or sink path as appropriate (spec §4.4).
func (vm *Interpreter) step() error {
	instr := vm.code[vm.pc]
	switch {
	case instr.Op.IsSuspending():
		return vm.doSuspend(instr)
	case instr.Op.IsSink():
		return vm.doTerminate(instr)
	default:
		return vm.executePure(instr)
	}
}

// executePure runs one non-suspending, non-sink instruction and advances
// (or redirects) the program counter. It is also the instruction executor
// used to replay a resumption prefix (spec §4.4.1), since that prefix is
// only ever pure instructions.
func (vm *Interpreter) executePure(instr Instruction) error {
	switch instr.Op {
	case OpPush:
		v, err := vm.memory.Read(instr.Addr)
		if err != nil {
			return err
		}
		vm.logger.Tracef("Push: %s", v.Display())
		vm.stack.Push(v)
		vm.pc++

	case OpSaveValue:
		v, err := vm.stack.Pop()
		if err != nil {
			return err
		}
		if err := vm.memory.Write(instr.Addr, v); err != nil {
			return err
		}
		vm.logger.Tracef("Saving value %s at %d", v.Display(), instr.Addr)
		vm.pc++

	case OpPrint:
		v, err := vm.memory.Read(instr.Addr)
		if err != nil {
			return err
		}
		vm.output.Print(v.Display())
		vm.pc++

	case OpPrintClock:
		vm.output.Print(fmt.Sprintf("Clock %d", vm.clockMS))
		vm.pc++

	case OpTransfer:
		if int(instr.Addr) > len(vm.code) {
			return fmt.Errorf("%w: transfer target %d past end of program (%d)", ErrMalformedResumption, instr.Addr, len(vm.code))
		}
		vm.logger.Tracef("TRANSFER FROM %d TO %d", vm.pc, instr.Addr)
		vm.pc = instr.Addr

	case OpTestVar:
		v, err := vm.stack.Pop()
		if err != nil {
			return err
		}
		cond, err := v.ToBool()
		if err != nil {
			return err
		}
		vm.logger.Tracef("Condition is %t", cond)
		if cond {
			vm.pc++
		} else {
			if int(instr.Addr) > len(vm.code) {
				return fmt.Errorf("%w: test-var else target %d past end of program (%d)", ErrMalformedResumption, instr.Addr, len(vm.code))
			}
			vm.pc = instr.Addr
		}

	default:
		return fmt.Errorf("%w: op %s is not a pure instruction", ErrMalformedResumption, instr.Op)
	}
	return nil
}

// doSuspend implements the Generate/Advance contract (spec §4.4): pop a time
// operand, schedule a future event, and hand control to the scheduler.
// Generate's event carries no transact (the arrival doesn't exist yet);
// Advance's event carries a copy of the currently active transact.
func (vm *Interpreter) doSuspend(instr Instruction) error {
	t, err := vm.stack.PopTimeMS()
	if err != nil {
		return err
	}
	switch instr.Op {
	case OpGenerate:
		vm.events.Schedule(vm.pc, vm.clockMS+t, nil)
	case OpAdvance:
		vm.logger.Tracef("Wake time for ADVANCE %d", vm.clockMS+t)
		vm.events.Schedule(vm.pc, vm.clockMS+t, cloneTransact(vm.currentTransact))
	}
	return vm.schedulerStep()
}

// doTerminate implements the Terminate contract (spec §4.4): pop a count,
// decrement remaining_starts (fatal on underflow), clear the active
// transact, and either resume the scheduler or fall through to the next
// instruction if no events remain (or remaining_starts has hit zero). No
// separate halt flag exists: with an empty queue the run ends only when
// remaining_starts is zero or Terminate is the last instruction (the outer
// loop's pc-bounds check); otherwise execution continues at pc+1.
func (vm *Interpreter) doTerminate(instr Instruction) error {
	v, err := vm.stack.Pop()
	if err != nil {
		return err
	}
	n, err := v.ToU32()
	if err != nil {
		return err
	}
	if n > vm.remainingStarts {
		return fmt.Errorf("%w: terminate %d exceeds remaining %d", ErrStartUnderflow, n, vm.remainingStarts)
	}
	vm.remainingStarts -= n
	vm.currentTransact = nil
	vm.logger.Tracef("TERMINATE %d", n)

	if !vm.events.IsEmpty() && vm.remainingStarts > 0 {
		return vm.schedulerStep()
	}
	vm.logger.Tracef("STOP")
	vm.pc++
	return nil
}

// schedulerStep is the resumption algorithm of spec §4.4.1: pop the
// earliest event, advance the clock, restore the waiting transact, replay
// the suspending instruction's resumption prefix to rebuild its stack
// arguments, then perform whatever that instruction does on resumption.
func (vm *Interpreter) schedulerStep() error {
	e := vm.events.PopNext()
	if e == nil {
		return nil
	}
	vm.clockMS = e.WakeTime
	vm.logger.Tracef("Woke up at %d", vm.clockMS)
	vm.currentTransact = e.Transact

	if int(e.InstructionID) >= len(vm.code) {
		return fmt.Errorf("%w: event references instruction %d past end of program", ErrMalformedResumption, e.InstructionID)
	}
	instr := vm.code[e.InstructionID]

	if !instr.Op.IsSuspending() {
		// Defensive: a well-formed program never schedules a non-suspending
		// instruction (spec §4.5's MalformedResumption).
		return fmt.Errorf("%w: event references non-suspending instruction %s at %d", ErrMalformedResumption, instr.Op, e.InstructionID)
	}

	if err := vm.runPrefix(instr.Begin, e.InstructionID); err != nil {
		return err
	}

	switch instr.Op {
	case OpGenerate:
		vm.logger.Tracef("DOING GENERATE")
		t, err := vm.stack.PopTimeMS()
		if err != nil {
			return err
		}
		fresh := NewTransact(vm.rng)
		vm.currentTransact = &fresh
		vm.events.Schedule(e.InstructionID, vm.clockMS+t, nil)
		vm.pc = e.InstructionID + 1

	case OpAdvance:
		vm.logger.Tracef("DOING ADVANCE")
		vm.pc = e.InstructionID + 1
	}
	return nil
}

// runPrefix re-executes [begin, end) to rebuild whatever stack arguments
// the deferred instruction needs (spec §3's "resumption prefix", §9's
// "re-entrant prefix execution"). The prefix must consist only of pure
// instructions; a suspending or sink instruction inside it means the
// program is malformed.
func (vm *Interpreter) runPrefix(begin, end uint32) error {
	vm.pc = begin
	for vm.pc < end {
		instr := vm.code[vm.pc]
		if instr.Op.IsSuspending() || instr.Op.IsSink() {
			return fmt.Errorf("%w: resumption prefix [%d,%d) hits suspending op %s at %d", ErrMalformedResumption, begin, end, instr.Op, vm.pc)
		}
		if err := vm.executePure(instr); err != nil {
			return err
		}
	}
	return nil
}

// cloneTransact copies t by value and returns a pointer to the copy, or nil
// if t is nil. Events own their transact independently of the Interpreter's
// currentTransact so that a later Terminate clearing currentTransact cannot
// reach back into an already-scheduled event.
func cloneTransact(t *Transact) *Transact {
	if t == nil {
		return nil
	}
	cp := *t
	return &cp
}
