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
	"sort"

	"github.com/probecore/gpssvm/vm"
)

// scenario is a runnable bytecode program plus its initial memory image.
type scenario struct {
	Code   []vm.Instruction
	Memory []vm.Value
}

// scenarios are small built-in programs a user can run with -scenario,
// mirroring the worked examples in this project's design notes.
var scenarios = map[string]scenario{
	"s1": {
		Code: []vm.Instruction{
			vm.Push(0),
			vm.Generate(0),
			vm.Push(1),
			vm.Terminate(0),
		},
		Memory: []vm.Value{vm.Float(0.005), vm.UInt(1)},
	},
	"s2": {
		Code: []vm.Instruction{
			vm.Push(0),
			vm.Generate(0),
			vm.Transfer(3),
			vm.Push(1),
			vm.Advance(3),
			vm.PrintClock(),
			vm.Push(2),
			vm.Terminate(5),
		},
		Memory: []vm.Value{vm.Float(0.010), vm.Float(0.020), vm.UInt(1)},
	},
	"s3": {
		Code: []vm.Instruction{
			vm.Push(0),
			vm.TestVar(4),
			vm.PrintClock(),
			vm.Push(1),
			vm.Terminate(3),
		},
		Memory: []vm.Value{vm.Bool(true), vm.UInt(1)},
	},
	"s4": {
		Code: []vm.Instruction{
			vm.Push(0),
			vm.TestVar(4),
			vm.PrintClock(),
			vm.Push(1),
			vm.Terminate(3),
		},
		Memory: []vm.Value{vm.Bool(false), vm.UInt(1)},
	},
	"s5": {
		Code: []vm.Instruction{
			vm.Push(0),
			vm.SaveValue(1),
			vm.Push(1),
			vm.Terminate(0),
		},
		Memory: []vm.Value{vm.UInt(7)},
	},
	"s6": {
		Code: []vm.Instruction{
			vm.Push(0),
			vm.Generate(0),
			vm.Push(1),
			vm.Advance(2),
			vm.Print(2),
			vm.Push(3),
			vm.Terminate(5),
		},
		Memory: []vm.Value{vm.Float(0), vm.Float(0), vm.UInt(7), vm.UInt(1)},
	},
}

func scenarioNames() []string {
	names := make([]string, 0, len(scenarios))
	for name := range scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
