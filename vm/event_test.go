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

import "testing"

func TestSchedulerOrdersByWakeTime(t *testing.T) {
	s := NewScheduler()
	s.Schedule(10, 300, nil)
	s.Schedule(20, 100, nil)
	s.Schedule(30, 200, nil)

	want := []uint64{100, 200, 300}
	for _, w := range want {
		e := s.PopNext()
		if e == nil {
			t.Fatalf("PopNext returned nil; want WakeTime %d", w)
		}
		if e.WakeTime != w {
			t.Errorf("PopNext().WakeTime = %d; want %d", e.WakeTime, w)
		}
	}
	if !s.IsEmpty() {
		t.Errorf("IsEmpty() = false after draining all events")
	}
}

func TestSchedulerFIFOTieBreak(t *testing.T) {
	s := NewScheduler()
	s.Schedule(1, 500, nil)
	s.Schedule(2, 500, nil)
	s.Schedule(3, 500, nil)

	wantOrder := []uint32{1, 2, 3}
	for _, want := range wantOrder {
		e := s.PopNext()
		if e == nil {
			t.Fatalf("PopNext returned nil; want InstructionID %d", want)
		}
		if e.InstructionID != want {
			t.Errorf("PopNext().InstructionID = %d; want %d (FIFO tie-break)", e.InstructionID, want)
		}
	}
}

func TestSchedulerEmpty(t *testing.T) {
	s := NewScheduler()
	if !s.IsEmpty() {
		t.Fatalf("new scheduler should be empty")
	}
	if e := s.PopNext(); e != nil {
		t.Errorf("PopNext() on empty scheduler = %v; want nil", e)
	}
}

func TestSchedulerCarriesTransact(t *testing.T) {
	s := NewScheduler()
	tr := NewTransact(NewMathRand(1))
	s.Schedule(1, 10, &tr)

	e := s.PopNext()
	if e == nil || e.Transact == nil {
		t.Fatalf("PopNext() lost the carried transact")
	}
	if e.Transact.ID != tr.ID {
		t.Errorf("carried transact ID = %v; want %v", e.Transact.ID, tr.ID)
	}
}
