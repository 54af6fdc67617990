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

import "container/heap"

// Event is one scheduled resumption in the future-event set (spec §3).
// Transact is nil for Generate-originated events (the arriving transact does
// not exist yet) and populated for Advance-originated events, which carry
// the waiting transact across the suspension.
type Event struct {
	InstructionID uint32
	WakeTime      uint64
	Transact      *Transact

	seq uint64 // insertion order, breaks WakeTime ties FIFO (spec §5)
}

// eventHeap is a container/heap.Interface min-heap ordered by ascending
// WakeTime, with seq as the tiebreaker. A plain heap keyed only on WakeTime
// is non-conformant per spec §5 ("a naive heap is non-conformant") — seq is
// exactly the augmentation the spec calls for.
type eventHeap []*Event

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	if h[i].WakeTime != h[j].WakeTime {
		return h[i].WakeTime < h[j].WakeTime
	}
	return h[i].seq < h[j].seq
}

func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) {
	*h = append(*h, x.(*Event))
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// Scheduler is the future-event set: a min-heap on wake-time with FIFO
// tie-break, used by the dispatcher to defer and resume suspending
// instructions (spec §4.3).
type Scheduler struct {
	h       eventHeap
	nextSeq uint64
}

// NewScheduler creates an empty future-event set.
func NewScheduler() *Scheduler {
	s := &Scheduler{h: make(eventHeap, 0, 16)}
	heap.Init(&s.h)
	return s
}

// Schedule pushes a new event. Amortized O(log N).
func (s *Scheduler) Schedule(instructionID uint32, wakeTime uint64, transact *Transact) {
	heap.Push(&s.h, &Event{
		InstructionID: instructionID,
		WakeTime:      wakeTime,
		Transact:      transact,
		seq:           s.nextSeq,
	})
	s.nextSeq++
}

// PopNext removes and returns the earliest event, or nil if none remain.
// O(log N).
func (s *Scheduler) PopNext() *Event {
	if s.h.Len() == 0 {
		return nil
	}
	return heap.Pop(&s.h).(*Event)
}

// IsEmpty reports whether the future-event set has no pending events.
func (s *Scheduler) IsEmpty() bool { return s.h.Len() == 0 }

// Len reports the number of pending events.
func (s *Scheduler) Len() int { return s.h.Len() }
