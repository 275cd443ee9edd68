package lazy

import (
	"github.com/mna/lemna/lang/heap"
	"github.com/mna/lemna/lang/types"
)

// CycleShared returns the endless self-append of the sequence in src. Every
// recursive unfolding reads the same src cell, so the source spine is
// evaluated once and then shared by all rounds: this is the call-by-need
// variant. The price of that sharing is retention: a driver that keeps a
// reference to the returned cell keeps every memoized constructor between it
// and the current position reachable for the whole run.
//
// An empty source yields the empty sequence.
func CycleShared(h *heap.Heap, src *heap.Cell) *heap.Cell {
	return h.NewCell(func() (types.Value, error) {
		v, err := h.Force(src)
		if err != nil {
			return nil, err
		}
		cons, ok := v.(*Cons)
		if !ok {
			return Nil, nil
		}
		// The next round is a fresh suspension, but it captures the same
		// src cell, so the spine src was forced to never becomes garbage.
		again := h.NewCell(func() (types.Value, error) {
			return h.Force(CycleShared(h, src))
		}, src)
		return NewCons(cons.Head, Append(h, cons.Tail, again)), nil
	}, src)
}

// CycleUnshared returns the endless self-append of the sequence produced by
// produce. Every recursive unfolding invokes produce afresh and builds a
// brand-new, independent spine: this is the call-by-name variant. Consumed
// rounds become unreachable as soon as the demand front moves past them, so
// retention stays bounded no matter how far the sequence is driven.
//
// produce must be pure; it is called once per round. A produce that yields
// an empty sequence makes the result empty.
func CycleUnshared(h *heap.Heap, produce func() *heap.Cell) *heap.Cell {
	return h.NewCell(func() (types.Value, error) {
		src := produce()
		v, err := h.Force(src)
		if err != nil {
			return nil, err
		}
		cons, ok := v.(*Cons)
		if !ok {
			return Nil, nil
		}
		again := h.NewCell(func() (types.Value, error) {
			return h.Force(CycleUnshared(h, produce))
		})
		return NewCons(cons.Head, Append(h, cons.Tail, again)), nil
	})
}
