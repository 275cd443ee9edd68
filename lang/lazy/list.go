package lazy

import (
	"fmt"

	"github.com/mna/lemna/lang/heap"
	"github.com/mna/lemna/lang/types"
)

// NilType is the type of Nil, the empty sequence. (We represent it as a
// number, not struct{}, so that Nil may be constant.)
type NilType byte

const Nil = NilType(0)

// Nil is a Value.
var _ types.Value = Nil

func (NilType) String() string { return "nil" }
func (NilType) Type() string   { return "nil" }

// A Cons is one constructor of a lazy sequence: a head element prepended to
// a tail sequence. Head and tail are references to possibly still-suspended
// cells, never eagerly computed values, and a Cons does not own them
// exclusively: both may be referenced by multiple paths.
type Cons struct {
	Head *heap.Cell
	Tail *heap.Cell
}

var (
	_ types.Value   = (*Cons)(nil)
	_ heap.CellRefs = (*Cons)(nil)
)

// NewCons returns a cons of the given head and tail cells.
func NewCons(head, tail *heap.Cell) *Cons { return &Cons{Head: head, Tail: tail} }

func (c *Cons) String() string { return fmt.Sprintf("cons(%p)", c) }
func (c *Cons) Type() string   { return "cons" }

func (c *Cons) CellRefs() []*heap.Cell { return []*heap.Cell{c.Head, c.Tail} }

// MakeGenerator returns the cell of the bounded range sequence lo..hi
// inclusive. Each demand materializes a single cons cell; the rest of the
// range stays a description, not a list. A lo greater than hi yields the
// empty sequence, not an error. The generator itself is stateless and cheap
// to duplicate, in contrast with the list it produces.
func MakeGenerator(h *heap.Heap, lo, hi int64) *heap.Cell {
	return h.NewCell(func() (types.Value, error) {
		if lo > hi {
			return Nil, nil
		}
		head := h.NewCell(func() (types.Value, error) {
			return types.Int(lo), nil
		})
		return NewCons(head, MakeGenerator(h, lo+1, hi)), nil
	})
}

// Append returns the lazy concatenation of the sequences in xs and ys.
// Forcing the result forces only the outer constructor of xs; when xs is
// exhausted the result is ys by reference, not by copy.
func Append(h *heap.Heap, xs, ys *heap.Cell) *heap.Cell {
	return h.NewCell(func() (types.Value, error) {
		v, err := h.Force(xs)
		if err != nil {
			return nil, err
		}
		cons, ok := v.(*Cons)
		if !ok {
			return h.Force(ys)
		}
		return NewCons(cons.Head, Append(h, cons.Tail, ys)), nil
	}, xs, ys)
}
