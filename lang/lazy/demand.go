package lazy

import (
	"github.com/mna/lemna/lang/heap"
	"github.com/mna/lemna/lang/types"
)

// An EmptySequenceError is reported when an element is demanded from the
// empty sequence. It is a caller-constraint violation, not an evaluation
// bug.
type EmptySequenceError string

func (e EmptySequenceError) Error() string { return string(e) }

// DropN returns the sequence remaining after skipping the first n elements
// of xs. It forces at most n outer constructors, never the elements
// themselves. Dropping past the end of a finite sequence yields the empty
// sequence, not an error, and DropN(h, 0, xs) is xs unchanged.
func DropN(h *heap.Heap, n int, xs *heap.Cell) (*heap.Cell, error) {
	for ; n > 0; n-- {
		v, err := h.Force(xs)
		if err != nil {
			return nil, err
		}
		cons, ok := v.(*Cons)
		if !ok {
			return xs, nil
		}
		xs = cons.Tail
	}
	return xs, nil
}

// HeadOf forces the outer constructor of xs and returns its head cell
// without forcing it further: only what is demanded gets evaluated. It
// reports an EmptySequenceError when xs is the empty sequence.
func HeadOf(h *heap.Heap, xs *heap.Cell) (*heap.Cell, error) {
	v, err := h.Force(xs)
	if err != nil {
		return nil, err
	}
	cons, ok := v.(*Cons)
	if !ok {
		return nil, EmptySequenceError("head of empty sequence")
	}
	return cons.Head, nil
}

// TakeN forces and returns the first n elements of xs, or fewer if the
// sequence ends early.
func TakeN(h *heap.Heap, n int, xs *heap.Cell) ([]types.Value, error) {
	elems := make([]types.Value, 0, n)
	for ; n > 0; n-- {
		v, err := h.Force(xs)
		if err != nil {
			return nil, err
		}
		cons, ok := v.(*Cons)
		if !ok {
			break
		}
		ev, err := h.Force(cons.Head)
		if err != nil {
			return nil, err
		}
		elems = append(elems, ev)
		xs = cons.Tail
	}
	return elems, nil
}
