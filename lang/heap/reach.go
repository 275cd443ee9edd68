package heap

import (
	"github.com/dolthub/swiss"
	"golang.org/x/exp/slices"
)

// Live returns the number of cells reachable from the given roots. It is the
// retention measure of the system: a cell counts as live while some
// reference chain from a root reaches it, whether through the captured deps
// of a still-suspended producer or through the CellRefs of an evaluated
// value. Cheap enough to recompute after every force or driver step.
func (h *Heap) Live(roots ...*Cell) int {
	return h.reach(roots).Count()
}

// LiveSet returns the IDs of the cells reachable from the given roots, in
// ascending order.
func (h *Heap) LiveSet(roots ...*Cell) []CellID {
	seen := h.reach(roots)
	ids := make([]CellID, 0, seen.Count())
	seen.Iter(func(id CellID, _ struct{}) bool {
		ids = append(ids, id)
		return false
	})
	slices.Sort(ids)
	return ids
}

// Sweep removes from the table every cell not reachable from the given
// roots, returning the number of cells removed. It models reclamation only;
// evaluation behavior is unaffected since unreachable cells can never be
// forced again.
func (h *Heap) Sweep(roots ...*Cell) int {
	seen := h.reach(roots)
	var dead []CellID
	h.cells.Iter(func(id CellID, _ *Cell) bool {
		if _, ok := seen.Get(id); !ok {
			dead = append(dead, id)
		}
		return false
	})
	for _, id := range dead {
		h.cells.Delete(id)
	}
	return len(dead)
}

func (h *Heap) reach(roots []*Cell) *swiss.Map[CellID, struct{}] {
	seen := swiss.NewMap[CellID, struct{}](uint32(len(roots)) + 16)
	stack := make([]*Cell, 0, len(roots))
	for _, c := range roots {
		if c != nil {
			stack = append(stack, c)
		}
	}
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, ok := seen.Get(c.id); ok {
			continue
		}
		seen.Put(c.id, struct{}{})

		// suspended and inProgress cells hold their closure captures;
		// evaluated cells hold whatever their value references.
		stack = append(stack, c.deps...)
		if c.state == evaluated {
			if refs, ok := c.value.(CellRefs); ok {
				stack = append(stack, refs.CellRefs()...)
			}
		}
	}
	return seen
}
