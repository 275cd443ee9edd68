package heap

import (
	"github.com/dolthub/swiss"
	"github.com/mna/lemna/lang/types"
)

// A Heap owns the table of cells created by one evaluation run. It is not
// process-global state: each driver or test creates its own heap, uses it
// single-threaded, and releases it when done. Forcing is synchronous on the
// caller's stack; the cell state field is the only mutable resource and the
// inProgress guard enforces the at-most-one-writer rule (a concurrent
// implementation would replace the guard with a mutex and compare-and-swap
// on the state, parking the second forcer instead of erroring).
type Heap struct {
	cells  *swiss.Map[CellID, *Cell]
	nextID CellID

	created uint64
	forced  uint64
}

// Stats is a snapshot of the heap counters.
type Stats struct {
	Created  uint64 // cells created since New
	Forced   uint64 // producers run since New
	Resident int    // cells currently in the table (created minus swept)
}

// New returns an empty heap.
func New() *Heap {
	return &Heap{cells: swiss.NewMap[CellID, *Cell](64)}
}

// NewCell creates a suspended cell for producer p. The deps are the cells
// captured by p; they are recorded explicitly because closures cannot be
// introspected, and they stand in for the references a collector would trace
// out of the closure environment.
func (h *Heap) NewCell(p Producer, deps ...*Cell) *Cell {
	c := h.add()
	c.producer = p
	c.deps = deps
	return c
}

// NewValue creates a cell that is already evaluated to v. Forcing it is a
// no-op returning v.
func (h *Heap) NewValue(v types.Value) *Cell {
	c := h.add()
	c.state = evaluated
	c.value = v
	return c
}

func (h *Heap) add() *Cell {
	h.nextID++
	h.created++
	c := &Cell{id: h.nextID}
	h.cells.Put(c.id, c)
	return c
}

// Force demands the value of c. An evaluated cell returns its cached value
// with no side effect; a suspended cell runs its producer exactly once and
// caches the result; a cell already inProgress reports a CyclicForceError.
func (h *Heap) Force(c *Cell) (types.Value, error) {
	switch c.state {
	case evaluated:
		return c.value, nil
	case inProgress:
		return nil, CyclicForceError(c.id)
	}

	c.state = inProgress
	h.forced++
	v, err := c.producer()
	if err != nil {
		// Producers are pure, so retrying reproduces the same error; the
		// cell reverts to suspended rather than sticking in a state that
		// would misreport the next force as cyclic.
		c.state = suspended
		return nil, err
	}
	c.state = evaluated
	c.value = v
	c.producer = nil
	c.deps = nil
	return v, nil
}

// Stats returns a snapshot of the heap counters.
func (h *Heap) Stats() Stats {
	return Stats{Created: h.created, Forced: h.forced, Resident: h.cells.Count()}
}

// Size returns the number of cells currently resident in the table.
func (h *Heap) Size() int { return h.cells.Count() }

// Release drops all cells. The heap is empty and reusable afterward, but
// counters are not reset.
func (h *Heap) Release() {
	h.cells = swiss.NewMap[CellID, *Cell](64)
}
