package heap

import (
	"fmt"

	"github.com/mna/lemna/lang/types"
)

// A CellID identifies a cell for the lifetime of its heap. IDs are assigned
// sequentially at cell creation and never reused.
type CellID uint64

// A Producer computes the value of a suspended cell. It runs at most once
// over the lifetime of the cell; producers must be pure so that the single
// run is indistinguishable from any other.
type Producer func() (types.Value, error)

type cellState uint8

const (
	// suspended: the cell captures "what to do", not the result.
	suspended cellState = iota
	// inProgress: the producer is running. Forcing the cell again in this
	// state is an illegal self-dependency, reported as a CyclicForceError.
	inProgress
	// evaluated: the value is cached and the producer has been discarded.
	// Terminal state; the value never changes afterward.
	evaluated
)

// A Cell is a box containing either a suspended computation or, once forced,
// its value. A cell transitions suspended -> inProgress -> evaluated at most
// once; memoization is permanent. Cells may be referenced from multiple
// paths, which is exactly the sharing that call-by-need introduces.
type Cell struct {
	id    CellID
	state cellState
	value types.Value

	// producer and the cells it captures; both are dropped when the cell
	// becomes evaluated, at which point reachability flows through the value
	// instead (see CellRefs). This mirrors what a collector would see: a
	// live closure keeps its captures alive, an evaluated thunk does not.
	producer Producer
	deps     []*Cell
}

var _ types.Value = (*Cell)(nil)

// ID returns the identity of the cell within its heap.
func (c *Cell) ID() CellID { return c.id }

// Evaluated reports whether the cell has been forced to a value.
func (c *Cell) Evaluated() bool { return c.state == evaluated }

func (c *Cell) String() string { return fmt.Sprintf("cell(%d)", c.id) }
func (c *Cell) Type() string   { return "cell" }

// CellRefs is implemented by evaluated values that hold references to other
// cells. Reachability traversal follows those references; values that do not
// implement it are leaves.
type CellRefs interface {
	CellRefs() []*Cell
}

// A CyclicForceError is reported when a cell is forced while its own
// producer is still running, i.e. the computation of a value depends on that
// same value. This is an evaluation bug and is not recoverable.
type CyclicForceError CellID

func (e CyclicForceError) Error() string {
	return fmt.Sprintf("cell(%d): forced while its evaluation is in progress", CellID(e))
}
