package maincmd

import (
	"context"

	"github.com/mna/lemna/lang/heap"
	"github.com/mna/lemna/lang/lazy"
	"github.com/mna/mainer"
)

func (c *Cmd) Unshared(ctx context.Context, stdio mainer.Stdio, args []string) error {
	h := heap.New()
	defer h.Release()

	cyc := lazy.CycleUnshared(h, func() *heap.Cell {
		return lazy.MakeGenerator(h, int64(c.Lo), int64(c.Hi))
	})
	// No extra root: under call-by-name the driver holds a producer
	// function, not a cell, so consumed rounds are free to die.
	return c.runScenario(stdio, h, "unshared", cyc)
}
