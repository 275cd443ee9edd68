package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/lemna/lang/heap"
	"github.com/mna/lemna/lang/lazy"
	"github.com/mna/mainer"
)

func (c *Cmd) Shared(ctx context.Context, stdio mainer.Stdio, args []string) error {
	h := heap.New()
	defer h.Release()

	src := lazy.MakeGenerator(h, int64(c.Lo), int64(c.Hi))
	cyc := lazy.CycleShared(h, src)
	// The cycle head stays rooted for the whole run: it is the let-bound
	// cycling list of the call-by-need scenario, and it is what pins the
	// memoized spine.
	return c.runScenario(stdio, h, "shared", cyc, cyc)
}

// runScenario drops, reads the head element, prints it, and with --stats
// reports the heap counters using the unconsumed remainder plus extraRoots
// as the root set.
func (c *Cmd) runScenario(stdio mainer.Stdio, h *heap.Heap, label string, list *heap.Cell, extraRoots ...*heap.Cell) error {
	rest, err := lazy.DropN(h, c.Drop, list)
	if err != nil {
		return printError(stdio, err)
	}
	head, err := lazy.HeadOf(h, rest)
	if err != nil {
		return printError(stdio, err)
	}
	v, err := h.Force(head)
	if err != nil {
		return printError(stdio, err)
	}
	fmt.Fprintf(stdio.Stdout, "%s cycle[%d..%d] drop %d: %s\n", label, c.Lo, c.Hi, c.Drop, v)

	if c.Stats {
		roots := append([]*heap.Cell{rest}, extraRoots...)
		st := h.Stats()
		fmt.Fprintf(stdio.Stdout, "cells created: %d\n", st.Created)
		fmt.Fprintf(stdio.Stdout, "cells forced:  %d\n", st.Forced)
		fmt.Fprintf(stdio.Stdout, "cells live:    %d\n", h.Live(roots...))
	}
	return nil
}
