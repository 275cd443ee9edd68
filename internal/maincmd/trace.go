package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/lemna/lang/heap"
	"github.com/mna/lemna/lang/lazy"
	"github.com/mna/mainer"
)

// Trace drives the shared and unshared scenarios in lockstep and prints the
// live-cell count of each heap every c.Every dropped elements, so the two
// retention curves can be compared line by line.
func (c *Cmd) Trace(ctx context.Context, stdio mainer.Stdio, args []string) error {
	sh, uh := heap.New(), heap.New()
	defer sh.Release()
	defer uh.Release()

	ssrc := lazy.MakeGenerator(sh, int64(c.Lo), int64(c.Hi))
	sanchor := lazy.CycleShared(sh, ssrc)
	ucyc := lazy.CycleUnshared(uh, func() *heap.Cell {
		return lazy.MakeGenerator(uh, int64(c.Lo), int64(c.Hi))
	})

	scur, ucur := sanchor, ucyc
	fmt.Fprintln(stdio.Stdout, "drop\tshared\tunshared")
	for dropped := 0; ; {
		fmt.Fprintf(stdio.Stdout, "%d\t%d\t%d\n", dropped, sh.Live(sanchor, scur), uh.Live(ucur))
		if dropped >= c.Drop {
			break
		}
		if err := ctx.Err(); err != nil {
			return printError(stdio, err)
		}

		step := c.Every
		if dropped+step > c.Drop {
			step = c.Drop - dropped
		}
		var err error
		if scur, err = lazy.DropN(sh, step, scur); err != nil {
			return printError(stdio, err)
		}
		if ucur, err = lazy.DropN(uh, step, ucur); err != nil {
			return printError(stdio, err)
		}
		dropped += step
	}
	return nil
}
