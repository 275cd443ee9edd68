package maincmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/mna/mainer"
)

const binName = "lemna"

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<option>...] <command>
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<option>...] <command>
       %[1]s -h|--help
       %[1]s -v|--version

Lazy-evaluation runtime that contrasts call-by-need (evaluate once,
share) with call-by-name (re-evaluate per use) on a cycled range
generator, and reports the heap retention of each discipline.

The <command> can be one of:
       shared                    Drive the cycled range under the
                                 sharing (call-by-need) combinator
                                 and print the element found after
                                 dropping the requested count.
       unshared                  Run the same scenario under the
                                 non-sharing (call-by-name)
                                 combinator.
       trace                     Drive both variants side by side
                                 and print live-cell counts as the
                                 drop progresses.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.
       --lo <int>                Lower bound of the range generator
                                 (default 1).
       --hi <int>                Upper bound of the range generator
                                 (default 10).
       -n --drop <int>           Number of elements to drop before
                                 reading the head (default 100).

Valid flag options for the <shared> and <unshared> commands are:
       --stats                   Print heap counters and the final
                                 live-cell count after the run.

Valid flag options for the <trace> command are:
       --every <int>             Report live-cell counts every that
                                 many dropped elements (default 10).

More information on the %[1]s repository:
       https://github.com/mna/lemna
`, binName)
)

type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`

	Lo    int  `flag:"lo"`
	Hi    int  `flag:"hi"`
	Drop  int  `flag:"n,drop"`
	Every int  `flag:"every"`
	Stats bool `flag:"stats"`

	args  []string
	flags map[string]bool
	cmdFn func(context.Context, mainer.Stdio, []string) error
}

func (c *Cmd) SetArgs(args []string) {
	c.args = args
}

func (c *Cmd) SetFlags(flags map[string]bool) {
	c.flags = flags
}

func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}

	if len(c.args) == 0 {
		return errors.New("no command specified")
	}

	cmdName := c.args[0]

	commands := buildCmds(c)
	c.cmdFn = commands[cmdName]
	if c.cmdFn == nil {
		return fmt.Errorf("unknown command: %s", c.args[0])
	}

	// scenario defaults, applied only when the flag was not provided
	if !c.flags["lo"] {
		c.Lo = 1
	}
	if !c.flags["hi"] {
		c.Hi = 10
	}
	if !c.flags["n"] && !c.flags["drop"] {
		c.Drop = 100
	}
	if !c.flags["every"] {
		c.Every = 10
	}

	if c.Drop < 0 {
		return fmt.Errorf("%s: drop count must be >= 0", cmdName)
	}
	if c.Every <= 0 {
		return fmt.Errorf("%s: every must be > 0", cmdName)
	}
	if c.flags["every"] && cmdName != "trace" {
		return fmt.Errorf("%s: invalid flag 'every'", cmdName)
	}
	if c.flags["stats"] && cmdName == "trace" {
		return fmt.Errorf("%s: invalid flag 'stats'", cmdName)
	}

	return nil
}

func printError(stdio mainer.Stdio, err error) error {
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "%s\n", err)
	}
	return err
}

func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{
		EnvVars:   false, // leaving this here for now in case some flags can use this
		EnvPrefix: binName + "_",
	}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.InvalidArgs
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success

	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)
	if err := c.cmdFn(ctx, stdio, c.args[1:]); err != nil {
		// each command takes care of printing its errors, just return with an error code
		return mainer.Failure
	}
	return mainer.Success
}

// valid commands are those that take a mainer.Stdio and a slice of strings as
// input, and return an error as output.
func buildCmds(v interface{}) map[string]func(context.Context, mainer.Stdio, []string) error {
	cmds := make(map[string]func(context.Context, mainer.Stdio, []string) error)

	vv := reflect.ValueOf(v)
	vt := vv.Type()
	for i := 0; i < vt.NumMethod(); i++ {
		m := vt.Method(i)
		mt := m.Type

		// must take 4 parameters (including receiver) and return 1
		if mt.NumIn() != 4 || mt.NumOut() != 1 {
			continue
		}

		if rt := mt.Out(0); rt.Kind() != reflect.Interface || rt.Name() != "error" {
			continue
		}
		if p0 := mt.In(0); p0.Kind() != reflect.Ptr || p0.Elem().Name() != "Cmd" {
			continue
		}
		if p1 := mt.In(1); p1.Kind() != reflect.Interface || p1.Name() != "Context" {
			continue
		}
		if p2 := mt.In(2); p2.Kind() != reflect.Struct || p2.Name() != "Stdio" {
			continue
		}
		if p3 := mt.In(3); p3.Kind() != reflect.Slice || p3.Elem().Name() != "string" {
			continue
		}
		cmds[strings.ToLower(m.Name)] = vv.Method(i).Interface().(func(context.Context, mainer.Stdio, []string) error)
	}
	return cmds
}
