// Package maincmd implements the nerine command line: running a source
// file, an interactive REPL, and the per-phase dump flags.
package maincmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mna/mainer"
)

const binName = "nerine"

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<option>...] [<file>]
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<option>...] [<file>]
       %[1]s -h|--help
       %[1]s -v|--version

Engine for a small subset of JavaScript. With a <file> argument the file
is executed; without one an interactive REPL starts (type 'exit' or
'quit' to leave).

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.

Valid flag options when a <file> is provided, each running the pipeline
only up to the corresponding phase and printing its result:
       --tokens                  Print the token stream.
       --ast                     Print the abstract syntax tree.
       --disasm                  Print the compiled bytecode chunks.

The NERINE_MAX_CALL_DEPTH and NERINE_MAX_STEPS environment variables
bound the call stack depth and the executed instruction count.
`, binName)
)

type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`

	Tokens bool `flag:"tokens"`
	AST    bool `flag:"ast"`
	Disasm bool `flag:"disasm"`

	args []string
}

func (c *Cmd) SetArgs(args []string) {
	c.args = args
}

func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}

	if len(c.args) > 1 {
		return errors.New("at most one file can be provided")
	}

	ndumps := 0
	for _, b := range []bool{c.Tokens, c.AST, c.Disasm} {
		if b {
			ndumps++
		}
	}
	if ndumps > 1 {
		return errors.New("at most one of --tokens, --ast, --disasm can be set")
	}
	if ndumps == 1 && len(c.args) == 0 {
		return errors.New("phase dump flags require a file")
	}
	return nil
}

func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{
		EnvVars:   false,
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

	var err error
	if len(c.args) == 1 {
		err = c.runFile(ctx, stdio, c.args[0])
	} else {
		err = c.repl(ctx, stdio)
	}
	if err != nil {
		// errors are already printed on stderr where they occur
		return mainer.Failure
	}
	return mainer.Success
}
