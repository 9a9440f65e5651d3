package maincmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/mattn/go-isatty"
	"github.com/mna/mainer"
	"github.com/nerinelang/nerine/lang/engine"
	"github.com/nerinelang/nerine/lang/types"
)

// repl reads lines, executes each against one accumulating engine and
// prints the result (or the error, which does not end the session).
// Results equal to undefined are not echoed, so print calls do not leave
// a spurious "undefined" line. Line editing and history are available
// when stdin is a terminal.
func (c *Cmd) repl(ctx context.Context, stdio mainer.Stdio) error {
	eng, err := engine.NewFromEnv()
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}
	eng.Stdout = stdio.Stdout

	fmt.Fprintf(stdio.Stdout, "%s %s (type 'exit' or 'quit' to leave)\n", binName, c.BuildVersion)

	next, cleanup, err := lineReader(stdio)
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}
	defer cleanup()

	for ctx.Err() == nil {
		line, err := next()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			// ctrl-c discards the line, the session continues
			continue
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			fmt.Fprintln(stdio.Stderr, err)
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}

		res, err := eng.ExecuteContext(ctx, line)
		if err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			continue
		}
		if res != types.Undef {
			fmt.Fprintln(stdio.Stdout, res)
		}
	}
	return nil
}

// lineReader returns a function producing input lines: readline with a
// prompt when stdin is a terminal, a plain scanner otherwise.
func lineReader(stdio mainer.Stdio) (next func() (string, error), cleanup func(), err error) {
	if f, ok := stdio.Stdin.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		rl, err := readline.NewEx(&readline.Config{Prompt: "> "})
		if err != nil {
			return nil, nil, err
		}
		return rl.Readline, func() { rl.Close() }, nil
	}

	sc := bufio.NewScanner(stdio.Stdin)
	next = func() (string, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", err
			}
			return "", io.EOF
		}
		return sc.Text(), nil
	}
	return next, func() {}, nil
}
