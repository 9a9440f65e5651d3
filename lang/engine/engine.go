// Package engine composes the compilation pipeline (scan, parse, compile,
// run) behind a single facade that persists top-level declarations across
// executions.
package engine

import (
	"context"
	"io"

	"github.com/caarlos0/env/v6"
	"github.com/nerinelang/nerine/lang/compiler"
	"github.com/nerinelang/nerine/lang/machine"
	"github.com/nerinelang/nerine/lang/parser"
	"github.com/nerinelang/nerine/lang/types"
)

// Config holds the engine's execution limits.
type Config struct {
	// MaxCallDepth bounds the call stack; <= 0 means the machine default.
	MaxCallDepth int `env:"MAX_CALL_DEPTH" envDefault:"1024"`

	// MaxSteps bounds the number of executed instructions per Execute
	// call; 0 means unlimited.
	MaxSteps uint64 `env:"MAX_STEPS" envDefault:"0"`
}

// ConfigFromEnv reads the configuration from NERINE_-prefixed environment
// variables, falling back to the defaults.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	err := env.Parse(&cfg, env.Options{Prefix: "NERINE_"})
	return cfg, err
}

// Engine executes programs. Successive Execute calls share one global
// scope: top-level declarations (and the values of their slots)
// accumulate, so a later execution sees the names an earlier one
// declared. An Engine is not safe for concurrent use.
type Engine struct {
	// Stdout is the destination of the print builtin; nil means
	// os.Stdout. It may be replaced between Execute calls.
	Stdout io.Writer

	cfg     Config
	globals *compiler.Scope
	slots   []types.Value
	funcs   *compiler.FuncTable
	thread  machine.Thread
}

// New creates an engine with the given configuration.
func New(cfg Config) *Engine {
	return &Engine{
		cfg:     cfg,
		globals: compiler.NewGlobalScope(),
		funcs:   compiler.NewFuncTable(),
	}
}

// NewFromEnv creates an engine configured from the environment.
func NewFromEnv() (*Engine, error) {
	cfg, err := ConfigFromEnv()
	if err != nil {
		return nil, err
	}
	return New(cfg), nil
}

// Execute runs source to completion and returns its result value.
func (e *Engine) Execute(source string) (types.Value, error) {
	return e.ExecuteContext(context.Background(), source)
}

// ExecuteContext runs source to completion: scan and parse, compile
// against a clone of the accumulated global scope, then interpret. The
// global scope (with the clone's declarations) and the global slot values
// are committed only if the whole pipeline succeeds; on any failure they
// are left as they were. Function chunks are registered in the engine's
// function table while compiling and stay there even if the execution
// then fails.
func (e *Engine) ExecuteContext(ctx context.Context, source string) (types.Value, error) {
	prog, err := parser.Parse([]byte(source))
	if err != nil {
		return nil, err
	}

	scope := e.globals.Clone()
	chunk, err := compiler.Compile(prog, scope, e.funcs)
	if err != nil {
		return nil, err
	}

	th := &e.thread
	th.MaxCallDepth = e.cfg.MaxCallDepth
	th.MaxSteps = e.cfg.MaxSteps
	th.Stdout = e.Stdout
	th.Funcs = e.funcs

	res, locals, err := th.RunChunk(ctx, chunk, e.slots)
	if err != nil {
		return nil, err
	}

	e.globals = scope
	e.slots = locals
	return res, nil
}
