// Package compiler wires the front end's stages — source registration,
// lexing, parsing, and type checking — into one pipeline, and hands
// the checked result to a backend.Emitter for whatever comes after.
package compiler

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jot-lang/jot/internal/ast"
	"github.com/jot-lang/jot/internal/backend"
	"github.com/jot-lang/jot/internal/diag"
	"github.com/jot-lang/jot/internal/lexer"
	"github.com/jot-lang/jot/internal/parser"
	"github.com/jot-lang/jot/internal/semantic"
	"github.com/jot-lang/jot/internal/source"
)

// Option configures a Pipeline. Following the lexer's own
// functional-option shape, options are applied in order over a set of
// defaults rather than requiring every caller to build a struct
// literal with every field spelled out.
type Option func(*options)

type options struct {
	loader  parser.Loader
	backend backend.Emitter
	trace   bool
}

// WithLoader overrides the default directory-relative FileLoader used
// to resolve load directives.
func WithLoader(l parser.Loader) Option {
	return func(o *options) { o.loader = l }
}

// WithBackend overrides the default backend.Stub.
func WithBackend(b backend.Emitter) Option {
	return func(o *options) { o.backend = b }
}

// WithTrace passes lexer.WithTracing(trace) to the lexers it creates;
// nothing is printed as a result.
func WithTrace(trace bool) Option {
	return func(o *options) { o.trace = trace }
}

// Pipeline runs the front end over one or more files sharing a single
// source.Manager and diag.Engine, the same way one compilation unit's
// load/import graph shares one semantic.Context.
type Pipeline struct {
	opts        options
	Sources     *source.Manager
	Diagnostics *diag.Engine
}

// New returns a Pipeline with a fresh source.Manager and diag.Engine,
// ready to compile files.
func New(opts ...Option) *Pipeline {
	o := options{backend: backend.Stub{}}
	for _, opt := range opts {
		opt(&o)
	}
	return &Pipeline{
		opts:        o,
		Sources:     source.NewManager(),
		Diagnostics: diag.NewEngine(),
	}
}

// Result is one file's parsed and checked state.
type Result struct {
	Unit *ast.CompilationUnit
	Ctx  *semantic.Context
}

// Parse reads path, lexes and parses it (splicing in any load
// directives it contains) without running the type checker.
func (p *Pipeline) Parse(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("jot: reading %s: %w", path, err)
	}

	fileID := p.Sources.Register(path)
	ctx := semantic.NewContext(p.Sources, p.Diagnostics)

	loader := p.opts.loader
	if loader == nil {
		loader = NewFileLoader(filepath.Dir(path), p.Sources)
	}

	var lexOpts []lexer.Option
	if p.opts.trace {
		lexOpts = append(lexOpts, lexer.WithTracing(true))
	}
	l := lexer.New(fileID, string(data), lexOpts...)

	prs := parser.New(fileID, l, ctx, loader)
	unit := prs.ParseCompilationUnit(path)
	return &Result{Unit: unit, Ctx: ctx}, nil
}

// Check parses path and runs the type checker over the result. A
// fatal or non-fatal diagnostic does not stop the pipeline from
// returning the best-effort Result; callers check
// Diagnostics.HasErrors() themselves, the same way the checker's
// recovered abortCheck leaves partial results in place rather than an
// error return.
func (p *Pipeline) Check(path string) (*Result, error) {
	res, err := p.Parse(path)
	if err != nil {
		return nil, err
	}
	semantic.NewChecker(res.Ctx).Check(res.Unit)
	return res, nil
}

// Compile checks path and, if no errors were reported, hands the
// result to the configured backend.Emitter.
func (p *Pipeline) Compile(path string) (*Result, error) {
	res, err := p.Check(path)
	if err != nil {
		return res, err
	}
	if p.Diagnostics.HasErrors() {
		return res, fmt.Errorf("jot: %s failed type checking", path)
	}
	if err := p.opts.backend.EmitModule(res.Unit, res.Ctx); err != nil {
		return res, err
	}
	return res, nil
}
