// Package tcc is a scripting engine for 3D game worlds. Scripts written in
// the tcc language create scene objects, NPCs, and a player, and run small
// math and physics simulations. The host embeds the engine, supplies a
// world.World, and inspects the world after scripts run.
//
//	w := world.New()
//	_, err := tcc.Eval(ctx, source, tcc.WithWorld(w))
package tcc

import (
	"context"
	"sort"

	"github.com/tcc-lang/tcc/builtins"
	"github.com/tcc-lang/tcc/compiler"
	modMath "github.com/tcc-lang/tcc/modules/math"
	modPhysics "github.com/tcc-lang/tcc/modules/physics"
	modStats "github.com/tcc-lang/tcc/modules/stats"
	"github.com/tcc-lang/tcc/object"
	"github.com/tcc-lang/tcc/parser"
	"github.com/tcc-lang/tcc/vm"
	"github.com/tcc-lang/tcc/world"
)

// Option configures a tcc compilation or execution.
type Option func(*options)

type options struct {
	filename              string
	globals               map[string]object.Object
	world                 *world.World
	withoutDefaultGlobals bool
	maxErrors             int
}

func collectOptions(opts ...Option) *options {
	o := &options{globals: map[string]object.Object{}}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

// env builds the effective global environment for an evaluation.
func (o *options) env() map[string]object.Object {
	env := map[string]object.Object{}
	if !o.withoutDefaultGlobals {
		for k, v := range Builtins() {
			env[k] = v
		}
	}
	if o.world != nil {
		for k, v := range world.Builtins(o.world) {
			env[k] = v
		}
	}
	for k, v := range o.globals {
		env[k] = v
	}
	return env
}

func (o *options) globalNames() []string {
	env := o.env()
	names := make([]string, 0, len(env))
	for name := range env {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WithFilename sets the filename used in error messages.
func WithFilename(filename string) Option {
	return func(o *options) {
		o.filename = filename
	}
}

// WithGlobals provides additional global variables to scripts. This option
// is additive; if the same key is supplied multiple times, the last value
// wins.
func WithGlobals(globals map[string]object.Object) Option {
	return func(o *options) {
		for k, v := range globals {
			o.globals[k] = v
		}
	}
}

// WithWorld attaches a world, enabling the world commands (create3d, npc,
// player, and the rest). Without a world, scripts that use commands fail
// to compile.
func WithWorld(w *world.World) Option {
	return func(o *options) {
		o.world = w
	}
}

// WithoutDefaultGlobals opts out of the default builtins and modules.
func WithoutDefaultGlobals() Option {
	return func(o *options) {
		o.withoutDefaultGlobals = true
	}
}

// WithMaxErrors caps how many syntax errors are collected before
// compilation gives up.
func WithMaxErrors(n int) Option {
	return func(o *options) {
		o.maxErrors = n
	}
}

// Builtins returns the default global environment: core builtins, the
// flat math, physics, and statistics functions, and the corresponding
// module objects.
func Builtins() map[string]object.Object {
	env := map[string]object.Object{}
	for k, v := range builtins.Builtins() {
		env[k] = v
	}
	for k, v := range modMath.Builtins() {
		env[k] = v
	}
	for k, v := range modPhysics.Builtins() {
		env[k] = v
	}
	for k, v := range modStats.Builtins() {
		env[k] = v
	}
	env["math"] = modMath.Module()
	env["physics"] = modPhysics.Module()
	env["stats"] = modStats.Module()
	return env
}

// Compile parses and compiles source code into executable bytecode. The
// same options must be supplied to Run so that global bindings line up.
func Compile(ctx context.Context, source string, opts ...Option) (*compiler.Code, error) {
	o := collectOptions(opts...)
	var parserOpts []parser.Option
	if o.filename != "" {
		parserOpts = append(parserOpts, parser.WithFilename(o.filename))
	}
	if o.maxErrors > 0 {
		parserOpts = append(parserOpts, parser.WithMaxErrors(o.maxErrors))
	}
	program, err := parser.Parse(ctx, source, parserOpts...)
	if err != nil {
		return nil, err
	}
	compilerOpts := []compiler.Option{
		compiler.WithGlobalNames(o.globalNames()),
		compiler.WithSource(source),
	}
	if o.filename != "" {
		compilerOpts = append(compilerOpts, compiler.WithFilename(o.filename))
	}
	return compiler.Compile(program, compilerOpts...)
}

// Run executes compiled bytecode and returns the result. Every script
// evaluates to a value; scripts with no trailing expression return nil.
func Run(ctx context.Context, code *compiler.Code, opts ...Option) (object.Object, error) {
	o := collectOptions(opts...)
	return vm.Run(ctx, code, vm.WithGlobals(o.env()))
}

// Eval compiles and runs source code. It is equivalent to Compile
// followed by Run.
func Eval(ctx context.Context, source string, opts ...Option) (object.Object, error) {
	code, err := Compile(ctx, source, opts...)
	if err != nil {
		return nil, err
	}
	return Run(ctx, code, opts...)
}
