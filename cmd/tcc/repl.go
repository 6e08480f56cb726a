package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tcc-lang/tcc"
	"github.com/tcc-lang/tcc/compiler"
	"github.com/tcc-lang/tcc/object"
	"github.com/tcc-lang/tcc/parser"
	"github.com/tcc-lang/tcc/vm"
	"github.com/tcc-lang/tcc/world"
)

// NewReplCmd creates the repl subcommand.
func NewReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configFile, cmd.Flags())
			if err != nil {
				return err
			}
			return runRepl(cmd.Context(), cfg)
		},
	}
}

// runRepl reads lines from stdin and evaluates them incrementally. The
// world, globals, and defined functions persist across lines.
func runRepl(ctx context.Context, cfg config) error {
	logger, err := cfg.apply()
	if err != nil {
		return err
	}
	if cfg.NoColor {
		color.NoColor = true
	}

	w := world.New(world.WithLogger(logger))
	env := tcc.Builtins()
	for k, v := range world.Builtins(w) {
		env[k] = v
	}
	names := make([]string, 0, len(env))
	for name := range env {
		names = append(names, name)
	}
	sort.Strings(names)

	comp, err := compiler.New(compiler.WithGlobalNames(names))
	if err != nil {
		return err
	}

	prompt := color.New(color.FgCyan, color.Bold)
	errStyle := color.New(color.FgRed)
	resultStyle := color.New(color.FgGreen)

	fmt.Printf("tcc %s\n", version)
	fmt.Println(`Type "exit" to leave.`)

	var machine *vm.VirtualMachine
	scanner := bufio.NewScanner(os.Stdin)
	for {
		prompt.Print(">>> ")
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}
		line := scanner.Text()
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}
		if line == ":world" {
			fmt.Print(w.Summary())
			continue
		}

		program, err := parser.Parse(ctx, line, parser.WithMaxErrors(cfg.MaxErrors))
		if err != nil {
			errStyle.Println(err.Error())
			continue
		}
		code, err := comp.Compile(program)
		if err != nil {
			errStyle.Println(err.Error())
			continue
		}
		if machine == nil {
			machine = vm.New(code, vm.WithGlobals(env))
		}
		if err := machine.Run(ctx); err != nil {
			errStyle.Println(err.Error())
			continue
		}
		if result, ok := machine.TOS(); ok {
			if _, isNil := result.(*object.NilType); !isNil {
				resultStyle.Println(result.Inspect())
			}
		}
	}
}
