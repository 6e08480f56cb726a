package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tcc-lang/tcc"
	"github.com/tcc-lang/tcc/object"
	"github.com/tcc-lang/tcc/world"
)

// NewRunCmd creates the run subcommand.
func NewRunCmd() *cobra.Command {
	var showWorld bool

	cmd := &cobra.Command{
		Use:   "run FILE",
		Short: "Run a .tcc script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configFile, cmd.Flags())
			if err != nil {
				return err
			}
			logger, err := cfg.apply()
			if err != nil {
				return err
			}
			if cfg.NoColor {
				color.NoColor = true
			}

			filename := args[0]
			source, err := os.ReadFile(filename)
			if err != nil {
				return err
			}

			w := world.New(world.WithLogger(logger))
			result, err := tcc.Eval(cmd.Context(), string(source),
				tcc.WithFilename(filename),
				tcc.WithWorld(w),
				tcc.WithMaxErrors(cfg.MaxErrors))
			if err != nil {
				color.New(color.FgRed).Fprintln(os.Stderr, err.Error())
				return fmt.Errorf("script failed")
			}
			if _, isNil := result.(*object.NilType); !isNil {
				fmt.Println(result.Inspect())
			}
			if showWorld {
				fmt.Print(w.Summary())
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showWorld, "world", false, "print a world summary after the script runs")
	return cmd
}
