package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tcc-lang/tcc"
	"github.com/tcc-lang/tcc/compiler"
	"github.com/tcc-lang/tcc/dis"
	"github.com/tcc-lang/tcc/world"
)

// NewDisCmd creates the dis subcommand.
func NewDisCmd() *cobra.Command {
	var funcName string

	cmd := &cobra.Command{
		Use:   "dis FILE",
		Short: "Disassemble the bytecode for a .tcc script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configFile, cmd.Flags())
			if err != nil {
				return err
			}
			filename := args[0]
			source, err := os.ReadFile(filename)
			if err != nil {
				return err
			}
			// Compile against a throwaway world so command statements resolve.
			code, err := tcc.Compile(cmd.Context(), string(source),
				tcc.WithFilename(filename),
				tcc.WithWorld(world.New()),
				tcc.WithMaxErrors(cfg.MaxErrors))
			if err != nil {
				return err
			}

			target := code
			if funcName != "" {
				var fn *compiler.Function
				for i := 0; i < code.ConstantsCount(); i++ {
					if candidate, ok := code.Constant(i).(*compiler.Function); ok {
						if candidate.Name() == funcName {
							fn = candidate
							break
						}
					}
				}
				if fn == nil {
					return fmt.Errorf("function %q not found", funcName)
				}
				target = fn.Code()
			}

			instructions, err := dis.Disassemble(target)
			if err != nil {
				return err
			}
			dis.Print(instructions, os.Stdout)
			return nil
		},
	}
	cmd.Flags().StringVar(&funcName, "func", "", "disassemble a single named function")
	return cmd
}
