package main

import (
	"github.com/spf13/cobra"
)

var configFile string

// NewRootCmd creates the root command. Running tcc with no arguments
// starts the REPL.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tcc",
		Short: "tcc - a scripting engine for 3D game worlds",
		Long: `tcc runs .tcc scripts that build a 3D game world: scene objects,
NPCs, a player, and small math and physics simulations.`,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configFile, cmd.Flags())
			if err != nil {
				return err
			}
			return runRepl(cmd.Context(), cfg)
		},
	}
	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	registerConfigFlags(cmd.PersistentFlags())

	cmd.AddCommand(NewRunCmd())
	cmd.AddCommand(NewReplCmd())
	cmd.AddCommand(NewDisCmd())
	return cmd
}
