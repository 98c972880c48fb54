package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/fdp/artifact"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Validate the system manifest and print its Graphviz DOT graph",
	RunE:  graphRun,
}

func graphRun(cmd *cobra.Command, args []string) error {
	_, _, g, err := loadSystem(configPath)
	if err != nil {
		return err
	}

	dot, err := artifact.ToDOT(g)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), dot)
	return nil
}
