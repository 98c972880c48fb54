package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/fdp"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print fdpctl's version",
	RunE:  versionRun,
}

func versionRun(cmd *cobra.Command, args []string) error {
	fmt.Fprintln(cmd.OutOrStdout(), string(fdp.VersionJSON()))
	return nil
}
