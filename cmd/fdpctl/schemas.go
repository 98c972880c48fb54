package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/fdp/artifact"
)

var (
	schemasApp    string
	schemasModule string
)

var schemasCmd = &cobra.Command{
	Use:   "schemas",
	Short: "Print the bundled JSON-Schema document for one app's module",
	RunE:  schemasRun,
}

func init() {
	schemasCmd.Flags().StringVar(&schemasApp, "app", "", "app name to bundle schemas for (required)")
	schemasCmd.Flags().StringVar(&schemasModule, "module", "broadcasted_events", "module to bundle: broadcasted_events, incoming_requests, or outgoing_responses")
	schemasCmd.MarkFlagRequired("app")
}

func schemasRun(cmd *cobra.Command, args []string) error {
	_, def, _, err := loadSystem(configPath)
	if err != nil {
		return err
	}

	doc, err := artifact.ToJSONSchemas(def, schemasApp, schemasModule)
	if err != nil {
		return err
	}

	encoded, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding schema bundle: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
	return nil
}
