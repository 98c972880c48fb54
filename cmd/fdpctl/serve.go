package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/fdp/facade"
	"github.com/rustyeddy/fdp/facade/transport"
	"github.com/rustyeddy/fdp/manifest"
)

var serveApp string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Connect to the broker and dispatch messages for one app",
	Long: `serve validates the system manifest, connects to the configured
broker, subscribes to every message the named app listens for, and logs
each one as it arrives. It runs until interrupted.`,
	RunE: serveRun,
}

func init() {
	serveCmd.Flags().StringVar(&serveApp, "app", "", "app name to run (required)")
	serveCmd.MarkFlagRequired("app")
}

func serveRun(cmd *cobra.Command, args []string) error {
	cfg, def, _, err := loadSystem(configPath)
	if err != nil {
		return err
	}

	app, ok := def.Manifest(serveApp)
	if !ok {
		return fmt.Errorf("serve: unknown app %q", serveApp)
	}

	tr := transport.New(transport.Config{
		Broker:       cfg.MQTT.Broker,
		ClientID:     cfg.MQTT.ClientID,
		CleanSession: cfg.MQTT.CleanSession,
	})

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := tr.Connect(ctx); err != nil {
		return fmt.Errorf("serve: connecting to broker: %w", err)
	}

	logger := appLogger()
	client := facade.New(tr, logger)

	for _, ref := range app.ListenedEvents {
		topic, err := topicFor(def, ref, manifest.ModuleBroadcastedEvents)
		if err != nil {
			return err
		}
		if err := facade.RegisterCallback(client, ctx, topic, loggingHandler(logger, topic)); err != nil {
			return fmt.Errorf("serve: registering %q: %w", topic, err)
		}
	}

	logger.Info("fdpctl serving", "app", serveApp, "broker", cfg.MQTT.Broker)
	if err := client.Start(ctx, tr); err != nil {
		return fmt.Errorf("serve: event loop: %w", err)
	}
	return nil
}

// topicFor resolves the wire topic a reference points at, by looking up
// the referenced declaration on its owning app.
func topicFor(def *manifest.SystemDefinition, ref manifest.MessageReference, module string) (string, error) {
	target, ok := def.Manifest(ref.AppName)
	if !ok {
		return "", fmt.Errorf("serve: reference to unknown app %q", ref.AppName)
	}

	var decls []manifest.MessageDeclaration
	switch module {
	case manifest.ModuleBroadcastedEvents:
		decls = target.BroadcastedEvents
	case manifest.ModuleIncomingRequests:
		decls = target.IncomingRequests
	}
	for _, d := range decls {
		if d.Identifier == ref.Identifier {
			return d.Topic, nil
		}
	}
	return "", fmt.Errorf("serve: reference to unknown declaration %q on app %q", ref.Identifier, ref.AppName)
}

func loggingHandler(logger *slog.Logger, topic string) func(json.RawMessage) {
	return func(payload json.RawMessage) {
		logger.Info("received message", "topic", topic, "payload", string(payload))
	}
}
