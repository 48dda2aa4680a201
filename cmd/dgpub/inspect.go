package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/aretw0/dgpub"
	"github.com/aretw0/introspection"
	"github.com/spf13/cobra"
)

var inspectScan bool

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print the internal state of the publisher as JSON",
	Long: `Assemble the publisher from the current configuration and print the state
of the service and its adapters. With --scan (the default) a dry-run pass is
performed first so counters reflect the source directory.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		opts, err := buildOptions(cmd)
		if err != nil {
			fatal("Error loading configuration", err)
		}
		opts = append(opts, dgpub.WithDryRun(true))

		publisher, err := dgpub.Open(opts...)
		if err != nil {
			fatal("Error initializing publisher", err)
		}

		if inspectScan {
			if _, err := publisher.Service.Run(context.Background()); err != nil {
				fatal("Error scanning", err)
			}
		}

		state := map[string]any{}
		for name, c := range map[string]any{
			"service":     publisher.Service,
			"source":      publisher.Source,
			"destination": publisher.Destination,
		} {
			if intro, ok := c.(introspection.Introspectable); ok {
				state[name] = intro.State()
			}
		}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(state); err != nil {
			fatal("Error encoding JSON", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringVar(&sourceDir, "source", "", "Directory holding the source notes (default ./origin)")
	inspectCmd.Flags().StringVar(&distDir, "dist", "", "Publish root (default ./dist)")
	inspectCmd.Flags().BoolVar(&inspectScan, "scan", true, "Perform a dry-run pass before printing")
}
