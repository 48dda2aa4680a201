package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/aretw0/dgpub"
	"github.com/aretw0/dgpub/pkg/core"
	"github.com/spf13/cobra"
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Run a single publish pass (the default command)",
	Args:  cobra.NoArgs,
	Run:   runPublish,
}

func init() {
	rootCmd.AddCommand(publishCmd)
	addPublishFlags(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) {
	opts, err := buildOptions(cmd)
	if err != nil {
		fatal("Error loading configuration", err)
	}

	report, err := dgpub.Run(context.Background(), opts...)
	if err != nil {
		fatal("Error publishing", err)
	}

	if err := printReport(cmd.OutOrStdout(), report); err != nil {
		fatal("Error printing report", err)
	}
}

func printReport(w io.Writer, report core.Report) error {
	if asJSON {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(report)
	}

	if dryRun {
		if showDiff {
			for _, res := range report.Results {
				if res.Outcome == core.OutcomeWouldUpdate {
					writeDiff(w, res)
				}
			}
		}
		_, err := fmt.Fprintf(w, "%d files would be updated\n", report.WouldUpdate)
		return err
	}

	_, err := fmt.Fprintln(w, report.String())
	return err
}
