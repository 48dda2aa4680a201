package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/dgpub"
	"github.com/aretw0/dgpub/pkg/adapters/fs"
	"github.com/aretw0/dgpub/pkg/core"
	"github.com/spf13/cobra"
)

var (
	debounce time.Duration
	resync   string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Publish continuously as source notes change",
	Long: `Run one publish pass, then another one every time the source directory
changes, until interrupted. Bursts of changes are folded into a single pass.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		opts, err := buildOptions(cmd)
		if err != nil {
			fatal("Error loading configuration", err)
		}
		if cmd.Flags().Changed("resync") {
			opts = append(opts, dgpub.WithResync(resync))
		}

		publisher, err := dgpub.Open(opts...)
		if err != nil {
			fatal("Error initializing publisher", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		slog.Info("watching for changes", "debounce", debounce)
		err = publisher.Watch(ctx, func(report core.Report) {
			if err := printReport(os.Stdout, report); err != nil {
				slog.Error("failed to print report", "error", err)
			}
		}, fs.WithDebounce(debounce))
		if err != nil {
			fatal("Error watching", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	addPublishFlags(watchCmd)
	watchCmd.Flags().StringVar(&resync, "resync", "", "Cron schedule for full passes, e.g. \"@every 10m\" (default from config)")
	watchCmd.Flags().DurationVar(&debounce, "debounce", fs.DefaultDebounce, "Quiet period before a pass is triggered")
}
