package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/aretw0/dgpub"
	"github.com/aretw0/dgpub/pkg/config"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string

	sourceDir string
	distDir   string
	dryRun    bool
	showDiff  bool
	asJSON    bool
)

// rootCmd represents the base command when called without any subcommands.
// Without a subcommand it performs a single publish pass.
var rootCmd = &cobra.Command{
	Use:   "dgpub",
	Short: "Publish digital-garden notes from Markdown front matter",
	Long: `dgpub scans a directory of Markdown notes, keeps those whose front matter
sets dg: true, published: true and a dg_path, and writes their body to
<dist>/<dg_path>/index.md only when it differs from what is already there.`,
	Args:    cobra.NoArgs,
	Version: strings.TrimSpace(dgpub.Version),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
	Run: runPublish,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetVersionTemplate("dgpub version {{.Version}}\n")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a config file (default: ./"+config.DefaultFile+" if present)")
	addPublishFlags(rootCmd)
}

// addPublishFlags registers the flags shared by every command that runs a pass.
func addPublishFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&sourceDir, "source", "", "Directory holding the source notes (default ./origin)")
	cmd.Flags().StringVar(&distDir, "dist", "", "Publish root (default ./dist)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Decide without writing anything")
	cmd.Flags().BoolVar(&showDiff, "diff", false, "With --dry-run, print what would change")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the run report as JSON")
}

// buildOptions merges the config file with the flags explicitly set on cmd.
func buildOptions(cmd *cobra.Command) ([]dgpub.Option, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	opts := []dgpub.Option{
		dgpub.WithConfig(cfg),
		dgpub.WithLogger(slog.Default()),
	}
	if cmd.Flags().Changed("source") {
		opts = append(opts, dgpub.WithSource(sourceDir))
	}
	if cmd.Flags().Changed("dist") {
		opts = append(opts, dgpub.WithDist(distDir))
	}
	if cmd.Flags().Lookup("dry-run") != nil {
		opts = append(opts, dgpub.WithDryRun(dryRun))
	}
	return opts, nil
}
