// Package cmd provides the CLI for the entity format resolver.
package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/hashgraph-online/conversational-agent-sub001/core/config"
)

var (
	flagConfig  string
	flagNetwork string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "hol-resolve",
	Short: "Hedera entity format resolver",
	Long:  `Detects the format of Hedera entity references and converts them between the encodings tools expect.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if flagVerbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to YAML config file")
	rootCmd.PersistentFlags().StringVar(&flagNetwork, "network", "", "target network (mainnet, testnet, previewnet)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig resolves the effective configuration from the config file and
// the --network override.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if flagConfig != "" {
		loaded, err := config.Load(flagConfig)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if flagNetwork != "" {
		cfg.Network = flagNetwork
	}
	return cfg, nil
}
