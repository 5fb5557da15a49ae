package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NotAdityaPawar/monkeypatch/config"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "monkeypatch",
	Short: "Inspect model-backed function contracts",
	Long: `monkeypatch works with the contracts of functions whose bodies are
supplied by a generative backend.

It prints the Go declarations that contracts embed, and validates and
converts exported description documents.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./monkeypatch.yaml)")
}

// GetConfig returns the configuration loaded for the running command.
func GetConfig() *config.Config {
	return cfg
}
