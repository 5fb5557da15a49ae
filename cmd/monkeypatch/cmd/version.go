package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NotAdityaPawar/monkeypatch"
	"github.com/NotAdityaPawar/monkeypatch/function/dto"
	"github.com/NotAdityaPawar/monkeypatch/parser"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "monkeypatch %s\n", monkeypatch.Version)
		fmt.Fprintf(out, "document format %s (reads %s)\n", dto.FormatVersion, parser.SupportedFormats)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
