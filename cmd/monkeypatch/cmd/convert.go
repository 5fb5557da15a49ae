package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/NotAdityaPawar/monkeypatch/function/dto"
	"github.com/NotAdityaPawar/monkeypatch/parser"
)

var (
	convertTo     string
	convertOutput string
)

var convertCmd = &cobra.Command{
	Use:   "convert <file>",
	Short: "Re-encode a description document as JSON or YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := parser.ParseFile(args[0])
		if err != nil {
			return err
		}

		var b []byte
		switch convertTo {
		case "json":
			b, err = dto.EncodeJSON(doc)
		case "yaml", "yml":
			b, err = dto.EncodeYAML(doc)
		default:
			return fmt.Errorf("unknown output format %q: expected json or yaml", convertTo)
		}
		if err != nil {
			return err
		}

		if convertOutput == "" {
			_, err = cmd.OutOrStdout().Write(b)
			return err
		}
		if err := os.WriteFile(convertOutput, b, 0o600); err != nil {
			return fmt.Errorf("failed to write %s: %w", convertOutput, err)
		}
		return nil
	},
}

func init() {
	convertCmd.Flags().StringVar(&convertTo, "to", "json", "output format (json or yaml)")
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "write to file instead of stdout")
	rootCmd.AddCommand(convertCmd)
}
