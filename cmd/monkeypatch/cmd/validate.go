package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/NotAdityaPawar/monkeypatch/parser"
	"github.com/NotAdityaPawar/monkeypatch/validation"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a description document",
	Long: `Check a JSON or YAML description document against the document schema
and the supported format versions.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		validator, err := validation.NewDocumentValidator()
		if err != nil {
			return err
		}

		var res *validation.ValidationResult
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			res, err = validator.ValidateYAML(data)
		default:
			res, err = validator.ValidateJSON(data)
		}
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if !res.Valid {
			for _, e := range res.Errors {
				fmt.Fprintf(out, "  %s: %s\n", e.Path, e.Message)
			}
			return fmt.Errorf("%s: %d schema violations", path, len(res.Errors))
		}

		doc, err := parser.ParseFile(path)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s: valid (format %s, %d descriptions)\n", path, doc.FormatVersion, len(doc.Descriptions))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
