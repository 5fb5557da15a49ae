package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NotAdityaPawar/monkeypatch/function/sources"
)

var (
	sourceDir   string
	sourceTests bool
)

var sourceCmd = &cobra.Command{
	Use:   "source <import-path> <Type>",
	Short: "Print the declaration of a Go type",
	Long: `Print the declaration text of a named type, including its doc comment,
exactly as it is embedded in function contracts.

Packages are loaded with go/packages from --dir (default: sources.dir from
the config, or the current directory).`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		dir := cfg.Sources.Dir
		if cmd.Flags().Changed("dir") {
			dir = sourceDir
		}
		tests := cfg.Sources.Tests || sourceTests

		src := sources.NewPackageSource(
			sources.WithDir(dir),
			sources.WithTests(tests),
			sources.WithExclude(cfg.Sources.Exclude...),
			sources.WithLogger(cfg.Logger()),
		)
		text, err := src.Lookup(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	},
}

func init() {
	sourceCmd.Flags().StringVar(&sourceDir, "dir", "", "directory to resolve packages from")
	sourceCmd.Flags().BoolVar(&sourceTests, "tests", false, "include _test.go files")
	rootCmd.AddCommand(sourceCmd)
}
