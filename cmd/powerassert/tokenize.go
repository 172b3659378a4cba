package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"powerassert/internal/diagfmt"
	"powerassert/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file",
	Short: "Tokenize a source file or expression",
	Long:  `Tokenize breaks a source file (or --expr) into tokens with their trivia and display columns`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	tokenizeCmd.Flags().StringP("expr", "e", "", "tokenize an expression instead of a file")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	expr, err := cmd.Flags().GetString("expr")
	if err != nil {
		return fmt.Errorf("failed to get expr flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	var result *driver.TokenizeResult
	switch {
	case cmd.Flags().Changed("expr"):
		result = driver.TokenizeString(expr, maxDiagnostics)
	case len(args) == 1:
		result, err = driver.Tokenize(args[0], maxDiagnostics)
		if err != nil {
			return fmt.Errorf("tokenization failed: %w", err)
		}
	default:
		return fmt.Errorf("no input: pass a file or --expr")
	}

	if err := printDiagnostics(cmd, result.Bag, result.FileSet); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch format {
	case "pretty":
		return diagfmt.FormatTokensPretty(out, result.Tokens, result.FileSet)
	case "json":
		return diagfmt.FormatTokensJSON(out, result.Tokens, result.FileSet)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
