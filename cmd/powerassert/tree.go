package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"powerassert/internal/driver"
	"powerassert/internal/syntax"
)

var treeCmd = &cobra.Command{
	Use:   "tree [flags] expression",
	Short: "Print the folded syntax tree of an expression",
	Long: `Tree parses the expression, folds operator sequences with the configured
precedence table and dumps the tree. With --rewritten the instrumented tree
is printed instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTree,
}

func init() {
	treeCmd.Flags().Bool("rewritten", false, "dump the instrumented tree")
	treeCmd.Flags().Bool("compact", false, "print the tree on one line")
	treeCmd.Flags().String("file", "", "read the expression from a file (- for stdin)")
}

func runTree(cmd *cobra.Command, args []string) error {
	rewritten, err := cmd.Flags().GetBool("rewritten")
	if err != nil {
		return fmt.Errorf("failed to get rewritten flag: %w", err)
	}
	compact, err := cmd.Flags().GetBool("compact")
	if err != nil {
		return fmt.Errorf("failed to get compact flag: %w", err)
	}
	src, err := treeInput(cmd, args)
	if err != nil {
		return err
	}

	cfg, err := configFromFlags(cmd)
	if err != nil {
		return err
	}
	opts, err := cfg.driverOptions(cmd)
	if err != nil {
		return err
	}

	var n *syntax.Node
	if rewritten {
		res, rerr := driver.RewriteExpr(src, opts)
		if err := printDiagnostics(cmd, res.Bag, res.FileSet); err != nil {
			return err
		}
		if rerr != nil {
			return rerr
		}
		n = res.Output
	} else {
		fs, _, folded, bag := driver.ParseExpr(src, opts.Capture.Table, opts.MaxDiagnostics)
		if err := printDiagnostics(cmd, bag, fs); err != nil {
			return err
		}
		if folded == nil {
			return fmt.Errorf("cannot parse expression %q", src)
		}
		n = folded
	}

	out := cmd.OutOrStdout()
	if compact {
		_, err := fmt.Fprintln(out, syntax.Dump(n))
		return err
	}
	return syntax.DumpTree(out, n)
}

func treeInput(cmd *cobra.Command, args []string) (string, error) {
	path, err := cmd.Flags().GetString("file")
	if err != nil {
		return "", fmt.Errorf("failed to get file flag: %w", err)
	}
	switch {
	case path != "" && len(args) > 0:
		return "", fmt.Errorf("--file cannot be combined with an expression argument")
	case path == "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	case path != "":
		// #nosec G304 -- path is provided by the user
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", path, err)
		}
		return string(data), nil
	case len(args) == 1:
		return args[0], nil
	}
	return "", fmt.Errorf("no input: pass an expression or --file")
}
