package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"powerassert/internal/observ"
	"powerassert/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "powerassert",
	Short: "Power-assert instrumentation for assertion expressions",
	Long: `powerassert rewrites assertion conditions so that every meaningful
subexpression reports its value and display column, and renders the
resulting power-assert diagrams`,
	SilenceUsage:      true,
	PersistentPreRunE: setupRun,
}

// cleanups выполняются после Execute в обратном порядке
var cleanups []func()

// timings собирает фазы при --timings; nil-таймер ничего не делает
var timings *observ.Timer

func setupRun(cmd *cobra.Command, _ []string) error {
	stopTrace, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	cleanups = append(cleanups, stopTrace)

	stopProf, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	cleanups = append(cleanups, stopProf)

	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	if showTimings {
		timings = observ.NewTimer()
		cleanups = append(cleanups, func() {
			fmt.Fprint(cmd.ErrOrStderr(), timings.Summary())
		})
	}
	return nil
}

// main registers subcommands and persistent flags, then executes the root
// command. A failed command exits with status 1.
func main() {
	rootCmd.Version = version.Short()

	rootCmd.AddCommand(rewriteCmd)
	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	flags := rootCmd.PersistentFlags()
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.String("config", "", "path to powerassert.toml (default: search upward from the working directory)")
	flags.Bool("quiet", false, "suppress non-essential output")
	flags.Bool("timings", false, "show timing information")
	flags.Int("jobs", 0, "max parallel rewrites (0=auto)")
	flags.Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	flags.String("trace", "", "trace output path (- for stderr)")
	flags.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-mode", "stream", "trace storage mode (stream|ring|both)")
	flags.Int("trace-ring-size", 4096, "ring buffer size for --trace-mode=ring|both")
	flags.String("cpu-profile", "", "write CPU profile to file")
	flags.String("mem-profile", "", "write heap profile to file")
	flags.String("runtime-trace", "", "write Go runtime trace to file")

	err := rootCmd.Execute()
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
	if err != nil {
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor решает по --color, раскрашивать ли вывод в w
func useColor(cmd *cobra.Command, w io.Writer) (bool, error) {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch mode {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto", "":
		f, ok := w.(*os.File)
		return ok && isTerminal(f), nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
}
