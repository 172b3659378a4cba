package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"powerassert/internal/diagram"
	"powerassert/internal/driver"
	"powerassert/internal/interp"
	"powerassert/internal/source"
)

var evalCmd = &cobra.Command{
	Use:   "eval [flags] expression",
	Short: "Evaluate an assertion and render its power-assert diagram",
	Long: `Eval rewrites the expression, evaluates the instrumented form with the
reference interpreter and prints the diagram of every captured value.
Variables are bound with --var name=value, where value is itself an
expression.`,
	Example: `  powerassert eval --var 'xs=[1, 2, 3]' 'xs.count == 4'`,
	Args:    cobra.ExactArgs(1),
	RunE:    runEval,
}

func init() {
	evalCmd.Flags().StringArray("var", nil, "bind a variable: name=expression (repeatable)")
	evalCmd.Flags().Int("max-value-width", 40, "truncate rendered values to this width (0=unlimited)")
	evalCmd.Flags().Bool("always", false, "print the diagram even when the assertion holds")
}

// assertion is the outcome of evaluating one condition.
type assertion struct {
	Value   interp.Value
	Passed  bool
	Line    string
	Records []interp.Record
}

func (a *assertion) Diagram(opts diagram.Options) string {
	values := make([]diagram.Value, len(a.Records))
	for i, r := range a.Records {
		values[i] = diagram.Value{Column: r.Column, Text: interp.Format(r.Value)}
	}
	return diagram.Render(a.Line, values, opts)
}

// evaluate rewrites expr as the condition of #keyword(...), binds vars and
// evaluates it. Columns refer to the displayed invocation line.
func evaluate(expr string, vars []string, cfg *config, opts driver.Options) (*assertion, error) {
	prefix := "#" + cfg.Keyword + "("
	opts.Capture.StartColumnOffset = source.StringWidth(prefix)
	res, err := driver.RewriteExpr(expr, opts)
	if err != nil {
		return nil, err
	}

	env := interp.NewEnv(interp.Builtins())
	in := interp.New(env, opts.Capture.Table)
	for _, kv := range vars {
		name, value, ok := strings.Cut(kv, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --var %q (expected name=expression)", kv)
		}
		v, err := in.EvalString(value)
		if err != nil {
			return nil, fmt.Errorf("--var %s: %w", name, err)
		}
		env.Set(name, v)
	}

	rec := &interp.Recorder{}
	rec.Bind(env, opts.Capture.Callee)
	v, err := in.Eval(res.Output)
	if err != nil {
		return nil, fmt.Errorf("evaluation failed: %w", err)
	}
	passed, ok := v.(bool)
	if !ok {
		return nil, fmt.Errorf("condition must be Bool, got %s", interp.Format(v))
	}
	return &assertion{
		Value:   v,
		Passed:  passed,
		Line:    prefix + expr + ")",
		Records: rec.Records(),
	}, nil
}

func runEval(cmd *cobra.Command, args []string) error {
	vars, err := cmd.Flags().GetStringArray("var")
	if err != nil {
		return fmt.Errorf("failed to get var flag: %w", err)
	}
	width, err := cmd.Flags().GetInt("max-value-width")
	if err != nil {
		return fmt.Errorf("failed to get max-value-width flag: %w", err)
	}
	always, err := cmd.Flags().GetBool("always")
	if err != nil {
		return fmt.Errorf("failed to get always flag: %w", err)
	}

	cfg, err := configFromFlags(cmd)
	if err != nil {
		return err
	}
	opts, err := cfg.driverOptions(cmd)
	if err != nil {
		return err
	}

	endEval := timings.Track("evaluate")
	result, err := evaluate(args[0], vars, cfg, opts)
	endEval("")
	if err != nil {
		return err
	}
	styled, err := useColor(cmd, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !result.Passed || always {
		fmt.Fprint(out, result.Diagram(diagram.Options{MaxValueWidth: width, Styled: styled}))
	}
	if result.Passed {
		return status(cmd, "assertion passed")
	}
	verdict := color.New(color.FgRed, color.Bold)
	if styled {
		verdict.EnableColor()
	} else {
		verdict.DisableColor()
	}
	verdict.Fprintln(out, "assertion failed")
	return fmt.Errorf("assertion failed")
}
