package main

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"powerassert/internal/version"
)

type versionPayload struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show powerassert build information",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := cmd.Flags().GetString("format")
		if err != nil {
			return fmt.Errorf("failed to get format flag: %w", err)
		}
		full, err := cmd.Flags().GetBool("full")
		if err != nil {
			return fmt.Errorf("failed to get full flag: %w", err)
		}
		payload := collectVersion(full)
		switch strings.ToLower(format) {
		case "json":
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(payload)
		case "pretty":
			colored, err := useColor(cmd, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			renderVersionPretty(cmd.OutOrStdout(), payload, colored)
			return nil
		default:
			return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
		}
	},
}

func init() {
	versionCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	versionCmd.Flags().Bool("full", false, "include git commit and build date")
}

func collectVersion(full bool) versionPayload {
	v := strings.TrimSpace(version.Version)
	if v == "" {
		v = "dev"
	}
	p := versionPayload{Tool: "powerassert", Version: v, GoVersion: runtime.Version()}
	if full {
		p.GitCommit = valueOrUnknown(strings.TrimSpace(version.GitCommit))
		p.BuildDate = valueOrUnknown(strings.TrimSpace(version.BuildDate))
	}
	return p
}

func renderVersionPretty(out io.Writer, p versionPayload, colored bool) {
	orig := color.NoColor
	color.NoColor = !colored
	defer func() { color.NoColor = orig }()

	fmt.Fprintf(out, "powerassert %s (%s)\n", version.Colored(), p.GoVersion)
	if p.GitCommit != "" {
		fmt.Fprintf(out, "commit: %s\n", p.GitCommit)
	}
	if p.BuildDate != "" {
		fmt.Fprintf(out, "built:  %s\n", p.BuildDate)
	}
}

func valueOrUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
