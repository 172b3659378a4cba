package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// status печатает строку итога в stderr, если не задан --quiet
func status(cmd *cobra.Command, format string, args ...any) error {
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if quiet {
		return nil
	}
	enabled, err := useColor(cmd, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	c := color.New(color.FgGreen, color.Bold)
	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	_, err = c.Fprintf(cmd.ErrOrStderr(), format+"\n", args...)
	return err
}
