package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"powerassert/internal/diag"
	"powerassert/internal/diagfmt"
	"powerassert/internal/source"
)

// printDiagnostics выводит диагностики в stderr. Информационные сообщения
// о деградациях показываются только без --quiet.
func printDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet) error {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if quiet && !bag.HasErrors() && !bag.HasWarnings() {
		return nil
	}
	color, err := useColor(cmd, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	bag.Sort()
	diagfmt.Pretty(cmd.ErrOrStderr(), bag, fs, diagfmt.PrettyOpts{
		Color:     color,
		Context:   1,
		ShowNotes: true,
	})
	return nil
}
