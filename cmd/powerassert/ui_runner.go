package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"powerassert/internal/driver"
	"powerassert/internal/source"
	"powerassert/internal/ui"
)

type rewriteOutcome struct {
	fs      *source.FileSet
	results []driver.FileResult
	err     error
}

// runRewriteWithUI запускает driver.RewriteFiles, показывая прогресс по файлам
func runRewriteWithUI(ctx context.Context, title string, files []string, opts driver.Options) (*source.FileSet, []driver.FileResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan rewriteOutcome, 1)

	go func() {
		o := opts
		o.Progress = driver.ChannelSink{Ch: events}
		fs, results, err := driver.RewriteFiles(ctx, files, o)
		outcomeCh <- rewriteOutcome{fs: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	// если UI завершился раньше, дочитываем события, чтобы не блокировать driver
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fs, outcome.results, uiErr
	}
	return outcome.fs, outcome.results, outcome.err
}
