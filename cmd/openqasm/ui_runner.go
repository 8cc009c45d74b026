package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"openqasm/internal/driver"
	"openqasm/internal/observ"
	"openqasm/internal/source"
	"openqasm/internal/ui"
)

type tokenizeOutcome struct {
	fs      *source.FileSet
	results []driver.TokenizeFileResult
	err     error
}

// runTokenizeWithUI runs TokenizeFiles while a progress view draws on stderr.
func runTokenizeWithUI(ctx context.Context, title string, files []string, opts driver.TokenizeOptions, timer *observ.Timer) (*source.FileSet, []driver.TokenizeFileResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan tokenizeOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		fs, results, err := driver.TokenizeFiles(ctx, files, optsCopy, timer)
		outcomeCh <- tokenizeOutcome{fs: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	if uiErr != nil {
		// дочитываем события, чтобы TokenizeFiles не заблокировался
		go func() {
			for range events { //nolint:revive
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fs, outcome.results, uiErr
	}
	return outcome.fs, outcome.results, outcome.err
}
