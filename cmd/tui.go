package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/musicbrief/internal/shared"
	"github.com/desertthunder/musicbrief/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive brief generator.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(r.config.UI.LogFile)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	fileLogger.SetLevel(r.logger.GetLevel())
	r.SetLogger(fileLogger)

	engine, err := r.engine(cmd)
	if err != nil {
		return err
	}

	model := ui.NewModel(ctx, engine, r.pdf, ui.Options{
		OutputDir:        r.config.Output.Dir,
		JSONFilename:     r.config.Output.JSONFilename,
		PDFFilename:      r.config.Output.PDFFilename,
		MarkdownFilename: r.config.Output.MarkdownFilename,
		Stream:           r.config.UI.Stream && !cmd.Bool("no-stream"),
	})
	model.SetLogger(shared.WithLogger(fileLogger, "component", "tui"))

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
