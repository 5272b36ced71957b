package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/desertthunder/musicbrief/internal/formatter"
	"github.com/desertthunder/musicbrief/internal/models"
	"github.com/desertthunder/musicbrief/internal/shared"
	"github.com/desertthunder/musicbrief/internal/tasks"
	"github.com/desertthunder/musicbrief/internal/ui"
	"github.com/urfave/cli/v3"
)

const cardWidth = 80

// Generate runs one generation cycle for the idea given as arguments, prints the brief, and performs
// the requested exports.
func (r *Runner) Generate(ctx context.Context, cmd *cli.Command) error {
	idea := strings.Join(cmd.Args().Slice(), " ")
	if err := shared.ValidateIdea(idea); err != nil {
		return fmt.Errorf("%w: an idea is required", shared.ErrMissingArgument)
	}

	engine, err := r.engine(cmd)
	if err != nil {
		return err
	}

	asJSON := cmd.Bool("json")
	opts := tasks.RunOpts{Idea: idea, Stream: cmd.Bool("stream")}

	progressCh := make(chan tasks.ProgressUpdate, 50)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		printed := 0
		for update := range progressCh {
			switch update.Phase {
			case tasks.Submit:
				r.logger.Info(update.Message)
			case tasks.Streaming:
				if asJSON || len(update.Text) <= printed {
					continue
				}
				r.writePlain("%s", update.Text[printed:])
				printed = len(update.Text)
			}
		}
		if printed > 0 {
			r.writePlain("\n\n")
		}
	}()

	brief, err := engine.Run(ctx, opts, progressCh)
	close(progressCh)
	wg.Wait()

	if err != nil {
		return err
	}

	if asJSON {
		data, err := formatter.ExportToJSON(brief)
		if err != nil {
			return err
		}
		if err := r.writeBytes(data); err != nil {
			return err
		}
	} else {
		r.writePlain("%s\n", ui.RenderBrief(brief, cardWidth))
	}

	return r.exportBrief(ctx, cmd, idea, brief)
}

// exportBrief performs the clipboard and file exports selected by flags.
func (r *Runner) exportBrief(ctx context.Context, cmd *cli.Command, idea string, brief *models.Brief) error {
	dir := cmd.String("out")
	if dir == "" {
		dir = r.config.Output.Dir
	}

	if cmd.Bool("copy") {
		data, err := formatter.ExportToJSON(brief)
		if err != nil {
			return err
		}
		if err := clipboardWrite(string(data)); err != nil {
			return fmt.Errorf("%w: %v", shared.ErrClipboard, err)
		}
		r.writePlain("✓ Copied to clipboard\n")
	}

	if cmd.Bool("save-json") {
		path, err := formatter.WriteJSONExport(brief, outputPath(dir, r.config.Output.JSONFilename, formatter.DefaultJSONFilename))
		if err != nil {
			return err
		}
		r.writePlain("✓ JSON saved to %s\n", path)
	}

	if cmd.Bool("markdown") {
		path := outputPath(dir, r.config.Output.MarkdownFilename, formatter.DefaultMarkdownFilename)
		written, err := formatter.WriteMarkdownExport(brief, idea, path, ui.SectionTitle)
		if err != nil {
			return err
		}
		r.writePlain("✓ Markdown saved to %s\n", written)
	}

	if cmd.Bool("save-pdf") {
		path := outputPath(dir, r.config.Output.PDFFilename, formatter.DefaultPDFFilename)
		if err := r.savePDF(ctx, brief, path, cmd.Bool("open")); err != nil {
			return err
		}
	} else if cmd.Bool("open") {
		r.logger.Warn("--open only applies with --save-pdf")
	}

	return nil
}

// PDF renders a brief JSON file through the API.
func (r *Runner) PDF(ctx context.Context, cmd *cli.Command) error {
	input := cmd.String("input")
	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("%w: failed to read %s: %v", shared.ErrInvalidInput, input, err)
	}

	brief, err := models.ParseBrief(data)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", shared.ErrInvalidBrief, input, err)
	}

	if err := r.setupServices(cmd); err != nil {
		return err
	}

	path := cmd.String("output")
	if path == "" {
		path = outputPath(r.config.Output.Dir, r.config.Output.PDFFilename, formatter.DefaultPDFFilename)
	}
	return r.savePDF(ctx, brief, path, cmd.Bool("open"))
}

func (r *Runner) savePDF(ctx context.Context, brief *models.Brief, path string, open bool) error {
	if r.pdf == nil {
		return fmt.Errorf("%w: PDF renderer not initialized", shared.ErrMissingConfig)
	}

	r.logger.Info("rendering PDF", "sections", brief.Len())
	data, err := r.pdf.RenderPDF(ctx, brief)
	if err != nil {
		return err
	}

	written, err := formatter.WritePDFExport(data, path)
	if err != nil {
		return err
	}
	r.writePlain("✓ PDF saved to %s\n", written)

	if open {
		if err := openFile(written); err != nil {
			r.logger.Warn("failed to open PDF", "path", written, "error", err)
		}
	}
	return nil
}

// Examples prints the built-in example ideas.
func (r *Runner) Examples(ctx context.Context, cmd *cli.Command) error {
	r.writePlainHeader("Example ideas")
	for i, idea := range ui.ExampleIdeas {
		r.writePlain("%d. %s\n", i+1, idea)
	}
	r.writePlain("\nTry: musicbrief generate \"%s\"\n", ui.ExampleIdeas[0])
	return nil
}

func outputPath(dir, name, fallback string) string {
	if name == "" {
		name = fallback
	}
	return filepath.Join(dir, name)
}
