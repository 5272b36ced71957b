package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/desertthunder/musicbrief/internal/shared"
	"github.com/desertthunder/musicbrief/internal/tasks"
	"github.com/desertthunder/musicbrief/internal/ui"
	"github.com/urfave/cli/v3"
)

// Batch generates one brief per idea in --file and writes them with a manifest.
func (r *Runner) Batch(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("file")
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: failed to open %s: %v", shared.ErrInvalidInput, path, err)
	}
	defer f.Close()

	ideas, err := readIdeas(f)
	if err != nil {
		return fmt.Errorf("%w: failed to read %s: %v", shared.ErrInvalidInput, path, err)
	}

	engine, err := r.engine(cmd)
	if err != nil {
		return err
	}

	opts := tasks.BatchOpts{
		Format:    cmd.String("format"),
		OutputDir: cmd.String("out"),
		RateLimit: cmd.Float("rate"),
		Stream:    cmd.Bool("stream"),
		Title:     ui.SectionTitle,
	}

	r.logger.Info("starting batch", "ideas", len(ideas), "format", opts.Format, "rate", opts.RateLimit)

	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			switch update.Phase {
			case tasks.BatchItem:
				r.logger.Info(update.Message)
			case tasks.BatchItemDone, tasks.BatchItemFailed:
				r.writePlain("%s\n", update.Message)
			}
		}
	}()

	result, err := engine.Batch(ctx, ideas, opts, progressCh)
	close(progressCh)
	<-done

	if result == nil {
		return err
	}

	if cmd.Bool("json") {
		if werr := r.writeJSON(result, true); werr != nil {
			return werr
		}
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader("Batch Complete!")
	r.writePlain("Succeeded: %d/%d\n", result.Succeeded, result.Total)
	if result.Failed > 0 {
		r.writePlain("Failed: %d\n", result.Failed)
	}
	r.writePlain("Output: %s\n", result.OutputDirectory)
	if result.ManifestPath != "" {
		r.writePlain("Manifest: %s\n", result.ManifestPath)
	}
	return err
}

// readIdeas returns one idea per non-blank line, skipping lines that start with #.
func readIdeas(rd io.Reader) ([]string, error) {
	var ideas []string
	scanner := bufio.NewScanner(rd)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ideas = append(ideas, line)
	}
	return ideas, scanner.Err()
}
