package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/desertthunder/musicbrief/internal/formatter"
	"github.com/desertthunder/musicbrief/internal/shared"
	"golang.org/x/time/rate"
)

// BatchOpts contains configuration for generating several briefs in one run.
type BatchOpts struct {
	Format    string              // Export format: json, markdown, txt, csv
	OutputDir string              // Output directory (default: briefs_{epoch})
	RateLimit float64             // Requests per second (default: 0.5)
	Stream    bool                // Use the streaming endpoint for each idea
	Title     formatter.TitleFunc // Section titles for markdown and txt exports
}

// BatchItemResult is the outcome for one idea of a batch.
type BatchItemResult struct {
	Idea    string `json:"idea"`
	File    string `json:"file,omitempty"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// BatchResult summarizes a batch run. It is also written as the manifest.
type BatchResult struct {
	Total           int               `json:"total"`
	Succeeded       int               `json:"succeeded"`
	Failed          int               `json:"failed"`
	Format          string            `json:"format"`
	OutputDirectory string            `json:"output_directory"`
	Items           []BatchItemResult `json:"items"`
	ManifestPath    string            `json:"-"`
}

// Batch generates a brief for each idea, one cycle at a time, waiting on a rate limiter between requests.
//
// A failed idea is recorded and the batch continues. Cancelling ctx stops before the next idea; the
// manifest is still written for the ideas already processed.
func (e *BriefEngine) Batch(ctx context.Context, ideas []string, opts BatchOpts, progress chan<- ProgressUpdate) (*BatchResult, error) {
	if len(ideas) == 0 {
		return nil, fmt.Errorf("%w: no ideas to generate", shared.ErrMissingArgument)
	}
	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("briefs_%d", time.Now().Unix())
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 0.5
	}
	if opts.Format == "" {
		opts.Format = "json"
	}
	if _, ok := batchExtensions[opts.Format]; !ok {
		return nil, fmt.Errorf("%w: unsupported batch format %q", shared.ErrInvalidArgument, opts.Format)
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &BatchResult{
		Total:           len(ideas),
		Format:          opts.Format,
		OutputDirectory: opts.OutputDir,
		Items:           make([]BatchItemResult, 0, len(ideas)),
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	total := len(ideas)

	var stopErr error
	for i, idea := range ideas {
		if err := limiter.Wait(ctx); err != nil {
			stopErr = err
			break
		}

		e.sendProgress(progress, batchItemUpdate(i+1, total, idea))

		item := BatchItemResult{Idea: idea}
		path, err := e.batchOne(ctx, i+1, idea, opts)
		if err != nil {
			item.Error = err.Error()
			result.Failed++
			e.sendProgress(progress, batchItemFailedUpdate(i+1, total, idea, err))
		} else {
			item.File, item.Success = path, true
			result.Succeeded++
			e.sendProgress(progress, batchItemDoneUpdate(i+1, total, idea, path))
		}
		result.Items = append(result.Items, item)
	}

	manifestPath := filepath.Join(opts.OutputDir, "manifest.json")
	if err := writeManifest(result, manifestPath); err != nil {
		return result, fmt.Errorf("batch completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath

	return result, stopErr
}

var batchExtensions = map[string]string{
	"json":     "json",
	"markdown": "md",
	"txt":      "txt",
	"csv":      "csv",
}

func (e *BriefEngine) batchOne(ctx context.Context, n int, idea string, opts BatchOpts) (string, error) {
	brief, err := e.Run(ctx, RunOpts{Idea: idea, Stream: opts.Stream}, nil)
	if err != nil {
		return "", err
	}

	path := filepath.Join(opts.OutputDir, fmt.Sprintf("brief-%03d.%s", n, batchExtensions[opts.Format]))
	switch opts.Format {
	case "markdown":
		return formatter.WriteMarkdownExport(brief, idea, path, opts.Title)
	case "txt":
		return formatter.WriteTextExport(brief, path, opts.Title)
	case "csv":
		return formatter.WriteCSVExport(brief, path)
	default:
		return formatter.WriteJSONExport(brief, path)
	}
}

func writeManifest(result *BatchResult, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
