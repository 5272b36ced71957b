package tasks

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/musicbrief/internal/models"
	"github.com/desertthunder/musicbrief/internal/services"
	"github.com/desertthunder/musicbrief/internal/shared"
	"github.com/desertthunder/musicbrief/internal/stream"
	"golang.org/x/time/rate"
)

// RunOpts selects what a generation cycle sends and how.
type RunOpts struct {
	Idea   string // sent as typed; only its trimmed form is validated
	Stream bool   // use the streaming endpoint
}

// BriefRecorder stores generated briefs. [repositories.BriefRepository] satisfies it.
type BriefRecorder interface {
	Create(record *models.BriefRecord) error
}

// BriefEngine runs generation cycles against a [services.Generator].
type BriefEngine struct {
	generator services.Generator
	recorder  BriefRecorder
	logger    *log.Logger
}

// NewBriefEngine creates an engine. recorder may be nil to disable history.
func NewBriefEngine(generator services.Generator, recorder BriefRecorder) *BriefEngine {
	return &BriefEngine{
		generator: generator,
		recorder:  recorder,
		logger:    log.New(io.Discard),
	}
}

// SetLogger replaces the engine logger, which defaults to discarding output.
func (e *BriefEngine) SetLogger(l *log.Logger) {
	if l != nil {
		e.logger = l
	}
}

// sendProgress sends a progress update through the channel without blocking.
func (e *BriefEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Run performs one generation cycle and returns the brief.
//
// An idea that is blank after trimming fails with [shared.ErrEmptyIdea] before anything is sent.
// On success the brief is recorded when a recorder is configured; recording failures are logged and ignored.
func (e *BriefEngine) Run(ctx context.Context, opts RunOpts, progress chan<- ProgressUpdate) (*models.Brief, error) {
	if e.generator == nil {
		return nil, fmt.Errorf("%w: generator not initialized", shared.ErrMissingConfig)
	}
	if err := shared.ValidateIdea(opts.Idea); err != nil {
		return nil, err
	}

	e.sendProgress(progress, submitUpdate(opts))
	e.logger.Info("generating brief", "idea", shared.Truncate(opts.Idea, 60), "stream", opts.Stream)

	var (
		brief *models.Brief
		err   error
	)
	if opts.Stream {
		brief, err = e.runStream(ctx, opts.Idea, progress)
	} else {
		brief, err = e.generator.Generate(ctx, opts.Idea)
	}

	if err != nil {
		e.sendProgress(progress, failedUpdate(err))
		return nil, err
	}

	e.sendProgress(progress, completeUpdate(brief))
	e.logger.Info("brief generated", "sections", brief.Len())

	e.record(opts, brief)
	return brief, nil
}

func (e *BriefEngine) runStream(ctx context.Context, idea string, progress chan<- ProgressUpdate) (*models.Brief, error) {
	var (
		text   strings.Builder
		chunks int
	)
	logChunk := rate.Sometimes{First: 1, Interval: 500 * time.Millisecond}

	return e.generator.GenerateStream(ctx, idea, func(ev stream.Event) {
		if ev.Kind != stream.Chunk {
			return
		}
		chunks++
		text.WriteString(ev.Text)
		logChunk.Do(func() {
			e.logger.Debug("streaming", "chunks", chunks, "chars", text.Len())
		})
		e.sendProgress(progress, streamingUpdate(chunks, text.String()))
	})
}

func (e *BriefEngine) record(opts RunOpts, brief *models.Brief) {
	if e.recorder == nil {
		return
	}
	rec := models.NewBriefRecord(opts.Idea, brief, opts.Stream)
	if err := e.recorder.Create(rec); err != nil {
		e.logger.Warn("failed to save brief to history", "error", err)
		return
	}
	e.logger.Debug("brief saved to history", "id", rec.ID())
}
