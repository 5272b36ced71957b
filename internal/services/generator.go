package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/musicbrief/internal/models"
	"github.com/desertthunder/musicbrief/internal/shared"
	"github.com/desertthunder/musicbrief/internal/stream"
)

const (
	generatePath       = "/generate"
	generateStreamPath = "/generate-stream"
	generatePDFPath    = "/generate-pdf"
)

type generateRequest struct {
	Idea string `json:"idea"`
}

// GeneratorService implements [Generator] and [PDFRenderer] over HTTP.
type GeneratorService struct {
	api        *APIClient
	logger     *log.Logger
	bufferSize int
}

// NewGeneratorService creates a service for the API at baseURL. A nil client uses [http.DefaultClient].
func NewGeneratorService(baseURL string, client *http.Client) *GeneratorService {
	return &GeneratorService{
		api:        NewAPIClient(baseURL, client),
		logger:     log.New(io.Discard),
		bufferSize: stream.DefaultBufferSize,
	}
}

// SetLogger replaces the service logger, which defaults to discarding output.
func (g *GeneratorService) SetLogger(l *log.Logger) {
	if l != nil {
		g.logger = l
	}
}

// SetBufferSize sets the read size used for streamed responses.
func (g *GeneratorService) SetBufferSize(n int) {
	if n > 0 {
		g.bufferSize = n
	}
}

// BaseURL returns the API base URL requests are sent to.
func (g *GeneratorService) BaseURL() string {
	return g.api.BaseURL()
}

// Generate posts idea to /generate and parses the body as a brief.
//
// The status code is only consulted when the body is not a brief: a JSON object body is returned even
// with a non-2xx status.
func (g *GeneratorService) Generate(ctx context.Context, idea string) (*models.Brief, error) {
	body, err := encodeIdea(idea)
	if err != nil {
		return nil, err
	}

	g.logger.Debug("requesting brief", "url", g.api.BaseURL()+generatePath)

	resp, err := g.api.Post(ctx, generatePath, body, "application/json")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	brief, err := models.ParseBrief(resp.Body)
	if err != nil {
		if !resp.OK() {
			return nil, fmt.Errorf("%w: status %d", shared.ErrAPIRequest, resp.StatusCode)
		}
		if !resp.IsJSON {
			return nil, fmt.Errorf("%w: response is not JSON (content type %q)", shared.ErrInvalidBrief, resp.Headers.Get("Content-Type"))
		}
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidBrief, err)
	}

	if !resp.OK() {
		g.logger.Warn("accepting brief from non-success response", "status", resp.StatusCode)
	}

	g.logger.Debug("brief received", "sections", brief.Len())
	return brief, nil
}

// GenerateStream posts idea to /generate-stream and decodes the response as it arrives.
//
// Chunk, error, and done events are passed to onEvent (which may be nil); unrecognized lines are logged
// and dropped. Reading stops at the first error or done event.
func (g *GeneratorService) GenerateStream(ctx context.Context, idea string, onEvent func(stream.Event)) (*models.Brief, error) {
	body, err := encodeIdea(idea)
	if err != nil {
		return nil, err
	}

	g.logger.Debug("opening stream", "url", g.api.BaseURL()+generateStreamPath)

	resp, err := g.api.Open(ctx, generateStreamPath, body, "text/event-stream")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	var (
		result    *models.Brief
		streamErr string
		failed    bool
	)

	err = stream.Consume(resp.Body, g.bufferSize, func(ev stream.Event) bool {
		switch ev.Kind {
		case stream.Unrecognized:
			g.logger.Debug("skipping unrecognized stream line", "line", shared.Truncate(ev.Line, 80))
			return true
		case stream.Error:
			streamErr, failed = ev.Text, true
		case stream.Done:
			result = ev.Result
		}

		if onEvent != nil {
			onEvent(ev)
		}
		return ev.Kind == stream.Chunk
	})

	switch {
	case failed:
		return nil, fmt.Errorf("%w: %s", shared.ErrStreamFailed, streamErr)
	case result != nil:
		return result, nil
	case err != nil && !errors.Is(err, stream.ErrStopped):
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	default:
		return nil, shared.ErrStreamIncomplete
	}
}

// RenderPDF posts the brief to /generate-pdf and returns the document bytes.
func (g *GeneratorService) RenderPDF(ctx context.Context, brief *models.Brief) ([]byte, error) {
	if brief == nil {
		return nil, shared.ErrNoResult
	}

	resp, err := g.api.Post(ctx, generatePDFPath, brief.Raw(), "application/pdf")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if !resp.OK() {
		return nil, fmt.Errorf("%w: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}
	if len(resp.Body) == 0 {
		return nil, fmt.Errorf("%w: empty PDF response", shared.ErrAPIRequest)
	}

	g.logger.Debug("pdf rendered", "bytes", len(resp.Body), "content_type", resp.Headers.Get("Content-Type"))
	return resp.Body, nil
}

func encodeIdea(idea string) ([]byte, error) {
	if err := shared.ValidateIdea(idea); err != nil {
		return nil, err
	}
	body, err := json.Marshal(generateRequest{Idea: idea})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}
	return body, nil
}
