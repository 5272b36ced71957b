package services

import (
	"context"

	"github.com/desertthunder/musicbrief/internal/models"
	"github.com/desertthunder/musicbrief/internal/stream"
)

// Generator produces music briefs from free-text ideas.
type Generator interface {
	// Generate sends idea and waits for the complete brief.
	Generate(ctx context.Context, idea string) (*models.Brief, error)

	// GenerateStream sends idea to the streaming endpoint and reports every chunk, error, and result
	// event to onEvent in arrival order. It returns the final brief once the stream completes.
	GenerateStream(ctx context.Context, idea string, onEvent func(stream.Event)) (*models.Brief, error)
}

// PDFRenderer turns a brief into a PDF document.
type PDFRenderer interface {
	RenderPDF(ctx context.Context, brief *models.Brief) ([]byte, error)
}

var (
	_ Generator   = (*GeneratorService)(nil)
	_ PDFRenderer = (*GeneratorService)(nil)
)
