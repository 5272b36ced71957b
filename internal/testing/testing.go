// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/musicbrief/internal/models"
	"github.com/desertthunder/musicbrief/internal/stream"
)

// MockGenerator is a test double for services.Generator and services.PDFRenderer.
//
// GenerateStream replays Chunks as chunk events and then either StreamErr as an error event or Brief
// as the done event.
type MockGenerator struct {
	Brief     *models.Brief
	Chunks    []string
	StreamErr string
	Err       error
	PDF       []byte

	mu    sync.Mutex
	ideas []string
}

func (m *MockGenerator) record(idea string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ideas = append(m.ideas, idea)
}

// Ideas returns every idea the mock received, in call order.
func (m *MockGenerator) Ideas() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.ideas...)
}

func (m *MockGenerator) Generate(ctx context.Context, idea string) (*models.Brief, error) {
	m.record(idea)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Brief, nil
}

func (m *MockGenerator) GenerateStream(ctx context.Context, idea string, onEvent func(stream.Event)) (*models.Brief, error) {
	m.record(idea)
	if m.Err != nil {
		return nil, m.Err
	}

	emit := func(ev stream.Event) {
		if onEvent != nil {
			onEvent(ev)
		}
	}

	for _, c := range m.Chunks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		emit(stream.Event{Kind: stream.Chunk, Text: c})
	}

	if m.StreamErr != "" {
		emit(stream.Event{Kind: stream.Error, Text: m.StreamErr})
		return nil, errors.New(m.StreamErr)
	}

	emit(stream.Event{Kind: stream.Done, Result: m.Brief})
	return m.Brief, nil
}

func (m *MockGenerator) RenderPDF(ctx context.Context, brief *models.Brief) ([]byte, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.PDF, nil
}

// MustBrief parses raw as a brief or fails the test.
func MustBrief(t *testing.T, raw string) *models.Brief {
	t.Helper()
	brief, err := models.ParseBrief([]byte(raw))
	if err != nil {
		t.Fatalf("failed to parse brief %s: %v", raw, err)
	}
	return brief
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
