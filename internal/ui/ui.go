package ui

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/musicbrief/internal/formatter"
	"github.com/desertthunder/musicbrief/internal/models"
	"github.com/desertthunder/musicbrief/internal/services"
	"github.com/desertthunder/musicbrief/internal/shared"
	"github.com/desertthunder/musicbrief/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	InputView ViewState = iota
	GeneratingView
	ResultView
)

const (
	progressBuffer = 50
	copiedDuration = 2 * time.Second
	chromeHeight   = 7
)

var clipboardWrite = clipboard.WriteAll

// Engine runs one generation cycle, publishing progress on the channel.
type Engine interface {
	Run(ctx context.Context, opts tasks.RunOpts, progress chan<- tasks.ProgressUpdate) (*models.Brief, error)
}

var _ Engine = (*tasks.BriefEngine)(nil)

// Options configures exports and the initial streaming mode.
type Options struct {
	OutputDir        string
	JSONFilename     string
	PDFFilename      string
	MarkdownFilename string
	Stream           bool
}

// Model represents the TUI application state.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc
	view   ViewState
	engine Engine
	pdf    services.PDFRenderer
	opts   Options
	logger *log.Logger

	width  int
	height int

	input    textarea.Model
	spinner  spinner.Model
	viewport viewport.Model
	help     help.Model
	keys     keyMap

	example    int
	idea       string
	loading    bool
	streaming  bool
	streamText string
	brief      *models.Brief
	status     string
	err        error

	copied  bool
	copySeq int

	gen          int
	progressChan chan tasks.ProgressUpdate
	done         chan generationResult
}

// NewModel creates a new TUI model. pdf may be nil, in which case PDF export reports an error.
func NewModel(ctx context.Context, engine Engine, pdf services.PDFRenderer, opts Options) *Model {
	ctx, cancel := context.WithCancel(ctx)

	input := textarea.New()
	input.Placeholder = ExampleIdeas[0]
	input.ShowLineNumbers = false
	input.CharLimit = 500
	input.SetHeight(3)
	input.SetWidth(defaultWidth - 4)
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.title.UnsetMarginBottom()

	return &Model{
		ctx:      ctx,
		cancel:   cancel,
		view:     InputView,
		engine:   engine,
		pdf:      pdf,
		opts:     opts,
		logger:   log.New(io.Discard),
		width:    defaultWidth,
		input:    input,
		spinner:  sp,
		viewport: viewport.New(defaultWidth, 20),
		help:     help.New(),
		keys:     newKeyMap(),
	}
}

// SetLogger replaces the discard logger.
func (m *Model) SetLogger(l *log.Logger) {
	if l != nil {
		m.logger = l
	}
}

// Init starts the cursor blink in the idea input.
func (m *Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case InputView:
			return m.handleInputKeys(msg)
		case GeneratingView:
			if key.Matches(msg, m.keys.quit) {
				return m.quit()
			}
			return m, nil
		case ResultView:
			return m.handleResultKeys(msg)
		}

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case Msg:
		return m.handleMsg(msg)
	}

	if m.view == InputView {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgProgressUpdate:
		if msg.seq != m.gen {
			return m, nil
		}
		m.applyProgress(msg.data.(tasks.ProgressUpdate))
		return m, m.waitForProgress()

	case MsgGenerationComplete:
		if msg.seq != m.gen {
			return m, nil
		}
		res := msg.data.(generationResult)
		m.finishGeneration(res.brief, res.err)
		return m, nil

	case MsgExportComplete:
		res := msg.data.(exportResult)
		if res.err != nil {
			m.logger.Error("export failed", "format", res.label, "error", res.err)
			m.err = res.err
			m.status = ""
			return m, nil
		}
		m.logger.Info("export written", "format", res.label, "path", res.path)
		m.err = nil
		m.status = fmt.Sprintf("%s saved to %s", res.label, res.path)
		return m, nil

	case MsgCopiedExpired:
		if msg.seq == m.copySeq {
			m.copied = false
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) handleInputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.forceQuit):
		return m.quit()
	case key.Matches(msg, m.keys.generate):
		return m, m.startGeneration()
	case key.Matches(msg, m.keys.example):
		m.input.SetValue(ExampleIdeas[m.example%len(ExampleIdeas)])
		m.example++
		return m, nil
	case key.Matches(msg, m.keys.toggleStream):
		m.opts.Stream = !m.opts.Stream
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m.quit()
	case key.Matches(msg, m.keys.copy):
		return m, m.copyBrief()
	case key.Matches(msg, m.keys.saveJSON):
		return m, m.saveJSON()
	case key.Matches(msg, m.keys.savePDF):
		return m, m.savePDF()
	case key.Matches(msg, m.keys.saveMarkdown):
		return m, m.saveMarkdown()
	case key.Matches(msg, m.keys.newIdea):
		m.view = InputView
		m.brief = nil
		m.streamText = ""
		m.status = ""
		m.err = nil
		m.copied = false
		m.input.Reset()
		m.input.Focus()
		return m, textarea.Blink
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.cancel()
	return m, tea.Quit
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.input.SetWidth(max(width-4, minCardWidth))
	m.help.Width = width
	m.viewport.Width = width
	m.viewport.Height = max(height-chromeHeight, 3)
	if m.brief != nil {
		m.viewport.SetContent(RenderBrief(m.brief, width))
	}
}

// startGeneration launches the engine for the idea as typed. It does nothing while a cycle is running or
// when the idea is blank.
func (m *Model) startGeneration() tea.Cmd {
	idea := m.input.Value()
	if m.loading || shared.ValidateIdea(idea) != nil {
		return nil
	}
	if m.engine == nil {
		m.err = fmt.Errorf("%w: no generation engine", shared.ErrMissingConfig)
		return nil
	}

	m.gen++
	m.view = GeneratingView
	m.idea = idea
	m.loading = true
	m.streaming = m.opts.Stream
	m.streamText = ""
	m.brief = nil
	m.status = ""
	m.err = nil
	m.copied = false
	m.viewport.SetContent("")

	progress := make(chan tasks.ProgressUpdate, progressBuffer)
	done := make(chan generationResult, 1)
	m.progressChan = progress
	m.done = done

	ctx, engine := m.ctx, m.engine
	opts := tasks.RunOpts{Idea: idea, Stream: m.opts.Stream}
	go func() {
		brief, err := engine.Run(ctx, opts, progress)
		done <- generationResult{brief: brief, err: err}
		close(progress)
	}()

	m.logger.Info("generation started", "stream", opts.Stream, "idea", shared.Truncate(idea, 40))
	return tea.Batch(m.spinner.Tick, m.waitForProgress())
}

// waitForProgress pumps one update from the current cycle into the event loop. Once the channel
// closes it reports the engine's result instead.
func (m *Model) waitForProgress() tea.Cmd {
	gen, progress, done := m.gen, m.progressChan, m.done
	return func() tea.Msg {
		if progress == nil {
			return nil
		}
		update, ok := <-progress
		if !ok {
			res := <-done
			return generationCompleteMsg(gen, res.brief, res.err)
		}
		return progressUpdateMsg(gen, update)
	}
}

func (m *Model) applyProgress(update tasks.ProgressUpdate) {
	switch update.Phase {
	case tasks.Submit:
		m.status = update.Message
	case tasks.Streaming:
		m.status = update.Message
		if len(update.Text) >= len(m.streamText) {
			m.streamText = update.Text
		}
		m.viewport.SetContent(m.streamText)
		m.viewport.GotoBottom()
	case tasks.Complete:
		m.brief = update.Brief
	}
}

func (m *Model) finishGeneration(brief *models.Brief, err error) {
	m.loading = false
	m.streaming = false
	m.streamText = ""
	m.progressChan = nil
	m.done = nil

	if err != nil {
		m.logger.Error("generation failed", "error", err)
		m.view = InputView
		m.brief = nil
		m.err = err
		m.status = ""
		m.input.Focus()
		return
	}

	m.brief = brief
	m.status = ""
	m.view = ResultView
	m.input.Blur()
	m.viewport.SetContent(RenderBrief(brief, m.width))
	m.viewport.GotoTop()
}

func (m *Model) copyBrief() tea.Cmd {
	data, err := formatter.ExportToJSON(m.brief)
	if err != nil {
		m.err = err
		return nil
	}
	if err := clipboardWrite(string(data)); err != nil {
		m.err = fmt.Errorf("%w: %v", shared.ErrClipboard, err)
		return nil
	}

	m.err = nil
	m.copied = true
	m.copySeq++
	seq := m.copySeq
	return tea.Tick(copiedDuration, func(time.Time) tea.Msg {
		return copiedExpiredMsg(seq)
	})
}

func (m *Model) exportPath(name, fallback string) string {
	if name == "" {
		name = fallback
	}
	return filepath.Join(m.opts.OutputDir, name)
}

func (m *Model) saveJSON() tea.Cmd {
	brief, path := m.brief, m.exportPath(m.opts.JSONFilename, formatter.DefaultJSONFilename)
	return func() tea.Msg {
		written, err := formatter.WriteJSONExport(brief, path)
		return exportCompleteMsg("JSON", written, err)
	}
}

func (m *Model) saveMarkdown() tea.Cmd {
	brief, idea := m.brief, m.idea
	path := m.exportPath(m.opts.MarkdownFilename, formatter.DefaultMarkdownFilename)
	return func() tea.Msg {
		written, err := formatter.WriteMarkdownExport(brief, idea, path, SectionTitle)
		return exportCompleteMsg("Markdown", written, err)
	}
}

func (m *Model) savePDF() tea.Cmd {
	ctx, renderer, brief := m.ctx, m.pdf, m.brief
	path := m.exportPath(m.opts.PDFFilename, formatter.DefaultPDFFilename)
	m.status = "Rendering PDF..."
	return func() tea.Msg {
		if renderer == nil {
			return exportCompleteMsg("PDF", "", fmt.Errorf("%w: no PDF renderer", shared.ErrMissingConfig))
		}
		data, err := renderer.RenderPDF(ctx, brief)
		if err != nil {
			return exportCompleteMsg("PDF", "", err)
		}
		written, err := formatter.WritePDFExport(data, path)
		return exportCompleteMsg("PDF", written, err)
	}
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case InputView:
		return m.renderInput()
	case GeneratingView:
		return m.renderGenerating()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) renderHeader() string {
	mode := "off"
	if m.opts.Stream {
		mode = "on"
	}
	return styles.title.Render("🎵 Brief musical") + "\n" + styles.muted.Render("stream: "+mode)
}

func (m *Model) renderStatus() string {
	switch {
	case m.err != nil:
		return styles.err.Render("Error: " + m.err.Error())
	case m.copied:
		return styles.ok.Render("✓ Copied to clipboard")
	case m.status != "":
		return styles.ok.Render(m.status)
	default:
		return ""
	}
}

func (m *Model) renderInput() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if strings.TrimSpace(m.input.Value()) == "" {
		b.WriteString(styles.help.Render("Describe the track you want, or press tab for an example."))
		b.WriteString("\n")
	}
	if status := m.renderStatus(); status != "" {
		b.WriteString("\n" + status + "\n")
	}
	b.WriteString("\n" + m.help.ShortHelpView(m.keys.inputHelp()))
	return b.String()
}

func (m *Model) renderGenerating() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(styles.muted.Render("> " + shared.Truncate(m.idea, max(m.width-4, minCardWidth))))
	b.WriteString("\n\n")
	b.WriteString(m.spinner.View() + " " + m.status)
	if m.streaming && m.streamText != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.box.Render(m.viewport.View()))
	}
	b.WriteString("\n\n" + m.help.ShortHelpView([]key.Binding{m.keys.forceQuit}))
	return b.String()
}

func (m *Model) renderResult() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(styles.muted.Render("> " + shared.Truncate(m.idea, max(m.width-4, minCardWidth))))
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	if status := m.renderStatus(); status != "" {
		b.WriteString(status + "\n")
	}
	b.WriteString(m.help.ShortHelpView(m.keys.resultHelp()))
	return b.String()
}
