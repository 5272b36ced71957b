package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/musicbrief/internal/repositories"
	"github.com/desertthunder/musicbrief/internal/services"
	"github.com/desertthunder/musicbrief/internal/shared"
	"github.com/desertthunder/musicbrief/internal/tasks"
	"github.com/urfave/cli/v3"
)

var (
	clipboardWrite = clipboard.WriteAll
	openFile       = shared.OpenFile
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	logger     *log.Logger
	output     io.Writer
	httpClient *http.Client
	generator  services.Generator
	pdf        services.PDFRenderer
	db         *sql.DB
	history    *repositories.BriefRepository
}

// RunnerOpts contains configuration options for creating a Runner.
//
// Generator and PDF are built from the config on first use when left nil.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Logger     *log.Logger
	Output     io.Writer
	HTTPClient *http.Client
	Generator  services.Generator
	PDF        services.PDFRenderer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		logger:     opts.Logger,
		output:     opts.Output,
		httpClient: opts.HTTPClient,
		generator:  opts.Generator,
		pdf:        opts.PDF,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		generateCommand, pdfCommand, examplesCommand, batchCommand, tuiCommand, historyCommand, setupCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// Before loads an explicit --config file and applies the configured log level. A missing file keeps
// the current config so setup can create it.
func (r *Runner) Before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.IsSet("config") {
		path := cmd.String("config")
		r.configPath = path
		if _, err := os.Stat(path); err != nil {
			r.logger.Warn("config file not found, using defaults", "path", path)
		} else {
			config, err := shared.LoadConfig(path)
			if err != nil {
				return ctx, err
			}
			config.ApplyEnv()
			r.config = config
		}
	}

	if r.config.LogLevel != "" {
		level, err := log.ParseLevel(r.config.LogLevel)
		if err != nil {
			r.logger.Warn("invalid log level, keeping default", "level", r.config.LogLevel)
		} else {
			shared.SetLogLevel(r.logger, level)
		}
	}
	return ctx, nil
}

// After closes the history database if a command opened it.
func (r *Runner) After(ctx context.Context, cmd *cli.Command) error {
	return r.Close()
}

// Close releases the history database.
func (r *Runner) Close() error {
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	r.history = nil
	return err
}

// SetLogger replaces the runner's logger, e.g. with a file logger while the TUI owns the terminal.
func (r *Runner) SetLogger(l *log.Logger) {
	if l != nil {
		r.logger = l
	}
}

// setupServices builds the generator from config unless one was injected. The --api-url flag wins over every
// other source of the base URL.
func (r *Runner) setupServices(cmd *cli.Command) error {
	if url := cmd.String("api-url"); url != "" && url != r.config.API.BaseURL {
		r.config.API.BaseURL = url
		r.generator = nil
		r.pdf = nil
	}
	if r.generator != nil && r.pdf != nil {
		return nil
	}

	timeout, err := r.config.Timeout()
	if err != nil {
		return err
	}
	client := r.httpClient
	if timeout > 0 {
		c := *client
		c.Timeout = timeout
		client = &c
	}

	svc := services.NewGeneratorService(r.config.API.BaseURL, client)
	svc.SetLogger(shared.WithLogger(r.logger, "service", "generator"))
	r.logger.Debug("generator configured", "base_url", svc.BaseURL(), "timeout", timeout)

	if r.generator == nil {
		r.generator = svc
	}
	if r.pdf == nil {
		r.pdf = svc
	}
	return nil
}

// openHistory opens the history database on first use.
func (r *Runner) openHistory() (*repositories.BriefRepository, error) {
	if r.history != nil {
		return r.history, nil
	}
	if !r.config.History.Enabled {
		return nil, fmt.Errorf("%w: history is disabled", shared.ErrMissingConfig)
	}

	db, err := shared.OpenHistory(r.config.History)
	if err != nil {
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	r.db = db
	r.history = repositories.NewBriefRepository(db)
	return r.history, nil
}

// engine builds a [tasks.BriefEngine] that records into history when it is enabled and available.
func (r *Runner) engine(cmd *cli.Command) (*tasks.BriefEngine, error) {
	if err := r.setupServices(cmd); err != nil {
		return nil, err
	}

	var recorder tasks.BriefRecorder
	if r.config.History.Enabled {
		if repo, err := r.openHistory(); err != nil {
			r.logger.Warn("history unavailable, briefs will not be saved", "error", err)
		} else {
			recorder = repo
		}
	}

	engine := tasks.NewBriefEngine(r.generator, recorder)
	engine.SetLogger(shared.WithLogger(r.logger, "task", "brief"))
	return engine, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	return r.writeBytes(output)
}

// writeBytes writes data followed by a newline.
func (r *Runner) writeBytes(data []byte) error {
	if _, err := r.output.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
