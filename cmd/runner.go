package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/trackferry/trackferry/internal/catalog"
	"github.com/trackferry/trackferry/internal/pacing"
	"github.com/trackferry/trackferry/internal/shared"
	"github.com/trackferry/trackferry/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	client     catalog.Client
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
	limiter    *pacing.Limiter
	quota      *pacing.Quota
	costs      pacing.Costs
	engine     *tasks.TransferEngine
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Client     catalog.Client
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
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

	transfer := opts.Config.Transfer
	quotaCfg := opts.Config.Quota

	limiter := pacing.NewLimiter(
		transfer.CallsPerSecond,
		time.Duration(transfer.WindowSeconds)*time.Second,
		transfer.MaxPerWindow,
	)
	quota := pacing.NewQuota(quotaCfg.DailyBudget)
	costs := pacing.Costs{
		Search: quotaCfg.SearchCost,
		Insert: quotaCfg.InsertCost,
		Create: quotaCfg.CreateCost,
	}

	runner := &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		client:     opts.Client,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
		limiter:    limiter,
		quota:      quota,
		costs:      costs,
	}
	runner.engine = runner.rebuildEngine()

	return runner
}

// rebuildEngine constructs a transfer engine around the runner's current
// catalog client. Called again after auth login swaps the client.
func (r *Runner) rebuildEngine() *tasks.TransferEngine {
	transfer := r.config.Transfer
	return tasks.NewTransferEngine(r.client, r.limiter, r.quota, r.costs, tasks.Options{
		MaxRetries:       transfer.MaxRetries,
		BatchSize:        transfer.BatchSize,
		ItemLimit:        transfer.ItemLimit,
		SimThreshold:     transfer.SimThreshold,
		OverlapThreshold: transfer.OverlapThreshold,
		PreFilter:        true,
	}, r.logger)
}

// SetLogger swaps the runner's logger, used to redirect logs away from
// the terminal while a TUI owns it.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, catalogCommand, transferCommand, runsCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
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

	if _, err := r.output.Write(output); err != nil {
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

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
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
