package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jguan/hoststat/pkg/config"
	"github.com/jguan/hoststat/pkg/infra/logger"
	"github.com/jguan/hoststat/pkg/infra/metrics"
	"github.com/jguan/hoststat/pkg/sample"
)

var (
	cliVersion   = "dev"
	cliBuildDate = "unknown"
	cliGitCommit = "unknown"
)

// selectionFlags mirrors the six metric flags.
type selectionFlags struct {
	perCPU bool
	avgCPU bool
	memory bool
	swap   bool
	diskIO bool
	netIO  bool
}

func (f selectionFlags) Selection() sample.Selection {
	return sample.Selection{
		sample.KindPerCPU:        f.perCPU,
		sample.KindAvgCPU:        f.avgCPU,
		sample.KindVirtualMemory: f.memory,
		sample.KindSwapMemory:    f.swap,
		sample.KindDiskIO:        f.diskIO,
		sample.KindNetIO:         f.netIO,
	}
}

type RootCommand struct {
	cmd       *cobra.Command
	cfg       *config.Config
	opts      *OutputOptions
	v         *viper.Viper
	selection selectionFlags
	source    metrics.Source
	waiter    sample.Waiter
}

type RootOption func(*RootCommand)

// WithSource replaces the gopsutil-backed metrics source.
func WithSource(s metrics.Source) RootOption {
	return func(r *RootCommand) {
		r.source = s
	}
}

// WithWaiter replaces the timer used for the shared rate window.
func WithWaiter(w sample.Waiter) RootOption {
	return func(r *RootCommand) {
		r.waiter = w
	}
}

func NewRootCommand(opts ...RootOption) *RootCommand {
	root := &RootCommand{
		opts: NewOutputOptions(),
		v:    viper.New(),
	}
	for _, opt := range opts {
		opt(root)
	}

	cmd := &cobra.Command{
		Use:   "hoststat",
		Short: "Print a one-line summary of host load",
		Long: `hoststat samples the selected host metrics once and prints them
on a single line, ready to embed in a status bar or shell prompt.

Counter-based metrics (-i, -k) share one sampling window, so asking
for both costs the same time as asking for one. A metric that cannot
be read is left out of the line.`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		PersistentPreRunE: root.persistentPreRunE,
		RunE:              root.run,
	}

	flags := cmd.Flags()
	flags.BoolVarP(&root.selection.perCPU, "per-cpu", "p", false, "Per CPU %")
	flags.BoolVarP(&root.selection.avgCPU, "avg-cpu", "a", false, "Avg CPU %")
	flags.BoolVarP(&root.selection.memory, "memory", "m", false, "Mem Usage")
	flags.BoolVarP(&root.selection.swap, "swap", "w", false, "Swap Mem Usage")
	flags.BoolVarP(&root.selection.diskIO, "disk-io", "i", false, "IO Usage")
	flags.BoolVarP(&root.selection.netIO, "net-io", "k", false, "Net Usage")

	pflags := cmd.PersistentFlags()
	pflags.StringP("output", "o", string(OutputText), "Output format (text, json, yaml)")
	pflags.String("config", "", "Config file path (TOML)")
	pflags.String("disk-device", "", "Disk device for -i, or \"all\" (default from config: sda)")
	pflags.String("log-level", "", "Log level (debug, info, warn, error)")

	bindFlags(root.v, pflags, "output", "config", "disk-device", "log-level")
	// Settings kept in the config file take their HOSTSTAT_* variables in
	// config.Load; viper only resolves the two that live outside it.
	_ = root.v.BindEnv("output", "HOSTSTAT_OUTPUT")
	_ = root.v.BindEnv("config", "HOSTSTAT_CONFIG")

	root.cmd = cmd
	cmd.AddCommand(NewVersionCommand(root))

	return root
}

// bindFlags makes an explicitly set flag win over any other source for name.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet, names ...string) {
	for _, name := range names {
		_ = v.BindPFlag(name, fs.Lookup(name))
	}
}

func (r *RootCommand) persistentPreRunE(cmd *cobra.Command, args []string) error {
	format, err := ParseOutputFormat(r.v.GetString("output"))
	if err != nil {
		return err
	}
	r.opts.Format = format

	cfg, err := config.Load(r.v.GetString("config"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if d := r.v.GetString("disk-device"); d != "" {
		cfg.Sampling.DiskDevice = d
	}
	if l := r.v.GetString("log-level"); l != "" {
		cfg.Logging.Level = l
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	r.cfg = cfg

	logger.Init(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	return nil
}

func (r *RootCommand) run(cmd *cobra.Command, args []string) error {
	ctx := logger.SetRunID(cmd.Context(), uuid.NewString())

	req := sample.NewRequest(r.selection.Selection())
	results := r.coordinator().Run(ctx, req)
	logUnavailable(ctx, req, results)

	return PrintReport(req, results, r.opts)
}

func (r *RootCommand) coordinator() *sample.Coordinator {
	source := r.source
	if source == nil {
		source = metrics.NewSource()
	}
	waiter := r.waiter
	if waiter == nil {
		waiter = sample.NewWaiter()
	}

	return sample.NewCoordinator(
		sample.NewInstantSampler(source, r.cfg.Sampling.CPUWindowD),
		sample.NewRateSampler(source,
			sample.WithWaiter(waiter),
			sample.WithWindow(r.cfg.Sampling.RateWindowD),
			sample.WithDiskDevice(r.cfg.Sampling.DiskDevice),
		),
	)
}

func logUnavailable(ctx context.Context, req sample.Request, results sample.Results) {
	log := logger.WithContext(logger.SetComponent(ctx, "cli"))
	for _, kind := range req.Kinds() {
		res := results[kind]
		if res.Available() {
			continue
		}
		log.Debug("metric unavailable",
			"metric", kind.String(),
			"code", string(sample.CodeOf(res.Err)),
			"error", res.Err,
		)
	}
}

func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}

func (r *RootCommand) Config() *config.Config {
	return r.cfg
}

func (r *RootCommand) OutputOptions() *OutputOptions {
	return r.opts
}

func (r *RootCommand) SetOutputWriter(w io.Writer) {
	r.opts.Writer = w
}

func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

func (r *RootCommand) ExecuteContext(ctx context.Context) error {
	return r.cmd.ExecuteContext(ctx)
}

func Execute() {
	root := NewRootCommand()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if err := root.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func SetVersion(version, buildDate, gitCommit string) {
	cliVersion = version
	cliBuildDate = buildDate
	cliGitCommit = gitCommit
}

func GetVersion() string {
	return cliVersion
}

func GetBuildDate() string {
	return cliBuildDate
}

func GetGitCommit() string {
	return cliGitCommit
}
