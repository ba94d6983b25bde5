package commands

import (
	"fmt"
	"runtime"

	"github.com/conduit-lang/chartdata/internal/cache"
	"github.com/conduit-lang/chartdata/internal/cli/config"
	"github.com/conduit-lang/chartdata/internal/logging"
	"github.com/conduit-lang/chartdata/pkg/datatable"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = "unknown"
)

// app is the state shared by every subcommand of one invocation
type app struct {
	configPath string
	timezone   string
	logLevel   string
	cacheFlag  string
	noColor    bool

	cfg    *config.Config
	logger *zap.Logger
	cache  cache.Cache
}

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	cmd, _ := newRoot()
	return cmd
}

func newRoot() (*cobra.Command, *app) {
	a := &app{logger: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:   "chartdata",
		Short: "Build and validate chart data tables",
		Long: color.CyanString(`chartdata - typed tables for chart renderers`) + `

chartdata turns table documents, SQL query results and spreadsheets into the
cols/rows JSON consumed by chart front-ends. Every column has a type, every
row is validated against it, and dates are encoded as Date(...) literals.`,
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: func(*cobra.Command, []string) error { return a.close() },
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Path to config file (default ./chartdata.yml)")
	flags.StringVar(&a.timezone, "timezone", "", "Timezone for tables that do not name one")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&a.cacheFlag, "cache", "", "Render cache backend: none, memory, redis")
	flags.BoolVar(&a.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(newTypesCommand(a))
	rootCmd.AddCommand(newRenderCommand(a))
	rootCmd.AddCommand(newQueryCommand(a))
	rootCmd.AddCommand(newXLSXCommand(a))
	rootCmd.AddCommand(newInspectCommand(a))
	rootCmd.AddCommand(newCacheCommand(a))

	return rootCmd, a
}

// setup loads configuration, applies flag overrides and builds the logger
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	if a.timezone != "" {
		cfg.Timezone = a.timezone
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.cacheFlag != "" {
		cfg.Cache.Backend = a.cacheFlag
	}

	logger, err := logging.New(logging.Options{
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
	})
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger.With(zap.String("command", cmd.Name()))

	if cfg.Timezone != "" && !datatable.SetDefaultTimezone(cfg.Timezone) {
		a.logger.Warn("timezone ignored",
			zap.String("timezone", cfg.Timezone),
			zap.String("using", datatable.DefaultTimezone()))
	}

	return nil
}

// renderCache opens the configured cache on first use
func (a *app) renderCache() (cache.Cache, error) {
	if a.cache != nil {
		return a.cache, nil
	}

	c, err := cache.New(a.cfg.Cache)
	if err != nil {
		return nil, err
	}
	if a.cfg.Cache.Backend == config.CacheMemory {
		a.logger.Warn("memory cache is discarded when the command exits; use redis to reuse renders across runs")
	}
	a.cache = c
	return c, nil
}

func (a *app) close() error {
	var err error
	if a.cache != nil {
		err = a.cache.Close()
		a.cache = nil
	}
	_ = a.logger.Sync()
	return err
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display the chartdata version, Git commit, build date, and Go version",
		Run: func(cmd *cobra.Command, args []string) {
			goVer := GoVersion
			if goVer == "unknown" {
				goVer = runtime.Version()
			}

			title := color.New(color.FgCyan, color.Bold)
			out := cmd.OutOrStdout()

			title.Fprint(out, "chartdata version: ")
			fmt.Fprintln(out, Version)
			title.Fprint(out, "Git commit: ")
			fmt.Fprintln(out, GitCommit)
			title.Fprint(out, "Build date: ")
			fmt.Fprintln(out, BuildDate)
			title.Fprint(out, "Go version: ")
			fmt.Fprintln(out, goVer)
		},
	}
}

// Execute runs the root command
func Execute() error {
	rootCmd, a := newRoot()
	defer a.close()

	if err := rootCmd.Execute(); err != nil {
		writeError(rootCmd.ErrOrStderr(), err, a.noColor)
		return err
	}
	return nil
}
