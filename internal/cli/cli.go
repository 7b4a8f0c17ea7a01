package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/confgrab/internal/cache"
	"github.com/pfrederiksen/confgrab/internal/config"
	"github.com/pfrederiksen/confgrab/internal/details"
	"github.com/pfrederiksen/confgrab/internal/filter"
	"github.com/pfrederiksen/confgrab/internal/logger"
	"github.com/pfrederiksen/confgrab/internal/program"
	"github.com/pfrederiksen/confgrab/internal/scraper"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// options holds the flag values of one command tree.
type options struct {
	configPath string
	verbose    bool

	input     string
	output    string
	cacheDir  string
	cacheType string
	baseURL   string
	timeout   time.Duration
	days      []string
	rooms     []string
	chairs    []string
	titles    []string
	linked    bool
	sortOrder string
	format    string

	fetchURL    string
	fetchOutput string
}

// NewRootCmd creates the root command. Running it without a subcommand
// behaves like "confgrab parse".
func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "confgrab",
		Short: "Extract talk metadata from a conference program page",
		Long: `A CLI tool to extract talks from a conference program page.
Reads the per-day program tables, reconstructs row-spanning sessions, and
resolves each talk's abstract from its detail page through an on-disk cache.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (default ~/.confgrab/config.yaml)")
	cmd.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "Enable verbose logging")
	addParseFlags(cmd, opts)

	cmd.AddCommand(newParseCmd(opts), newDetailsCmd(), newFetchCmd(opts))

	return cmd
}

func addParseFlags(cmd *cobra.Command, opts *options) {
	cmd.Flags().StringVar(&opts.input, "input", config.DefaultInput, "Saved program page to parse")
	cmd.Flags().StringVar(&opts.output, "output", config.DefaultOutput, "JSON file to write")
	cmd.Flags().StringVar(&opts.cacheDir, "cache-dir", config.DefaultCacheDir, "Detail page cache location (directory or database file)")
	cmd.Flags().StringVar(&opts.cacheType, "cache-type", config.DefaultCacheType, "Cache backend: dir, sqlite or memory")
	cmd.Flags().StringVar(&opts.baseURL, "base-url", config.DefaultBaseURL, "Base URL for relative talk links")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", config.DefaultTimeout, "Timeout per detail page fetch")
	cmd.Flags().StringSliceVar(&opts.days, "day", nil, "Only include talks on these days (repeatable)")
	cmd.Flags().StringSliceVar(&opts.rooms, "room", nil, "Only include talks whose location contains this text (repeatable)")
	cmd.Flags().StringSliceVar(&opts.chairs, "chair", nil, "Only include talks whose session chair contains this text (repeatable)")
	cmd.Flags().StringSliceVar(&opts.titles, "title", nil, "Only include talks whose title contains this text (repeatable)")
	cmd.Flags().BoolVar(&opts.linked, "linked-only", false, "Only include talks with a detail page")
	cmd.Flags().StringVar(&opts.sortOrder, "sort", string(SortByDocument), "Sort order: document, time, room or title")
	cmd.Flags().StringVar(&opts.format, "format", string(FormatJSON), "Console output: json or table")
}

func newParseCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Parse a saved program page into a JSON file of talks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, opts)
		},
	}
	addParseFlags(cmd, opts)
	return cmd
}

func newDetailsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "details <cache-file>",
		Short: "Extract the abstract from one cached detail page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result := details.ExtractFile(args[0])
			fmt.Fprintln(cmd.OutOrStdout(), "--- Extracted Details ---")
			fmt.Fprintln(cmd.OutOrStdout(), result)
			return nil
		},
	}
}

func newFetchCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download the program page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.fetchURL, "url", "", "Program page URL (default from config)")
	cmd.Flags().StringVar(&opts.fetchOutput, "output", config.DefaultInput, "File to save the page to (default from config input)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", config.DefaultTimeout, "Request timeout")
	return cmd
}

// loadConfig reads the config file and overlays the flags the user set,
// as collected in overrides.
func loadConfig(opts *options, overrides *config.Config) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if opts.verbose {
		overrides.LogLevel = string(logger.LevelDebug)
	}
	cfg.Merge(overrides)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	return cfg, nil
}

// parseOverrides collects the parse flags given on the command line.
func parseOverrides(cmd *cobra.Command, opts *options) *config.Config {
	flags := &config.Config{}
	changed := cmd.Flags().Changed
	if changed("input") {
		flags.Input = opts.input
	}
	if changed("output") {
		flags.Output = opts.output
	}
	if changed("cache-dir") {
		flags.Cache.Location = opts.cacheDir
	}
	if changed("cache-type") {
		flags.Cache.Type = opts.cacheType
	}
	if changed("base-url") {
		flags.BaseURL = opts.baseURL
	}
	if changed("timeout") {
		flags.Timeout = opts.timeout
	}
	return flags
}

// fetchOverrides collects the fetch flags. The saved page becomes the
// configured input, so --output maps onto Input.
func fetchOverrides(cmd *cobra.Command, opts *options) *config.Config {
	flags := &config.Config{}
	changed := cmd.Flags().Changed
	if changed("url") {
		flags.ProgramURL = opts.fetchURL
	}
	if changed("output") {
		flags.Input = opts.fetchOutput
	}
	if changed("timeout") {
		flags.Timeout = opts.timeout
	}
	return flags
}

// newLogger builds the run's logger and installs it as the package default.
// The returned func restores the previous default.
func newLogger(cfg *config.Config, w io.Writer) (*logger.Logger, func(), error) {
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	log := logger.New(level, w)

	prev := logger.Default()
	logger.SetDefault(log)
	return log, func() { logger.SetDefault(prev) }, nil
}

func newScraper(cfg *config.Config) *scraper.Scraper {
	opts := []scraper.Option{scraper.WithTimeout(cfg.Timeout)}
	if cfg.UserAgent != "" {
		opts = append(opts, scraper.WithUserAgent(cfg.UserAgent))
	}
	if cfg.ProgramURL != "" {
		opts = append(opts, scraper.WithProgramURL(cfg.ProgramURL))
	}
	return scraper.New(opts...)
}

// runParse is the main command logic
func runParse(cmd *cobra.Command, opts *options) error {
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	format := OutputFormat(strings.ToLower(opts.format))
	if format != FormatJSON && format != FormatTable {
		return fmt.Errorf("invalid format: %s (must be 'json' or 'table')", opts.format)
	}
	order := SortOrder(strings.ToLower(opts.sortOrder))
	if !order.Valid() {
		return fmt.Errorf("invalid sort order: %s (must be 'document', 'time', 'room' or 'title')", opts.sortOrder)
	}

	days, err := filter.ParseDays(opts.days)
	if err != nil {
		return err
	}
	f := filter.NewFilter()
	f.Days = days
	f.Rooms = opts.rooms
	f.Chairs = opts.chairs
	f.Titles = opts.titles
	f.LinkedOnly = opts.linked

	cfg, err := loadConfig(opts, parseOverrides(cmd, opts))
	if err != nil {
		return err
	}

	log, restore, err := newLogger(cfg, stderr)
	if err != nil {
		return err
	}
	defer restore()
	log = log.With(logger.Fields{"command": "parse"})

	input, err := os.Open(cfg.Input)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(stderr, "Error: Input file '%s' not found. Save the program page there first (see 'confgrab fetch').\n", cfg.Input)
			return nil
		}
		return fmt.Errorf("opening input: %w", err)
	}
	defer input.Close()

	store, closer, err := cache.Open(cfg.Cache.Type, cfg.Cache.Location)
	if err != nil {
		return fmt.Errorf("initializing cache: %w", err)
	}
	defer func() {
		if err := closer.Close(); err != nil {
			logger.Error("closing cache failed", logger.Fields{"cache": cfg.Cache.Type}, err)
		}
	}()
	if dir, ok := store.(*cache.DirStore); ok {
		logger.Debug("using cache directory", logger.Fields{"dir": dir.Dir()})
	}

	base, err := cfg.ParsedBaseURL()
	if err != nil {
		return err
	}

	metrics := logger.NewMetrics()
	resolver := details.New(store, newScraper(cfg),
		details.WithBaseURL(base),
		details.WithLogger(log),
		details.WithMetrics(metrics),
	)
	parser := program.New(
		program.WithDetails(resolver.Resolve),
		program.WithLogger(log),
		program.WithMetrics(metrics),
	)

	log.Debug("parsing program", logger.Fields{
		"input": cfg.Input,
		"cache": cfg.Cache.Type,
		"filter": f.String(),
	})

	start := time.Now()
	records, err := parser.Parse(cmd.Context(), input)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", cfg.Input, err)
	}
	metrics.RecordTiming("program.parse", time.Since(start))

	records = f.Apply(records)
	sortTalks(records, order)
	if len(records) == 0 {
		logger.Warn("no talks found", logger.Fields{"input": cfg.Input, "filter": f.String()})
	}

	fmt.Fprintf(stdout, "Parsing complete. Found %d talks.\n", len(records))

	if err := WriteJSONFile(cfg.Output, records); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	fmt.Fprintf(stdout, "Successfully wrote all talk information to '%s'\n", cfg.Output)

	if format == FormatTable {
		fmt.Fprintln(stdout, RenderTable(records))
	}

	if opts.verbose {
		WriteMetrics(stderr, metrics.GetSnapshot())
	}

	return nil
}

func runFetch(cmd *cobra.Command, opts *options) error {
	cfg, err := loadConfig(opts, fetchOverrides(cmd, opts))
	if err != nil {
		return err
	}

	_, restore, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer restore()

	sc := newScraper(cfg)
	logger.Info("fetching program", logger.Fields{"url": sc.ProgramURL()})

	body, err := sc.FetchProgram(cmd.Context())
	if err != nil {
		return fmt.Errorf("downloading program: %w", err)
	}

	if err := os.WriteFile(cfg.Input, body, 0644); err != nil {
		return fmt.Errorf("saving program: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s to '%s' (%d bytes)\n", sc.ProgramURL(), cfg.Input, len(body))
	return nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
