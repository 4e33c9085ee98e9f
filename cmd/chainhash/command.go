package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/theflywheel/chainhash"
	"github.com/theflywheel/chainhash/config"
	"github.com/theflywheel/chainhash/harness"
	"github.com/theflywheel/chainhash/wordlist"
)

var errInvalidSizeInput = errors.New("table size must be an integer")

// newCommand returns the root command. fs is where the word list is read from.
func newCommand(fs afero.Fs) *cobra.Command {
	var (
		cfgPath  string
		flagCfg  config.Config
		logLevel string
	)

	cmd := &cobra.Command{
		Use:   "chainhash",
		Short: "measure search cost in a separately chained hash table",
		Long: `chainhash loads a word list into a fixed-size hash table that resolves
collisions by separate chaining, then times random searches and reports
elapsed time and probe counts.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			overrideFromFlags(cmd, &cfg, flagCfg, logLevel)
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger, err := newLogger(cfg.LogLevel)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			return run(cmd, fs, cfg, logger)
		},
	}

	cmd.Flags().StringVar(&cfgPath, "config", "", "path to config.yaml")
	cmd.Flags().IntVar(&flagCfg.TableSize, "size", 0, "number of buckets (prompted for when unset)")
	cmd.Flags().StringVar(&flagCfg.WordsFile, "words", "words.txt", "line-delimited word list to load")
	cmd.Flags().StringVar(&flagCfg.Hash, "hash", "java", "hash function: java, fnv1a or xxhash")
	cmd.Flags().Int64Var(&flagCfg.Seed, "seed", 0, "random seed for picking search keys (0 seeds from the clock)")
	cmd.Flags().IntSliceVar(&flagCfg.Batches, "batches", []int{10, 20, 30, 40, 50}, "batch search sizes")
	cmd.Flags().StringVar(&flagCfg.Output, "output", config.OutputText, "report format: text, table or json")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log level")
	cmd.Flags().BoolVar(&flagCfg.Metrics, "metrics", false, "print prometheus metrics after the report")

	return cmd
}

func overrideFromFlags(cmd *cobra.Command, cfg *config.Config, flags config.Config, logLevel string) {
	changed := cmd.Flags().Changed
	if changed("size") {
		cfg.TableSize = flags.TableSize
	}
	if changed("words") {
		cfg.WordsFile = flags.WordsFile
	}
	if changed("hash") {
		cfg.Hash = flags.Hash
	}
	if changed("seed") {
		cfg.Seed = flags.Seed
	}
	if changed("batches") {
		cfg.Batches = flags.Batches
	}
	if changed("output") {
		cfg.Output = flags.Output
	}
	if changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if changed("metrics") {
		cfg.Metrics = flags.Metrics
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	return zc.Build()
}

func run(cmd *cobra.Command, fs afero.Fs, cfg config.Config, logger *zap.Logger) error {
	out := cmd.OutOrStdout()

	size := cfg.TableSize
	if size == 0 {
		var err error
		if size, err = promptTableSize(cmd.InOrStdin(), out); err != nil {
			return err
		}
	}

	hashFn, err := chainhash.HashFuncByName(cfg.Hash)
	if err != nil {
		return err
	}
	table, err := chainhash.New(size, chainhash.WithHashFunc(hashFn))
	if err != nil {
		return err
	}

	words, err := wordlist.Load(fs, cfg.WordsFile)
	if err != nil {
		logger.Error("loading words failed", zap.String("path", cfg.WordsFile), zap.Error(err))
		fmt.Fprintf(out, "Error reading the words file: %v\n", err)
		return nil
	}

	table.InsertAll(words...)
	stats := table.Stats()
	logger.Info("table loaded",
		zap.String("hash", cfg.Hash),
		zap.Int("size", stats.Size),
		zap.Int("entries", stats.Entries),
		zap.Int("empty_buckets", stats.EmptyBuckets),
		zap.Int("longest_chain", stats.LongestChain),
		zap.Float64("load_factor", stats.LoadFactor))

	opts := []harness.Option{harness.WithLogger(logger)}
	if cfg.Seed != 0 {
		opts = append(opts, harness.WithSeed(cfg.Seed))
	}

	reg := prometheus.NewRegistry()
	if cfg.Metrics {
		obs, err := harness.NewPromObserver(reg)
		if err != nil {
			return fmt.Errorf("failed to register metrics: %w", err)
		}
		opts = append(opts, harness.WithObserver(obs))
	}

	h := harness.New(table, opts...)

	var report harness.Report
	single, err := h.SingleSearch(words)
	switch {
	case errors.Is(err, harness.ErrNoKeys):
		logger.Warn("word list is empty, skipping searches", zap.String("path", cfg.WordsFile))
	case err != nil:
		return err
	default:
		report.Single = &single
		for _, n := range cfg.Batches {
			batch, err := h.BatchSearch(words, n)
			if err != nil {
				return err
			}
			report.Batches = append(report.Batches, batch)
		}
	}

	if err := writeReport(out, cfg.Output, report); err != nil {
		return err
	}

	if cfg.Metrics {
		return dumpMetrics(out, reg)
	}
	return nil
}

func promptTableSize(in io.Reader, out io.Writer) (int, error) {
	fmt.Fprint(out, "Enter table size: ")

	var size int
	if _, err := fmt.Fscan(in, &size); err != nil {
		return 0, fmt.Errorf("%w: %w", errInvalidSizeInput, err)
	}
	if size <= 0 {
		return 0, fmt.Errorf("%w: got %d", chainhash.ErrInvalidSize, size)
	}
	return size, nil
}

func writeReport(w io.Writer, format string, report harness.Report) error {
	switch format {
	case config.OutputTable:
		return harness.WriteTable(w, report)
	case config.OutputJSON:
		return harness.WriteJSON(w, report)
	default:
		return harness.WriteText(w, report)
	}
}

func dumpMetrics(w io.Writer, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	return nil
}
