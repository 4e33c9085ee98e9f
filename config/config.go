// Package config loads the settings of a measurement run.
package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"

	"github.com/theflywheel/chainhash"
)

// Output formats understood by the CLI
const (
	OutputText  = "text"
	OutputTable = "table"
	OutputJSON  = "json"
)

// Config holds everything needed to build a table and measure it.
// A TableSize of zero means the size is asked for interactively.
type Config struct {
	TableSize int    `yaml:"table_size" env:"CHAINHASH_TABLE_SIZE" env-default:"0"`
	WordsFile string `yaml:"words_file" env:"CHAINHASH_WORDS_FILE" env-default:"words.txt"`
	Hash      string `yaml:"hash" env:"CHAINHASH_HASH" env-default:"java"`
	Seed      int64  `yaml:"seed" env:"CHAINHASH_SEED" env-default:"0"`
	Batches   []int  `yaml:"batches" env:"CHAINHASH_BATCHES" env-default:"10,20,30,40,50"`
	Output    string `yaml:"output" env:"CHAINHASH_OUTPUT" env-default:"text"`
	LogLevel  string `yaml:"log_level" env:"CHAINHASH_LOG_LEVEL" env-default:"info"`
	Metrics   bool   `yaml:"metrics" env:"CHAINHASH_METRICS" env-default:"false"`
}

// Load reads the YAML file at path, if any, then applies the environment
// and defaults.
func Load(path string) (Config, error) {
	var cfg Config

	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		return cfg, nil
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return cfg, fmt.Errorf("read env: %w", err)
	}
	return cfg, nil
}

// Validate reports every invalid setting at once
func (c Config) Validate() error {
	var err error

	if c.TableSize < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: got %d", chainhash.ErrInvalidSize, c.TableSize))
	}
	if _, hashErr := chainhash.HashFuncByName(c.Hash); hashErr != nil {
		err = multierr.Append(err, hashErr)
	}
	for _, n := range c.Batches {
		if n < 0 {
			err = multierr.Append(err, fmt.Errorf("batch size must not be negative: got %d", n))
		}
	}
	switch c.Output {
	case OutputText, OutputTable, OutputJSON:
	default:
		err = multierr.Append(err, fmt.Errorf("unknown output format %q", c.Output))
	}
	if _, lvlErr := zapcore.ParseLevel(c.LogLevel); lvlErr != nil {
		err = multierr.Append(err, fmt.Errorf("invalid log level: %w", lvlErr))
	}

	return err
}
