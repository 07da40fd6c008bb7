// Package config loads experiment settings from a YAML file with
// PRIMATE_* environment overrides.
//
// Precedence, lowest first: built-in defaults, the YAML file, environment.
// Relative paths resolve against DataDir; a relative DataDir resolves
// against the directory holding the config file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const appName = "primate"

// ConditionsConfig controls catalog discovery.
type ConditionsConfig struct {
	// Order lists condition IDs to schedule first; the rest follow
	// lexicographically.
	Order []string `yaml:"order" env:"PRIMATE_CONDITION_ORDER" envSeparator:","`
}

// PayoffConfig names the reward schedule files, one per card.
type PayoffConfig struct {
	Safe  string `yaml:"safe" env:"PRIMATE_PAYOFF_SAFE"`
	Risky string `yaml:"risky" env:"PRIMATE_PAYOFF_RISKY"`
}

// DispenserConfig describes the pellet dispenser. An empty Command disables
// dispensing.
type DispenserConfig struct {
	Command         string        `yaml:"command" env:"PRIMATE_DISPENSER_COMMAND"`
	Args            []string      `yaml:"args" env:"PRIMATE_DISPENSER_ARGS" envSeparator:" "`
	InterPelletWait time.Duration `yaml:"inter_pellet_wait" env:"PRIMATE_INTER_PELLET_WAIT"`
}

// TimingConfig holds the trial pacing.
type TimingConfig struct {
	// FeedbackWindow is the time from choice to blank screen, including
	// dispensing.
	FeedbackWindow  time.Duration `yaml:"feedback_window" env:"PRIMATE_FEEDBACK_WINDOW"`
	InterTrialBlank time.Duration `yaml:"inter_trial_blank" env:"PRIMATE_INTER_TRIAL_BLANK"`
}

// ServerConfig configures the read-only status API.
type ServerConfig struct {
	Addr string `yaml:"addr" env:"PRIMATE_SERVER_ADDR"`
}

// Config is the full runtime configuration.
type Config struct {
	DataDir      string `yaml:"data_dir" env:"PRIMATE_DATA_DIR"`
	ProgressFile string `yaml:"progress_file" env:"PRIMATE_PROGRESS_FILE"`
	VideoDir     string `yaml:"video_dir" env:"PRIMATE_VIDEO_DIR"`
	ImageDir     string `yaml:"image_dir" env:"PRIMATE_IMAGE_DIR"`
	TrialLogDir  string `yaml:"trial_log_dir" env:"PRIMATE_TRIAL_LOG_DIR"`
	LogDir       string `yaml:"log_dir" env:"PRIMATE_LOG_DIR"`
	Database     string `yaml:"database" env:"PRIMATE_DB"`
	TotalTrials  int    `yaml:"total_trials" env:"PRIMATE_TOTAL_TRIALS"`

	Conditions ConditionsConfig `yaml:"conditions"`
	Payoff     PayoffConfig     `yaml:"payoff"`
	Dispenser  DispenserConfig  `yaml:"dispenser"`
	Timing     TimingConfig     `yaml:"timing"`
	Server     ServerConfig     `yaml:"server"`

	// Path is the file the config was read from ("" when none existed).
	Path string `yaml:"-"`
}

// Default returns the built-in configuration rooted at dataDir.
func Default(dataDir string) *Config {
	return &Config{
		DataDir:      dataDir,
		ProgressFile: "subjects.json",
		VideoDir:     filepath.Join("res", "videos"),
		ImageDir:     filepath.Join("res", "images"),
		TrialLogDir:  "stats",
		LogDir:       "logs",
		Database:     appName + ".db",
		TotalTrials:  200,
		Payoff: PayoffConfig{
			Safe:  "EPGT_Payoff.csv",
			Risky: "EPGT_Payoff_Risky.csv",
		},
		Dispenser: DispenserConfig{
			InterPelletWait: 500 * time.Millisecond,
		},
		Timing: TimingConfig{
			FeedbackWindow:  5 * time.Second,
			InterTrialBlank: 10 * time.Second,
		},
		Server: ServerConfig{Addr: "127.0.0.1:8086"},
	}
}

// Load reads the config at path. When required is false a missing file is
// not an error and defaults are used.
func Load(path string, required bool) (*Config, error) {
	dataDir, err := DefaultDataDir()
	if err != nil {
		return nil, err
	}
	cfg := Default(dataDir)

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
		cfg.Path = path
	case errors.Is(err, fs.ErrNotExist) && !required:
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.resolvePaths(filepath.Dir(path))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the experiment cannot run with.
func (c *Config) Validate() error {
	if c.TotalTrials < 1 {
		return fmt.Errorf("config: total_trials must be at least 1, got %d", c.TotalTrials)
	}
	if c.ProgressFile == "" {
		return errors.New("config: progress_file is required")
	}
	if c.VideoDir == "" {
		return errors.New("config: video_dir is required")
	}
	if c.Dispenser.InterPelletWait < 0 || c.Timing.FeedbackWindow < 0 || c.Timing.InterTrialBlank < 0 {
		return errors.New("config: durations must not be negative")
	}
	return nil
}

func (c *Config) resolvePaths(configDir string) {
	if !filepath.IsAbs(c.DataDir) {
		c.DataDir = filepath.Join(configDir, c.DataDir)
	}
	for _, p := range []*string{
		&c.ProgressFile, &c.VideoDir, &c.ImageDir, &c.TrialLogDir, &c.LogDir,
		&c.Database, &c.Payoff.Safe, &c.Payoff.Risky,
	} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(c.DataDir, *p)
		}
	}
}

// DefaultPath resolves the config file location in priority order:
// 1. PRIMATE_CONFIG environment variable
// 2. $XDG_CONFIG_HOME/primate/config.yaml
// 3. ~/.config/primate/config.yaml
func DefaultPath() (string, error) {
	if p := os.Getenv("PRIMATE_CONFIG"); p != "" {
		return p, nil
	}
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, appName, "config.yaml"), nil
}

// DefaultDataDir resolves $XDG_DATA_HOME/primate, falling back to
// ~/.local/share/primate.
func DefaultDataDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, appName), nil
}
