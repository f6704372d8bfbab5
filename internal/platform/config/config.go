// internal/platform/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Config holds all settings for the CLI and the worker. The hashing
// task itself exposes no task-level options; everything here configures
// the environment around it (tool location, output placement, broker,
// logging).
type Config struct {
	Tool   Tool   `yaml:"tool"`
	Output Output `yaml:"output"`
	Queue  Queue  `yaml:"queue"`
	Log    Log    `yaml:"log"`
}

type Tool struct {
	// Path to the ssdeep binary (resolved via PATH when bare).
	Path string `yaml:"path"`

	// TimeoutS bounds one invocation in seconds. 0 keeps the
	// historical behavior of blocking until the process exits.
	TimeoutS int `yaml:"timeout_seconds"`
}

type Output struct {
	// Dir is the directory artifacts are written under.
	Dir string `yaml:"dir"`

	// TableDisabled suppresses the terminal summary table.
	TableDisabled bool `yaml:"no_table"`
}

type Queue struct {
	// URL is the Redis broker URL for worker mode.
	URL string `yaml:"url"`

	// TaskList is the Redis list tasks are popped from.
	TaskList string `yaml:"task_list"`

	// BlockS is how long one BRPOP waits before re-checking for
	// shutdown, in seconds.
	BlockS int `yaml:"block_seconds"`
}

type Log struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Tool: Tool{
			Path:     "ssdeep",
			TimeoutS: 0,
		},
		Output: Output{
			Dir:           "ssdeepx_out",
			TableDisabled: false,
		},
		Queue: Queue{
			URL:      "redis://localhost:6379/0",
			TaskList: "ssdeepx:tasks",
			BlockS:   5,
		},
		Log: Log{
			Level: "info",
		},
	}
}

// Load builds the effective configuration by layering, lowest to
// highest precedence: defaults, YAML config file, SSDEEPX_* environment
// variables, command-line flags. Callers may pre-register their own
// flags on fs (nil creates a fresh set). It returns the config and the
// leftover positional arguments (input file paths for the CLI).
func Load(fs *pflag.FlagSet, args []string) (Config, []string, error) {
	cfg := DefaultConfig()
	if fs == nil {
		fs = pflag.NewFlagSet("ssdeepx", pflag.ContinueOnError)
	}

	// The config file path itself comes from the env or a pre-scan of
	// the args, so the file can be applied before flags override it.
	path := getenv("SSDEEPX_CONFIG", "")
	if p := scanConfigFlag(args); p != "" {
		path = p
	}
	if path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return cfg, nil, err
		}
	}

	applyEnv(&cfg)

	fs.String("config", path, "Path to YAML configuration file")
	fs.StringVar(&cfg.Tool.Path, "tool", cfg.Tool.Path, "Path to the ssdeep binary")
	fs.IntVar(&cfg.Tool.TimeoutS, "tool-timeout", cfg.Tool.TimeoutS, "Per-invocation timeout in seconds (0 = no timeout)")
	fs.StringVarP(&cfg.Output.Dir, "out", "o", cfg.Output.Dir, "Output directory for artifacts")
	fs.BoolVar(&cfg.Output.TableDisabled, "no-table", cfg.Output.TableDisabled, "Disable the terminal summary table")
	fs.StringVar(&cfg.Queue.URL, "queue-url", cfg.Queue.URL, "Redis broker URL (worker mode)")
	fs.StringVar(&cfg.Queue.TaskList, "queue-list", cfg.Queue.TaskList, "Redis task list (worker mode)")
	fs.IntVar(&cfg.Queue.BlockS, "queue-block", cfg.Queue.BlockS, "BRPOP block interval in seconds (worker mode)")
	fs.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "Log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return cfg, nil, err
	}

	normalize(&cfg)
	return cfg, fs.Args(), nil
}

// ToolTimeout returns the invocation timeout as a duration.
func (c Config) ToolTimeout() time.Duration {
	if c.Tool.TimeoutS <= 0 {
		return 0
	}
	return time.Duration(c.Tool.TimeoutS) * time.Second
}

// QueueBlock returns the BRPOP interval as a duration.
func (c Config) QueueBlock() time.Duration {
	if c.Queue.BlockS <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.Queue.BlockS) * time.Second
}

// scanConfigFlag extracts --config from raw args without a full parse.
func scanConfigFlag(args []string) string {
	for i, arg := range args {
		switch {
		case arg == "--config" && i+1 < len(args):
			return args[i+1]
		case strings.HasPrefix(arg, "--config="):
			return strings.TrimPrefix(arg, "--config=")
		}
	}
	return ""
}

// applyFile overlays settings from a YAML file.
func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

// applyEnv overlays settings from SSDEEPX_* environment variables.
func applyEnv(cfg *Config) {
	if v := getenv("SSDEEPX_TOOL", ""); v != "" {
		cfg.Tool.Path = v
	}
	if v := getenv("SSDEEPX_TOOL_TIMEOUT", ""); v != "" {
		cfg.Tool.TimeoutS = parseInt(v, cfg.Tool.TimeoutS)
	}
	if v := getenv("SSDEEPX_OUTPUT_DIR", ""); v != "" {
		cfg.Output.Dir = v
	}
	if v := getenv("SSDEEPX_NO_TABLE", ""); v != "" {
		cfg.Output.TableDisabled = parseBool(v)
	}
	if v := getenv("SSDEEPX_QUEUE_URL", ""); v != "" {
		cfg.Queue.URL = v
	}
	if v := getenv("SSDEEPX_QUEUE_LIST", ""); v != "" {
		cfg.Queue.TaskList = v
	}
	if v := getenv("SSDEEPX_QUEUE_BLOCK", ""); v != "" {
		cfg.Queue.BlockS = parseInt(v, cfg.Queue.BlockS)
	}
	if v := getenv("SSDEEPX_LOG_LEVEL", ""); v != "" {
		cfg.Log.Level = v
	}
}

func normalize(c *Config) {
	c.Tool.Path = strings.TrimSpace(c.Tool.Path)
	if c.Tool.Path == "" {
		c.Tool.Path = "ssdeep"
	}
	if c.Tool.TimeoutS < 0 {
		c.Tool.TimeoutS = 0
	}
	if c.Output.Dir == "" {
		c.Output.Dir = "ssdeepx_out"
	}
	if c.Queue.TaskList == "" {
		c.Queue.TaskList = "ssdeepx:tasks"
	}
	if c.Queue.BlockS < 1 {
		c.Queue.BlockS = 5
	}
}

// Helpers

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok {
		return v
	}
	return def
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "t", "true", "y", "yes", "on":
		return true
	default:
		return false
	}
}

func parseInt(v string, def int) int {
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return i
}
