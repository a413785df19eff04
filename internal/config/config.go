package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/oovz/mcp-json-reader/internal/exit"
)

var (
	ErrNoArguments      = errors.New("no arguments provided")
	ErrEmptyRoot        = errors.New("root cannot be empty")
	ErrRootNotDirectory = errors.New("root is not a directory")
)

// Config represents the complete configuration for the json-reader server.
type Config struct {
	// Debug enables tool-call logging on stderr.
	Debug bool

	// RateLimit throttles tool calls per second (0 = unlimited).
	RateLimit float64

	// Cache keeps parsed documents in memory until the file changes on disk.
	Cache bool

	// Roots is the directory allow-list for document reads. Empty means any
	// readable path is allowed.
	Roots []string

	ConfigFile string
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	for _, root := range c.Roots {
		info, err := os.Stat(root)
		if err != nil {
			return fmt.Errorf("root directory %s not found: %w", root, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("%w: %s", ErrRootNotDirectory, root)
		}
	}

	return nil
}

// fileConfig mirrors Config for the YAML configuration file. Pointer fields
// distinguish absent keys from explicit zero values.
type fileConfig struct {
	Debug     *bool    `yaml:"debug"`
	RateLimit *float64 `yaml:"rate_limit"`
	Cache     *bool    `yaml:"cache"`
	Roots     []string `yaml:"roots"`
}

// rootsFlag implements flag.Value for parsing multiple -root flags.
type rootsFlag []string

// String returns a string representation of the roots flag for flag.Value interface.
func (r *rootsFlag) String() string {
	return strings.Join(*r, ",")
}

// Set validates and stores one root directory for flag.Value interface.
func (r *rootsFlag) Set(value string) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ErrEmptyRoot
	}

	*r = append(*r, trimmed)
	return nil
}

// Parse parses command-line arguments and returns a validated Config.
// If parsing fails or help is requested, returns nil config and exit result.
func Parse(args []string) (*Config, *exit.Result) {
	if len(args) == 0 {
		return nil, exit.Errorf("Error: %v\n\n%s", ErrNoArguments, Usage())
	}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)

	// Suppress the default usage and error output since we handle both ourselves
	fs.Usage = func() {}
	fs.SetOutput(io.Discard)

	var (
		debug      = fs.Bool("debug", false, "Enable debug output showing tool calls and their results")
		rateLimit  = fs.Float64("rate-limit", 0, "Rate limit in tool calls per second (0 for unlimited)")
		cache      = fs.Bool("cache", true, "Cache parsed documents until the file changes on disk")
		configFile = fs.String("config", "", "Path to YAML configuration file")
		roots      rootsFlag
	)

	fs.Var(&roots, "root", "Directory documents may be read from (can be used multiple times)")

	if err := fs.Parse(args[1:]); err != nil {
		if err == flag.ErrHelp {
			return nil, exit.Success(Usage())
		}
		return nil, exit.Errorf("Error: failed to parse arguments: %v\n\n%s", err, Usage())
	}

	config := &Config{
		Debug:      *debug,
		RateLimit:  *rateLimit,
		Cache:      *cache,
		Roots:      roots,
		ConfigFile: *configFile,
	}

	if *configFile != "" {
		fromFile, err := loadConfigFile(*configFile)
		if err != nil {
			return nil, exit.Errorf("Error: failed to load config file: %v\n\n%s", err, Usage())
		}
		applyFileConfig(config, fromFile, setFlags(fs))
	}

	if err := config.Validate(); err != nil {
		return nil, exit.Errorf("Error: %v\n\n%s", err, Usage())
	}

	return config, nil
}

// setFlags reports which flags were given explicitly on the command line.
func setFlags(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})
	return set
}

// applyFileConfig merges file values into the config. Flags given on the
// command line keep priority; roots from both sources combine, file roots
// first.
func applyFileConfig(config *Config, file *fileConfig, set map[string]bool) {
	if file.Debug != nil && !set["debug"] {
		config.Debug = *file.Debug
	}
	if file.RateLimit != nil && !set["rate-limit"] {
		config.RateLimit = *file.RateLimit
	}
	if file.Cache != nil && !set["cache"] {
		config.Cache = *file.Cache
	}
	if len(file.Roots) > 0 {
		config.Roots = append(append([]string{}, file.Roots...), config.Roots...)
	}
}

// loadConfigFile loads and parses a YAML configuration file.
func loadConfigFile(filename string) (*fileConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var parsed fileConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse file %s: %w", filename, err)
	}

	return &parsed, nil
}

// Usage returns a usage string for the server binary.
func Usage() string {
	return `json-reader - MCP server for querying JSON documents with extended JSONPath

Usage: mcp-json-reader [options]

Options:
  --debug             Enable debug output showing tool calls and their results
  --rate-limit N      Rate limit in tool calls per second (0 for unlimited)
  --cache             Cache parsed documents until the file changes on disk (default: true)
  --root DIR          Directory documents may be read from (can be used multiple
                      times; without --root any readable path is allowed)
  --config FILE       Path to YAML configuration file
  -h, --help          Show this help message

Examples:
  mcp-json-reader                               # Serve on stdio with defaults
  mcp-json-reader --debug                       # Log tool calls to stderr
  mcp-json-reader --rate-limit 5                # Throttle to 5 tool calls per second
  mcp-json-reader --root /data --root /srv/app  # Restrict reads to two directories
  mcp-json-reader --config server.yaml          # Load settings from a YAML file`
}
