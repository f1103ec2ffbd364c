package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/review-digest/internal/utils"
)

// Default file names, resolved against the program directory.
const (
	DefaultInputFile  = "finalreviewdata.csv"
	DefaultOutputFile = "review_data.json"
	DefaultAddr       = "127.0.0.1:5000"
)

// Global configuration structure.
type Global struct {
	InputPath  string `mapstructure:"input_path" yaml:"input_path"`
	OutputPath string `mapstructure:"output_path" yaml:"output_path"`
	SQLitePath string `mapstructure:"sqlite_path" yaml:"sqlite_path"`
	Addr       string `mapstructure:"addr" yaml:"addr"`
	Debug      bool   `mapstructure:"debug" yaml:"debug"`
	Metrics    bool   `mapstructure:"metrics" yaml:"metrics"`

	// Logging
	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`

	// Not serialized: directory relative paths are resolved against.
	baseDir string `yaml:"-"`
}

// BaseDir returns the directory relative paths are resolved against.
func (c *Global) BaseDir() string { return c.baseDir }

// Input returns the absolute input file path.
func (c *Global) Input() string { return utils.ResolvePath(c.baseDir, c.InputPath) }

// Output returns the absolute output file path.
func (c *Global) Output() string { return utils.ResolvePath(c.baseDir, c.OutputPath) }

// SQLite returns the absolute SQLite mirror path, or "" when disabled.
func (c *Global) SQLite() string { return utils.ResolvePath(c.baseDir, c.SQLitePath) }

func defaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".review-digest"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.review-digest/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := defaultDir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := utils.SafeWriteFile(path, b); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("REVIEWDIGEST")
	v.AutomaticEnv()

	v.SetDefault("input_path", DefaultInputFile)
	v.SetDefault("output_path", DefaultOutputFile)
	v.SetDefault("sqlite_path", "")
	v.SetDefault("addr", DefaultAddr)
	v.SetDefault("debug", false)
	v.SetDefault("metrics", true)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
	return v
}

func unmarshal(v *viper.Viper) (*Global, error) {
	c := Global{baseDir: utils.ProgramDir()}
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

// Defaults returns the built-in configuration with env overrides applied.
func Defaults() *Global {
	c, err := unmarshal(newViper())
	if err != nil {
		return &Global{
			InputPath:  DefaultInputFile,
			OutputPath: DefaultOutputFile,
			Addr:       DefaultAddr,
			Metrics:    true,
			LogLevel:   "info",
			LogFormat:  "console",
			baseDir:    utils.ProgramDir(),
		}
	}
	return c
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. Command flags are applied by the caller.
// An explicit cfgFile must exist; the default location is optional.
func Load(cfgFile string) (*Global, error) {
	v := newViper()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	} else {
		if dir, err := defaultDir(); err == nil {
			v.AddConfigPath(dir)
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// optional read
		_ = v.ReadInConfig()
	}
	return unmarshal(v)
}

// WithBaseDir returns a copy of c resolving relative paths against dir.
func (c *Global) WithBaseDir(dir string) *Global {
	cp := *c
	cp.baseDir = dir
	return &cp
}
