package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/scottbass3/dgui/internal/session"
)

const (
	EnvPrefix       = "DGUI"
	DefaultServer   = "http://localhost:5008/api"
	DefaultTimeout  = 30 * time.Second
	DefaultPageSize = 20
	DefaultLogLevel = "info"
)

const (
	KeyServer      = "server"
	KeyTimeout     = "timeout"
	KeyLogLevel    = "log_level"
	KeyPageSize    = "page_size"
	KeySessionFile = "session_file"
	KeyLocation    = "location"
	KeyDebug       = "debug"
)

type Config struct {
	Server      string        `mapstructure:"server" yaml:"server"`
	Timeout     time.Duration `mapstructure:"timeout" yaml:"timeout"`
	LogLevel    string        `mapstructure:"log_level" yaml:"log_level"`
	PageSize    int           `mapstructure:"page_size" yaml:"page_size"`
	SessionFile string        `mapstructure:"session_file" yaml:"session_file,omitempty"`
	Location    string        `mapstructure:"location" yaml:"location,omitempty"`
	Debug       bool          `mapstructure:"debug" yaml:"-"`

	// Path is the file the configuration was read from, if any.
	Path string `mapstructure:"-" yaml:"-"`
}

func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "dgui", "config.yaml")
}

func Default() Config {
	return Config{
		Server:   DefaultServer,
		Timeout:  DefaultTimeout,
		LogLevel: DefaultLogLevel,
		PageSize: DefaultPageSize,
	}
}

// Loader layers defaults, the YAML file, DGUI_* environment variables and
// bound flags, in increasing precedence.
type Loader struct {
	v *viper.Viper
}

func NewLoader() *Loader {
	v := viper.New()
	defaults := Default()
	v.SetDefault(KeyServer, defaults.Server)
	v.SetDefault(KeyTimeout, defaults.Timeout)
	v.SetDefault(KeyLogLevel, defaults.LogLevel)
	v.SetDefault(KeyPageSize, defaults.PageSize)
	v.SetDefault(KeySessionFile, "")
	v.SetDefault(KeyLocation, "")
	v.SetDefault(KeyDebug, false)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return &Loader{v: v}
}

// BindFlag lets a command line flag override key when it was set.
func (l *Loader) BindFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return fmt.Errorf("bind %s: flag not defined", key)
	}
	if err := l.v.BindPFlag(key, flag); err != nil {
		return fmt.Errorf("bind %s: %w", key, err)
	}
	return nil
}

// Load reads path, or DefaultPath when empty. A missing file is not an
// error; the remaining layers still apply.
func (l *Loader) Load(path string) (Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	l.v.SetConfigFile(path)
	l.v.SetConfigType("yaml")

	read := true
	if err := l.v.ReadInConfig(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		read = false
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config %s: %w", path, err)
	}
	if read {
		cfg.Path = path
	}
	if err := cfg.normalize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func Load(path string) (Config, error) {
	return NewLoader().Load(path)
}

// Ensure writes the default configuration to path when no file exists yet.
func Ensure(path string) (Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return Config{}, err
	}

	cfg := Default()
	if err := Save(path, cfg); err != nil {
		return Config{}, err
	}
	return Load(path)
}

func Save(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func (c *Config) normalize() error {
	c.Server = strings.TrimSpace(c.Server)
	if c.Server == "" {
		return errors.New("config: server is required")
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	switch c.PageSize {
	case 10, 20, 50, 100:
	default:
		c.PageSize = DefaultPageSize
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.SessionFile == "" {
		c.SessionFile = session.DefaultPath()
	}
	c.Location = strings.TrimSpace(c.Location)
	return nil
}

// Level maps LogLevel to a slog level; unknown values fall back to info.
func (c Config) Level() slog.Level {
	if c.Debug {
		return slog.LevelDebug
	}
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
