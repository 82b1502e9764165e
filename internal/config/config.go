package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lazypower/duedays/internal/store"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. DUEDAYS_STORAGE_BACKEND.
const EnvPrefix = "DUEDAYS"

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config holds all duedays configuration.
type Config struct {
	Paths   PathsConfig   `mapstructure:"paths"`
	Storage StorageConfig `mapstructure:"storage"`
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
}

type PathsConfig struct {
	Dir            string `mapstructure:"dir"`             // base for relative defaults
	TasksFile      string `mapstructure:"tasks_file"`      // empty: read PathConfigFile or prompt
	DateFile       string `mapstructure:"date_file"`       // last-seen date
	PathConfigFile string `mapstructure:"path_config_file"` // remembers TasksFile after the first run
}

type StorageConfig struct {
	Backend string `mapstructure:"backend"` // "file" or "sqlite"
	DBPath  string `mapstructure:"db_path"`
}

type ServerConfig struct {
	Bind string `mapstructure:"bind"`
	Port int    `mapstructure:"port"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// DefaultDir returns the default state directory: ~/.duedays
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".duedays"), nil
}

// Default returns a Config with sensible defaults rooted at dir.
func Default(dir string) Config {
	cfg := Config{
		Paths: PathsConfig{Dir: dir},
		Storage: StorageConfig{
			Backend: BackendFile,
		},
		Server: ServerConfig{
			Bind: "127.0.0.1",
			Port: 37778,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
	cfg.fillPaths()
	return cfg
}

// fillPaths derives every unset state path from Paths.Dir.
func (c *Config) fillPaths() {
	if c.Paths.DateFile == "" {
		c.Paths.DateFile = filepath.Join(c.Paths.Dir, "date.txt")
	}
	if c.Paths.PathConfigFile == "" {
		c.Paths.PathConfigFile = filepath.Join(c.Paths.Dir, "tasks_file_path.txt")
	}
	if c.Storage.DBPath == "" {
		c.Storage.DBPath = filepath.Join(c.Paths.Dir, "duedays.db")
	}
}

// DefaultTasksFile is offered at the first-run prompt.
func (c *Config) DefaultTasksFile() string {
	return filepath.Join(c.Paths.Dir, "tasks.txt")
}

// ListenAddr returns the bind:port address string.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Bind, c.Server.Port)
}

// Validate rejects configurations the CLI cannot act on.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("storage.backend %q: want %q or %q", c.Storage.Backend, BackendFile, BackendSQLite)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	return nil
}

// Load reads configuration with viper. If file is empty, config.yaml is
// looked up in dir; a missing file is not an error. Environment variables
// (DUEDAYS_SECTION_KEY) override file values.
func Load(file, dir string) (Config, error) {
	def := Default(dir)

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, def)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.Paths.Dir = expandHome(cfg.Paths.Dir)
	cfg.fillPaths()
	cfg.Paths.TasksFile = expandHome(cfg.Paths.TasksFile)
	cfg.Paths.DateFile = expandHome(cfg.Paths.DateFile)
	cfg.Paths.PathConfigFile = expandHome(cfg.Paths.PathConfigFile)
	cfg.Storage.DBPath = expandHome(cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Every key is registered so AutomaticEnv can see it during Unmarshal. Paths
// derived from paths.dir default to empty and are filled in after decoding,
// so moving paths.dir moves them too.
func setDefaults(v *viper.Viper, def Config) {
	v.SetDefault("paths.dir", def.Paths.Dir)
	v.SetDefault("paths.tasks_file", def.Paths.TasksFile)
	v.SetDefault("paths.date_file", "")
	v.SetDefault("paths.path_config_file", "")
	v.SetDefault("storage.backend", def.Storage.Backend)
	v.SetDefault("storage.db_path", "")
	v.SetDefault("server.bind", def.Server.Bind)
	v.SetDefault("server.port", def.Server.Port)
	v.SetDefault("log.level", def.Log.Level)
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// AbsPath expands a leading ~ and makes path absolute against the working
// directory.
func AbsPath(path string) (string, error) {
	return filepath.Abs(expandHome(path))
}

// LoadTasksPath returns the task-file path remembered from the first run, or
// "" if none has been saved.
func LoadTasksPath(pathConfigFile string) (string, error) {
	path, err := store.ReadFirstLine(pathConfigFile)
	if err != nil {
		return "", fmt.Errorf("read path config: %w", err)
	}
	return expandHome(path), nil
}

// SaveTasksPath remembers the chosen task-file path.
func SaveTasksPath(pathConfigFile, tasksFile string) error {
	if err := store.WriteLine(pathConfigFile, tasksFile); err != nil {
		return fmt.Errorf("save path config: %w", err)
	}
	return nil
}
