package store

import (
	"errors"
	"os"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config is the client configuration. Values come from .memories.yaml,
// MEMORIES_* environment variables and defaults, in viper's usual order.
type Config interface {
	BasePath() string
	APIBase() string
	Since() string
	Timeout() time.Duration
	LogLevel() string
	LogFile() string
}

const (
	DefaultAPIBase  = "http://127.0.0.1:8000"
	DefaultPath     = "~/.memories.db"
	DefaultLogLevel = "warn"
)

// LoadConfig reads the configuration. A missing config file is not an error.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetDefault("path", DefaultPath)
	v.SetDefault("api", DefaultAPIBase)
	v.SetDefault("since", "")
	v.SetDefault("timeout", time.Duration(0))
	v.SetDefault("log-level", DefaultLogLevel)
	v.SetDefault("log-file", "")
	v.SetConfigName(".memories") // .yaml is implicit
	v.SetEnvPrefix("MEMORIES")
	v.AutomaticEnv()

	if override := os.Getenv("MEMORIES_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, err
	}

	return &fileConfig{
		Path:    path,
		API:     v.GetString("api"),
		From:    v.GetString("since"),
		Wait:    v.GetDuration("timeout"),
		Level:   v.GetString("log-level"),
		LogPath: v.GetString("log-file"),
	}, nil
}

type fileConfig struct {
	Path    string        `json:"path"`
	API     string        `json:"api"`
	From    string        `json:"since,omitempty"`
	Wait    time.Duration `json:"timeout,omitempty"`
	Level   string        `json:"logLevel"`
	LogPath string        `json:"logFile,omitempty"`
}

func (f *fileConfig) BasePath() string       { return f.Path }
func (f *fileConfig) APIBase() string        { return f.API }
func (f *fileConfig) Since() string          { return f.From }
func (f *fileConfig) Timeout() time.Duration { return f.Wait }
func (f *fileConfig) LogLevel() string       { return f.Level }
func (f *fileConfig) LogFile() string        { return f.LogPath }

// StaticConfig is a Config with fixed values, for tests and embedding.
type StaticConfig struct {
	Path    string
	API     string
	From    string
	Wait    time.Duration
	Level   string
	LogPath string
}

func (s StaticConfig) BasePath() string       { return s.Path }
func (s StaticConfig) APIBase() string        { return s.API }
func (s StaticConfig) Since() string          { return s.From }
func (s StaticConfig) Timeout() time.Duration { return s.Wait }
func (s StaticConfig) LogLevel() string       { return s.Level }
func (s StaticConfig) LogFile() string        { return s.LogPath }
