package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// FileSystem interface for file operations (useful for testing).
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

// RealFileSystem implements FileSystem using actual file operations.
type RealFileSystem struct{}

func (rfs *RealFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (rfs *RealFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

// LoaderConfig holds dependencies and optional file overrides.
type LoaderConfig struct {
	FileSystem FileSystem
	ConfigFile string // Direct config file path (optional)
	EnvFile    string // Direct .env file path (optional)
}

// Option is a functional option for Load.
type Option func(*LoaderConfig)

// WithFileSystem sets a custom filesystem for the loader.
func WithFileSystem(fs FileSystem) Option {
	return func(lc *LoaderConfig) { lc.FileSystem = fs }
}

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) Option {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) Option {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// Load populates cfg from config.yml, environment variables, and .env.
// name scopes environment lookups: variables prefixed NAME_ bind to
// nested keys of cfg.
func Load(name string, cfg interface{}, opts ...Option) error {
	var lc LoaderConfig
	for _, opt := range opts {
		opt(&lc)
	}
	if lc.FileSystem == nil {
		lc.FileSystem = &RealFileSystem{}
	}

	v := viper.New()

	// 1. YAML config is the base layer.
	configFile := lc.ConfigFile
	if configFile == "" && lc.FileSystem.Exists("./config.yml") {
		configFile = "./config.yml"
	}
	if configFile != "" && lc.FileSystem.Exists(configFile) {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("config: read %s: %w", configFile, err)
		}
	}

	// 2. .env file feeds the process environment before binding.
	envFile := lc.EnvFile
	if envFile == "" && lc.FileSystem.Exists("./.env") {
		envFile = "./.env"
	}
	if envFile != "" && lc.FileSystem.Exists(envFile) {
		if err := lc.FileSystem.LoadEnv(envFile); err != nil {
			return fmt.Errorf("config: load %s: %w", envFile, err)
		}
	}

	// 3. Environment variables override the file layer.
	v.AutomaticEnv()
	bindEnvVars(v, name)

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("config: unmarshal for %s: %w", name, err)
	}

	return nil
}

// bindEnvVars binds NAME_-prefixed environment variables to nested viper
// keys by underscore-to-dot conversion.
func bindEnvVars(v *viper.Viper, name string) {
	prefix := strings.ToUpper(name) + "_"
	for _, env := range os.Environ() {
		pair := strings.SplitN(env, "=", 2)
		if len(pair) != 2 || !strings.HasPrefix(pair[0], prefix) {
			continue
		}

		key := strings.TrimPrefix(pair[0], prefix)
		for _, variant := range envKeyVariants(key) {
			v.Set(variant, pair[1])
		}
	}
}

// envKeyVariants creates the candidate nested keys for one environment
// variable. RECONNECT_DELAY yields [reconnect_delay, reconnect.delay].
func envKeyVariants(envKey string) []string {
	lowerKey := strings.ToLower(envKey)
	if !strings.Contains(lowerKey, "_") {
		return []string{lowerKey}
	}
	return []string{
		lowerKey,
		strings.ReplaceAll(lowerKey, "_", "."),
	}
}
