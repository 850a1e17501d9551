// Package config loads deploykit configuration.
//
// Sources, lowest to highest priority: built-in defaults, the deploy.yaml
// config file, the config directory .env, the working directory .env, and
// DEPLOY_* environment variables. Keys use dotted names ("log.level"); the
// matching environment variable is DEPLOY_LOG_LEVEL.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"deploykit/pkg/deploytypes"
)

// EnvPrefix is the prefix of environment variables read as configuration.
const EnvPrefix = "DEPLOY"

// Configuration keys.
const (
	KeyLogLevel      = "log.level"
	KeyLogFile       = "log.file"
	KeySourcesFile   = "sources.file"
	KeyStyledOutput  = "output.styled"
	KeyOutputFormat  = "output.format"
	KeyLatestVersion = "update.latest"
	KeyPackagesDir   = "packages.directory"
	KeyTestMode      = "test.mode"
)

// Config holds resolved configuration values.
type Config struct {
	LogLevel      string
	LogFile       string
	SourcesFile   string
	StyledOutput  bool
	OutputFormat  string
	LatestVersion string
	PackagesDir   string
	TestMode      bool

	// ConfigFileUsed is the config file that was read, empty if none.
	ConfigFileUsed string
	// DotEnvLoaded lists the .env files that were read, in load order.
	DotEnvLoaded []string
}

// Options controls where configuration is looked up. Empty fields fall
// back to the user config directory and the process working directory.
type Options struct {
	ConfigFile string
	ConfigDir  string
	WorkDir    string
}

// DefaultConfigDir returns the per-user deploykit configuration directory.
func DefaultConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "deploykit"), nil
}

// Load resolves configuration from all sources.
func Load(opts Options) (*Config, error) {
	if opts.ConfigDir == "" {
		dir, err := DefaultConfigDir()
		if err != nil {
			return nil, deploytypes.ErrorConfig("user config directory", err)
		}
		opts.ConfigDir = dir
	}
	if opts.WorkDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, deploytypes.ErrorConfig("working directory", err)
		}
		opts.WorkDir = wd
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeySourcesFile, filepath.Join(opts.ConfigDir, "sources.yaml"))
	v.SetDefault(KeyStyledOutput, true)
	v.SetDefault(KeyOutputFormat, "text")
	v.SetDefault(KeyLatestVersion, "")
	v.SetDefault(KeyPackagesDir, filepath.Join(opts.ConfigDir, "packages"))
	v.SetDefault(KeyTestMode, false)

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName("deploy")
		v.SetConfigType("yaml")
		v.AddConfigPath(opts.WorkDir)
		v.AddConfigPath(opts.ConfigDir)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.ConfigFile != "" || !errors.As(err, &notFound) {
			return nil, deploytypes.ErrorConfig("config file", err)
		}
	}

	cfg := &Config{ConfigFileUsed: v.ConfigFileUsed()}

	dotenv := make(map[string]string)
	for _, path := range []string{filepath.Join(opts.ConfigDir, ".env"), filepath.Join(opts.WorkDir, ".env")} {
		values, err := readDotEnv(path)
		if err != nil {
			return nil, deploytypes.ErrorConfig(path, err)
		}
		if values == nil {
			continue
		}
		cfg.DotEnvLoaded = append(cfg.DotEnvLoaded, path)
		for key, value := range values {
			dotenv[key] = value
		}
	}
	applyDotEnv(v, dotenv)

	cfg.LogLevel = v.GetString(KeyLogLevel)
	cfg.LogFile = v.GetString(KeyLogFile)
	cfg.SourcesFile = v.GetString(KeySourcesFile)
	cfg.StyledOutput = v.GetBool(KeyStyledOutput)
	cfg.OutputFormat = v.GetString(KeyOutputFormat)
	cfg.LatestVersion = v.GetString(KeyLatestVersion)
	cfg.PackagesDir = v.GetString(KeyPackagesDir)
	cfg.TestMode = v.GetBool(KeyTestMode)
	return cfg, nil
}

// readDotEnv parses a .env file, returning nil for a missing file.
func readDotEnv(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return godotenv.Unmarshal(string(data))
}

// applyDotEnv overlays DEPLOY_* entries from .env files. A variable that is
// also set in the process environment keeps the environment's value.
func applyDotEnv(v *viper.Viper, values map[string]string) {
	prefix := EnvPrefix + "_"
	for name, value := range values {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		if _, set := os.LookupEnv(name); set {
			continue
		}
		key := strings.ToLower(strings.ReplaceAll(strings.TrimPrefix(name, prefix), "_", "."))
		v.Set(key, value)
	}
}
