// Package config loads graphmcp settings from defaults, an optional .env
// file, an optional YAML file, THEGRAPH_* environment variables and
// command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	EnvPrefix = "THEGRAPH"

	DefaultGatewayURL        = "https://gateway.thegraph.com/api"
	DefaultNetworkSubgraphID = "DZz4kDTdmzWLWsV373w2bSmoar3umKKH9y82SUKr5qmp"
	DefaultTimeout           = 10 * time.Second
	DefaultEnvFile           = ".env"
)

// Keys, as spelled in YAML files and flags. Environment variables are the
// upper-cased key with the THEGRAPH_ prefix.
const (
	KeyAPIKey            = "api_key"
	KeyGatewayURL        = "gateway_url"
	KeyNetworkSubgraphID = "network_subgraph_id"
	KeyTimeout           = "timeout"
	KeySearchLimit       = "search_limit"
	KeyLogLevel          = "log_level"
	KeyLogFormat         = "log_format"
	KeyMetricsAddr       = "metrics_addr"
	KeyUserAgent         = "user_agent"
)

type Config struct {
	APIKey            string
	GatewayURL        string
	NetworkSubgraphID string
	Timeout           time.Duration
	SearchLimit       int
	LogLevel          string
	LogFormat         string
	MetricsAddr       string
	UserAgent         string
}

// Options says where Load looks besides the environment.
type Options struct {
	// File is a YAML config file. Empty means none.
	File string
	// EnvFile is a dotenv file. A missing file is ignored.
	EnvFile string
	// Flags are bound by key name when set on the command line.
	Flags *pflag.FlagSet
}

// Load resolves the configuration. It does not validate it.
func Load(opts Options) (Config, error) {
	v := viper.New()
	setDefaults(v)

	if opts.EnvFile != "" {
		if err := loadEnvFile(v, opts.EnvFile); err != nil {
			return Config{}, err
		}
	}

	if opts.File != "" {
		v.SetConfigFile(opts.File)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", opts.File, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if opts.Flags != nil {
		var bindErr error
		opts.Flags.VisitAll(func(f *pflag.Flag) {
			key := strings.ReplaceAll(f.Name, "-", "_")
			if !isKey(key) {
				return
			}
			if err := v.BindPFlag(key, f); err != nil && bindErr == nil {
				bindErr = err
			}
		})
		if bindErr != nil {
			return Config{}, bindErr
		}
	}

	return Config{
		APIKey:            strings.TrimSpace(v.GetString(KeyAPIKey)),
		GatewayURL:        strings.TrimRight(v.GetString(KeyGatewayURL), "/"),
		NetworkSubgraphID: v.GetString(KeyNetworkSubgraphID),
		Timeout:           v.GetDuration(KeyTimeout),
		SearchLimit:       v.GetInt(KeySearchLimit),
		LogLevel:          v.GetString(KeyLogLevel),
		LogFormat:         v.GetString(KeyLogFormat),
		MetricsAddr:       v.GetString(KeyMetricsAddr),
		UserAgent:         v.GetString(KeyUserAgent),
	}, nil
}

// Validate reports the first setting that makes the gateway unusable.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("API key is required: set %s_API_KEY in the environment or a %s file", EnvPrefix, DefaultEnvFile)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.SearchLimit <= 0 {
		return fmt.Errorf("search limit must be positive, got %d", c.SearchLimit)
	}
	u, err := url.Parse(c.GatewayURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("gateway url %q must be an absolute http(s) URL", c.GatewayURL)
	}
	if c.NetworkSubgraphID == "" {
		return errors.New("network subgraph id must not be empty")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyAPIKey, "")
	v.SetDefault(KeyGatewayURL, DefaultGatewayURL)
	v.SetDefault(KeyNetworkSubgraphID, DefaultNetworkSubgraphID)
	v.SetDefault(KeyTimeout, DefaultTimeout)
	v.SetDefault(KeySearchLimit, 20)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "json")
	v.SetDefault(KeyMetricsAddr, "")
	v.SetDefault(KeyUserAgent, "graphmcp")
}

// loadEnvFile reads THEGRAPH_* assignments from a dotenv file. They rank
// below the real environment, so they are installed as defaults.
func loadEnvFile(v *viper.Viper, path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	dot := viper.New()
	dot.SetConfigFile(path)
	dot.SetConfigType("env")
	if err := dot.ReadInConfig(); err != nil {
		return fmt.Errorf("read env file %s: %w", path, err)
	}
	prefix := strings.ToLower(EnvPrefix) + "_"
	for _, k := range dot.AllKeys() {
		key, ok := strings.CutPrefix(k, prefix)
		if !ok || !isKey(key) {
			continue
		}
		v.SetDefault(key, dot.Get(k))
	}
	return nil
}

func isKey(key string) bool {
	switch key {
	case KeyAPIKey, KeyGatewayURL, KeyNetworkSubgraphID, KeyTimeout, KeySearchLimit,
		KeyLogLevel, KeyLogFormat, KeyMetricsAddr, KeyUserAgent:
		return true
	}
	return false
}
