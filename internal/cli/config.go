package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strings"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/semval/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"
)

// Config keys.
const (
	cfgKeyBackend           = "backend"
	cfgKeyDataDir           = "data_dir"
	cfgKeyStrictComparators = "strict_comparators"
	cfgKeyComparators       = "comparators"
	cfgKeyMessagesFile      = "messages_file"
	cfgKeyLogLevel          = "log_level"
	cfgKeyWorkers           = "workers"
)

// envPrefix prefixes the environment overrides, e.g. SEMVAL_LOG_LEVEL.
const envPrefix = "SEMVAL"

// envKeys are the config keys that may be overridden from the environment.
// data_dir is resolved by the paths package, which reads SEMVAL_DATA_DIR.
var envKeys = []string{
	cfgKeyBackend,
	cfgKeyStrictComparators,
	cfgKeyComparators,
	cfgKeyMessagesFile,
	cfgKeyLogLevel,
	cfgKeyWorkers,
}

// settings is the decoded CLI configuration.
type settings struct {
	Backend           string
	DataDir           string
	StrictComparators bool
	Comparators       []string
	MessagesFile      string
	LogLevel          slog.Level
	Workers           int
}

// loadConfig reads config.yaml from configDir using Viper. A missing
// config.yaml is not an error; defaults and environment overrides apply.
func loadConfig(configDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.BackendSQLite)
	v.SetDefault(cfgKeyStrictComparators, false)
	v.SetDefault(cfgKeyComparators, []string{})
	v.SetDefault(cfgKeyLogLevel, "warn")
	v.SetDefault(cfgKeyWorkers, runtime.NumCPU())

	v.SetEnvPrefix(envPrefix)
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	return v, nil
}

// readSettings decodes and validates the values held by v.
func readSettings(v *viper.Viper) (settings, error) {
	s := settings{
		Backend:           v.GetString(cfgKeyBackend),
		DataDir:           v.GetString(cfgKeyDataDir),
		StrictComparators: v.GetBool(cfgKeyStrictComparators),
		Comparators:       comparatorList(v.GetStringSlice(cfgKeyComparators)),
		MessagesFile:      v.GetString(cfgKeyMessagesFile),
		Workers:           v.GetInt(cfgKeyWorkers),
	}
	if err := s.LogLevel.UnmarshalText([]byte(v.GetString(cfgKeyLogLevel))); err != nil {
		return settings{}, fmt.Errorf("%s: %w", cfgKeyLogLevel, err)
	}
	if s.Workers < 1 {
		s.Workers = 1
	}
	return s, nil
}

// comparatorList accepts both a YAML list and a comma separated string from
// the environment.
func comparatorList(raw []string) []string {
	var out []string
	for _, item := range raw {
		for _, tok := range strings.Split(item, ",") {
			if tok = strings.TrimSpace(tok); tok != "" {
				out = append(out, tok)
			}
		}
	}
	return out
}
