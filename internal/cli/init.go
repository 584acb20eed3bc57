package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/semval/internal/paths"
	"github.com/mesh-intelligence/semval/internal/sqlite"
	"github.com/mesh-intelligence/semval/pkg/types"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	Backend           string   `yaml:"backend"`
	DataDir           string   `yaml:"data_dir,omitempty"`
	StrictComparators bool     `yaml:"strict_comparators"`
	Comparators       []string `yaml:"comparators,omitempty"`
	MessagesFile      string   `yaml:"messages_file,omitempty"`
	LogLevel          string   `yaml:"log_level"`
}

func newInitCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize semval configuration and storage",
		Long:  "Create the configuration and data directories, write a default config.yaml\nif none exists, then initialize the constraint store.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, flags)
		},
	}
}

func runInit(cmd *cobra.Command, flags *rootFlags) error {
	configDir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return systemError("resolve config dir: %w", err)
	}

	v, err := loadConfig(configDir)
	if err != nil {
		return err
	}
	dataDir, err := paths.ResolveDataDir(flags.dataDir, v.GetString(cfgKeyDataDir))
	if err != nil {
		return systemError("resolve data dir: %w", err)
	}

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return systemError("create config directory: %w", err)
	}

	configPath := filepath.Join(configDir, configFileExt)
	created, err := writeConfigIfMissing(configPath, flags.dataDir)
	if err != nil {
		return systemError("write config: %w", err)
	}

	// Initialize the data directory via Cupboard.Attach then Detach.
	cupboard := sqlite.NewBackend()
	if err := cupboard.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dataDir}); err != nil {
		return systemError("initialize storage: %w", err)
	}
	if err := cupboard.Detach(); err != nil {
		return systemError("finalize storage: %w", err)
	}

	if flags.jsonMode {
		return printJSON(cmd.OutOrStdout(), map[string]any{
			"config":         configPath,
			"config_created": created,
			"data_dir":       dataDir,
		})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "semval initialized\nconfig:   %s\ndata dir: %s\n", configPath, dataDir)
	return nil
}

// writeConfigIfMissing creates config.yaml with default values if the file
// does not exist. If it already exists, the function does nothing and
// reports false.
func writeConfigIfMissing(path, dataDir string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	cfg := configFile{
		Backend:  types.BackendSQLite,
		DataDir:  dataDir,
		LogLevel: "warn",
	}
	if dataDir != "" {
		abs, err := filepath.Abs(dataDir)
		if err != nil {
			return false, err
		}
		cfg.DataDir = abs
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, err
	}
	return true, nil
}
