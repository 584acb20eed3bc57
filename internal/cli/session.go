package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/semval/internal/messages"
	"github.com/mesh-intelligence/semval/internal/metrics"
	"github.com/mesh-intelligence/semval/internal/paths"
	"github.com/mesh-intelligence/semval/internal/sqlite"
	"github.com/mesh-intelligence/semval/pkg/kinds"
	"github.com/mesh-intelligence/semval/pkg/types"
	"github.com/mesh-intelligence/semval/pkg/value"
)

// session is everything a command needs to build values: the attached
// store, the message catalog and a factory with the built-in kinds.
type session struct {
	settings settings
	logger   *slog.Logger
	backend  *sqlite.Backend
	catalog  *messages.Catalog
	recorder *metrics.Recorder
	factory  *value.Factory
}

// openSession resolves directories and configuration, attaches the backend
// and builds the value factory. The caller must Close the session.
func openSession(cmd *cobra.Command, flags *rootFlags) (*session, error) {
	configDir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return nil, systemError("resolve config dir: %w", err)
	}
	v, err := loadConfig(configDir)
	if err != nil {
		return nil, err
	}
	st, err := readSettings(v)
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: st.LogLevel}))

	dataDir, err := paths.ResolveDataDir(flags.dataDir, st.DataDir)
	if err != nil {
		return nil, systemError("resolve data dir: %w", err)
	}

	catalog, err := messages.Load(st.MessagesFile)
	if err != nil {
		return nil, err
	}

	comparators, err := value.NewComparatorParser(st.Comparators, st.StrictComparators)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfgKeyComparators, err)
	}

	backend := sqlite.NewBackend()
	if err := backend.Attach(types.Config{Backend: st.Backend, DataDir: dataDir}); err != nil {
		if errors.Is(err, types.ErrBackendUnknown) || errors.Is(err, types.ErrBackendEmpty) {
			return nil, fmt.Errorf("%s %q: %w", cfgKeyBackend, st.Backend, err)
		}
		return nil, systemError("attach backend: %w", err)
	}

	recorder := metrics.NewRecorder()
	factory := value.NewFactory(value.Env{
		Store:    backend,
		Messages: catalog,
		Logger:   logger,
		Observer: recorder,
	})
	if err := kinds.Register(factory); err != nil {
		backend.Detach()
		return nil, systemError("register kinds: %w", err)
	}
	factory.SetComparators(comparators)

	logger.Debug("session opened",
		slog.String("config_dir", configDir),
		slog.String("data_dir", dataDir),
		slog.Bool("strict_comparators", st.StrictComparators))

	return &session{
		settings: st,
		logger:   logger,
		backend:  backend,
		catalog:  catalog,
		recorder: recorder,
		factory:  factory,
	}, nil
}

// Close detaches the backend.
func (s *session) Close() error {
	return s.backend.Detach()
}

// newValue returns an empty value for a --property or --type selection.
// A property takes precedence; its type decides the value type.
func (s *session) newValue(property, typeID string) (*value.Value, error) {
	switch {
	case property != "":
		p, err := s.backend.PropertyByName(property)
		if err != nil {
			return nil, err
		}
		return s.factory.NewForProperty(p)
	case typeID != "":
		return s.factory.New(typeID)
	default:
		return nil, errors.New("one of --property or --type is required")
	}
}
