// Package api provides factory implementations for dependency injection
package api

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/ssargent/fieldsheet/pkg/config"
	"github.com/ssargent/fieldsheet/pkg/storage"
	"github.com/ssargent/fieldsheet/pkg/store"
)

// DefaultStoreFactory is the default implementation of StoreFactory
type DefaultStoreFactory struct{}

// NewStoreFactory creates a new store factory
func NewStoreFactory() StoreFactory {
	return &DefaultStoreFactory{}
}

// CreateStore opens a LocalStore under the data directory for the local
// backend and a SheetsStore otherwise
func (f *DefaultStoreFactory) CreateStore(
	ctx context.Context,
	cfg *config.Config,
	logger *zap.Logger,
) (store.TableStore, func() error, error) {
	switch cfg.Sheet.Backend {
	case config.BackendLocal:
		if err := os.MkdirAll(cfg.DataDir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create data dir: %w", err)
		}
		ls, err := storage.NewLocalStore(filepath.Join(cfg.DataDir, "tables"))
		if err != nil {
			return nil, nil, err
		}
		logger.Sugar().Infow("using local table store", "data_dir", cfg.DataDir)
		return ls, ls.Close, nil
	case config.BackendSheets:
		ss, err := store.NewSheetsStore(ctx, store.SheetsConfig{
			ServiceAccountEmail: cfg.Google.ServiceAccountEmail,
			PrivateKey:          cfg.Google.PrivateKey,
			CredentialsFile:     cfg.Google.CredentialsFile,
		}, logger)
		if err != nil {
			return nil, nil, err
		}
		return ss, func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown backend %q", cfg.Sheet.Backend)
	}
}

// DefaultServerFactory is the default implementation of ServerFactory
type DefaultServerFactory struct{}

// NewServerFactory creates a new server factory
func NewServerFactory() ServerFactory {
	return &DefaultServerFactory{}
}

// CreateServerStarter creates a server starter
func (f *DefaultServerFactory) CreateServerStarter() ServerStarter {
	return &DefaultServerStarter{}
}

// DefaultServerStarter is the default implementation of ServerStarter
type DefaultServerStarter struct{}

// StartServer starts the API server with the given configuration
func (s *DefaultServerStarter) StartServer(
	ctx context.Context,
	gw FieldGateway,
	cfg ServerConfig,
	metrics *Metrics,
	logger *zap.Logger,
) error {
	server := NewServer(gw, cfg, metrics, logger)
	return server.Run(ctx, cfg.Addr())
}
