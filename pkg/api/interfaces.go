// Package api provides interfaces for dependency injection
package api

import (
	"context"

	"go.uber.org/zap"

	"github.com/ssargent/fieldsheet/pkg/config"
	"github.com/ssargent/fieldsheet/pkg/store"
)

// StoreFactory creates the table store selected by the configuration
type StoreFactory interface {
	// CreateStore returns the store and a function releasing its resources
	CreateStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (store.TableStore, func() error, error)
}

// ServerStarter defines the interface for starting the API server
type ServerStarter interface {
	// StartServer serves the API until ctx is cancelled
	StartServer(ctx context.Context, gw FieldGateway, cfg ServerConfig, metrics *Metrics, logger *zap.Logger) error
}

// ServerFactory creates server instances
type ServerFactory interface {
	// CreateServerStarter creates a server starter
	CreateServerStarter() ServerStarter
}
