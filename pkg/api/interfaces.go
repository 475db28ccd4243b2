package api

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
)

// ServerDeps carries everything the API server needs
type ServerDeps struct {
	Service  IStashService
	Journal  IJournal // nil when the journal is disabled
	Metrics  *Metrics
	Gatherer prometheus.Gatherer
	Config   ServerConfig
}

// ServerStarter defines the interface for starting the API server
type ServerStarter interface {
	// StartServer serves the API until ctx is cancelled
	StartServer(ctx context.Context, deps ServerDeps) error
}

// ServerFactory creates server instances
type ServerFactory interface {
	// CreateServerStarter creates a server starter
	CreateServerStarter() ServerStarter
}
