package api

import "context"

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

// DefaultServerStarter wires routes and the HTTP listener
type DefaultServerStarter struct{}

// StartServer starts the API server with the given dependencies
func (s *DefaultServerStarter) StartServer(ctx context.Context, deps ServerDeps) error {
	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = NewRegistry()
	}
	server := NewServer(deps.Service, deps.Journal, deps.Config, deps.Metrics)
	return StartServer(ctx, NewRouter(server, gatherer), deps.Config)
}
