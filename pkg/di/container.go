// Package di provides dependency injection container
package di

import (
	"github.com/ssargent/pngstash/pkg/api" //nolint:depguard
	"github.com/ssargent/pngstash/pkg/journal"
)

// JournalOpener opens the edit history at a path
type JournalOpener func(path string) (*journal.Journal, error)

// Container holds all the dependencies for the application
type Container struct {
	serverFactory api.ServerFactory
	journalOpener JournalOpener
}

// NewContainer creates a new dependency injection container
func NewContainer() *Container {
	return &Container{
		serverFactory: api.NewServerFactory(),
		journalOpener: journal.Open,
	}
}

// GetServerFactory returns the server factory
func (c *Container) GetServerFactory() api.ServerFactory {
	return c.serverFactory
}

// SetServerFactory allows overriding the server factory (for testing)
func (c *Container) SetServerFactory(factory api.ServerFactory) {
	c.serverFactory = factory
}

// GetJournalOpener returns the function used to open the journal
func (c *Container) GetJournalOpener() JournalOpener {
	return c.journalOpener
}

// SetJournalOpener allows overriding how the journal is opened (for testing)
func (c *Container) SetJournalOpener(opener JournalOpener) {
	c.journalOpener = opener
}
