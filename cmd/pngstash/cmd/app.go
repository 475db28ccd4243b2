package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ssargent/pngstash/pkg/config"
	"github.com/ssargent/pngstash/pkg/di"
	"github.com/ssargent/pngstash/pkg/journal"
	"github.com/ssargent/pngstash/pkg/logging"
	"github.com/ssargent/pngstash/pkg/stash"
)

type appKey struct{}

// app carries the state shared by every command for one invocation.
type app struct {
	cfg     *config.Config
	opener  di.JournalOpener
	journal *journal.Journal
}

func withApp(ctx context.Context, a *app) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, appKey{}, a)
}

func appFrom(cmd *cobra.Command) *app {
	if cmd.Context() == nil {
		return nil
	}
	a, _ := cmd.Context().Value(appKey{}).(*app)
	return a
}

func mustApp(cmd *cobra.Command) (*app, error) {
	a := appFrom(cmd)
	if a == nil {
		return nil, errors.New("configuration not loaded")
	}
	return a, nil
}

// openJournal opens the edit history on first use. It returns nil when the
// journal is disabled.
func (a *app) openJournal() (*journal.Journal, error) {
	if !a.cfg.Journal.Enabled {
		return nil, nil
	}
	if a.journal != nil {
		return a.journal, nil
	}

	if err := os.MkdirAll(a.cfg.DataDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	j, err := a.opener(a.cfg.JournalPath())
	if err != nil {
		return nil, err
	}
	a.journal = j
	return j, nil
}

// service builds a stash service. A journal that cannot be opened is logged
// and skipped so that edits still succeed.
func (a *app) service(opts ...stash.Option) *stash.Service {
	j, err := a.openJournal()
	if err != nil {
		logging.Logger().Warn("journal unavailable, continuing without history",
			zap.String("path", a.cfg.JournalPath()),
			zap.Error(err))
	}
	if j != nil {
		opts = append(opts, stash.WithRecorder(j))
	}
	return stash.NewService(opts...)
}

func (a *app) close() error {
	if a.journal == nil {
		return nil
	}
	err := a.journal.Close()
	a.journal = nil
	return err
}
