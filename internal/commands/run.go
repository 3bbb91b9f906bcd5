package commands

import (
	"context"
	"fmt"

	"github.com/guyfedwards/newsdesk/internal/server"
	"github.com/guyfedwards/newsdesk/internal/tui"
)

// Server builds the HTTP API over the same store and preferences the other
// commands use.
func (c *Commands) Server() *server.Server {
	return server.New(server.Options{
		Source:         c.source,
		Store:          c.store,
		Prefs:          c.prefs,
		Assembler:      c.assembler,
		PageSize:       c.pageSize(),
		AllowedOrigins: c.config.Config.Server.AllowedOrigins,
		Log:            c.log,
	})
}

// Serve runs the HTTP API until ctx is cancelled.
func (c *Commands) Serve(ctx context.Context) error {
	addr := c.config.Config.Server.Addr
	if err := c.Server().Run(ctx, addr); err != nil {
		return fmt.Errorf("commands.Serve: %w", err)
	}
	return nil
}

func (c *Commands) TUI(ctx context.Context) error {
	err := tui.Run(ctx, tui.Deps{
		Source:    c.source,
		Store:     c.store,
		Prefs:     c.prefs,
		Assembler: c.assembler,
		PageSize:  c.pageSize(),
		Theme:     c.config.Config.Theme,
		Log:       c.log,
		Now:       c.now,
	})
	if err != nil {
		return fmt.Errorf("commands.TUI: %w", err)
	}
	return nil
}
