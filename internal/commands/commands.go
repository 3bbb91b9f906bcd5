// Package commands implements the newsdesk subcommands on top of the
// content source, the interaction store and the preferences.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/guyfedwards/newsdesk/internal/config"
	"github.com/guyfedwards/newsdesk/internal/constants"
	"github.com/guyfedwards/newsdesk/internal/content"
	"github.com/guyfedwards/newsdesk/internal/feed"
	"github.com/guyfedwards/newsdesk/internal/kv"
	"github.com/guyfedwards/newsdesk/internal/prefs"
	"github.com/guyfedwards/newsdesk/internal/store"
	"github.com/guyfedwards/newsdesk/internal/translate"
)

var ErrAdminRequired = errors.New("admin mode is off (toggle it with `newsdesk admin`)")

type Commands struct {
	config     *config.Runtime
	source     content.Source
	store      *store.Store
	prefs      *prefs.Prefs
	translator *translate.Translator
	assembler  *feed.Assembler
	log        *slog.Logger
	out        io.Writer
	now        func() time.Time
}

// New wires the commands to an already opened kv.Store and content source.
// The interaction state is loaded from backend immediately.
func New(ctx context.Context, runtime *config.Runtime, backend kv.Store, src content.Source, log *slog.Logger) *Commands {
	if log == nil {
		log = slog.Default()
	}
	st := store.Open(ctx, backend, log)
	tr := translate.New(
		translate.WithDelay(runtime.Config.TranslationDelay),
		translate.WithCache(),
	)
	return &Commands{
		config:     runtime,
		source:     src,
		store:      st,
		prefs:      prefs.New(backend, log).WithDefaultLanguage(constants.Language(runtime.Config.Language)),
		translator: tr,
		assembler:  feed.NewAssembler(st, tr, log),
		log:        log,
		out:        os.Stdout,
		now:        time.Now,
	}
}

// Open opens the configured local store and content source.
func Open(ctx context.Context, runtime *config.Runtime, log *slog.Logger) (*Commands, error) {
	backend, err := OpenKV(ctx, runtime, log)
	if err != nil {
		return nil, fmt.Errorf("commands.Open: %w", err)
	}
	src, err := OpenSource(ctx, runtime, log)
	if err != nil {
		backend.Close()
		return nil, fmt.Errorf("commands.Open: %w", err)
	}
	return New(ctx, runtime, backend, src, log), nil
}

func (c *Commands) WithOutput(w io.Writer) *Commands {
	c.out = w
	return c
}

func (c *Commands) Close() error {
	return c.store.Close()
}

func (c *Commands) pageSize() int {
	if c.config.Config.PageSize > 0 {
		return c.config.Config.PageSize
	}
	return constants.PageSize
}

func (c *Commands) find(ctx context.Context, ref string) (*content.Article, error) {
	return feed.Find(ctx, c.source, ref, c.pageSize(), feed.DefaultFindPages)
}

func (c *Commands) requireAdmin(ctx context.Context) error {
	if !c.prefs.AdminMode(ctx) {
		return ErrAdminRequired
	}
	return nil
}
