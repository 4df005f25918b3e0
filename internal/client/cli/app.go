package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/celerix-dev/flowclient/internal/client/client"
	"github.com/celerix-dev/flowclient/internal/client/config"
	"github.com/celerix-dev/flowclient/internal/client/identity"
	"github.com/celerix-dev/flowclient/internal/client/repositories/localstore"
	"github.com/celerix-dev/flowclient/internal/client/routes"
	"github.com/celerix-dev/flowclient/internal/client/services"
	"github.com/celerix-dev/flowclient/internal/client/storage"
	"github.com/celerix-dev/flowclient/internal/client/theme"
	"github.com/celerix-dev/flowclient/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// schemeSource is a theme.SchemeSource the app owns the lifecycle of.
type schemeSource interface {
	theme.SchemeSource
	Start(ctx context.Context)
	Stop()
}

type App struct {
	config *config.Config
	log    logging.Logger

	db       *sql.DB
	api      client.Client
	local    localstore.Repository
	identity *identity.Provider
	store    *storage.Service
	user     *services.UserStore
	kanban   services.KanbanService
	projects services.ProjectService

	doc       *theme.MemoryDocument
	scheme    schemeSource
	presenter *theme.Presenter
	routes    []routes.Route

	reader *bufio.Reader
	out    io.Writer

	mu   sync.RWMutex
	mode Mode
}

func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, c.DBPath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	api, err := client.NewHTTPClient(c.ServerURL, client.WithLogger(log.With("component", "http")))
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	var scheme schemeSource
	if c.SchemeFile != "" {
		fs, err := theme.NewFileSource(c.SchemeFile, log)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		scheme = fs
	} else {
		scheme = theme.NewTerminalSource(c.SchemeCheckInterval, nil, log)
	}

	a := newApp(c, log, api, localstore.NewSQLiteRepository(db), scheme)
	a.db = db
	return a, nil
}

// newApp wires the services around already-constructed infrastructure.
func newApp(c *config.Config, log logging.Logger, api client.Client, local localstore.Repository, scheme schemeSource) *App {
	ids := identity.NewProvider(local, api, log)
	store := storage.NewService(api, ids, log)
	doc := theme.NewMemoryDocument()
	presenter := theme.NewPresenter(doc, scheme, log)

	return &App{
		config:    c,
		log:       log,
		api:       api,
		local:     local,
		identity:  ids,
		store:     store,
		user:      services.NewUserStore(store, presenter, log),
		kanban:    services.NewKanbanService(store, log),
		projects:  services.NewProjectService(store, log),
		doc:       doc,
		scheme:    scheme,
		presenter: presenter,
		routes:    routes.BasicRoutes(),
		reader:    bufio.NewReader(os.Stdin),
		out:       os.Stdout,
		mode:      ModeOffline,
	}
}

func (a *App) Mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.log.Info(ctx, "switched mode", "mode", mode)
	}
}

// Run loads the user's preferences, starts the background watchers and
// blocks in the REPL until the user exits or stdin closes.
func (a *App) Run(ctx context.Context) {
	defer a.Close()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.presenter.Init()
	a.scheme.Start(ctx)

	a.probe(ctx)
	loadCtx, loadCancel := context.WithTimeout(ctx, a.config.CommandTimeout)
	a.user.LoadUser(loadCtx)
	loadCancel()

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	printlnFn(a.styles().Title.Render("Welcome to Celerix Flow CLI (type 'help' for commands)"))
	runREPL(ctx, a, a.status, lineReader(a.reader), a.config.CommandTimeout)
}

// Close stops the scheme source and releases the database.
func (a *App) Close() {
	a.presenter.Close()
	a.scheme.Stop()
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Error(context.Background(), "error closing database", "error", err)
		}
	}
}

// probe checks backend liveness once and updates the mode.
func (a *App) probe(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if _, err := a.api.Version(ctx); err != nil {
		a.setMode(ctx, ModeOffline)
		return
	}
	a.setMode(ctx, ModeOnline)
}

// StartOnlineStatusWatcher probes the backend every interval until ctx is
// done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.probe(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) status() string {
	return fmt.Sprintf("(%s %s)", a.user.DisplayName(), a.Mode())
}

func (a *App) styles() theme.Styles {
	return a.presenter.Styles()
}
