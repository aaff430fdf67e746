package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/dmitrijs2005/bpkeeper/internal/client/auth"
	"github.com/dmitrijs2005/bpkeeper/internal/client/cache"
	"github.com/dmitrijs2005/bpkeeper/internal/client/config"
	"github.com/dmitrijs2005/bpkeeper/internal/client/export"
	"github.com/dmitrijs2005/bpkeeper/internal/client/remote"
	"github.com/dmitrijs2005/bpkeeper/internal/client/store"
	"github.com/dmitrijs2005/bpkeeper/internal/logging"
	"github.com/dmitrijs2005/bpkeeper/internal/netx"

	_ "modernc.org/sqlite"
)

// sessionSecret signs the locally cached session token. The token never
// leaves this machine; it only restores identity across restarts.
const sessionSecret = "bpkeeper-local-session"

type App struct {
	config   *config.Config
	auth     *auth.Service
	store    *store.ReadingStore
	remote   *remote.MongoStore
	watcher  *netx.OnlineWatcher
	exporter *export.Exporter
	log      logging.Logger

	user   *auth.Identity
	reader *bufio.Reader
}

func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	repos, err := cache.InitDatabase(ctx, c.CacheDSN)
	if err != nil {
		log.Error(ctx, "error initializing cache database", "error", err)
		return nil, err
	}

	remoteStore, err := remote.NewMongoStore(ctx, c.MongoURI, c.MongoDatabase, repos.Snapshots, log)
	if err != nil {
		return nil, err
	}

	authService := auth.NewService(remoteStore.Database(), repos.Metadata, []byte(sessionSecret), c.SessionTTL)
	watcher := netx.NewOnlineWatcher(remoteStore, c.OnlineCheckInterval, log)
	readingStore := store.New(remoteStore, watcher, log, c.SyncTimeout)

	var uploader export.Uploader
	if c.S3Bucket != "" {
		up, err := export.NewS3UploaderFromEnv(ctx, c.S3Bucket)
		if err != nil {
			log.Warn(ctx, "s3 uploads disabled", "error", err)
		} else {
			uploader = up
		}
	}

	return &App{
		config:   c,
		auth:     authService,
		store:    readingStore,
		remote:   remoteStore,
		watcher:  watcher,
		exporter: export.NewExporter(log, c.ExportDir, uploader),
		log:      log,
		reader:   bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.user != nil
}

// Run starts the online watcher, restores a cached session if one is
// still valid, and hands control to the REPL. Resources are torn down
// on exit.
func (a *App) Run(ctx context.Context) {
	defer a.remote.Close(ctx)
	defer a.store.Stop()

	go a.watcher.Run(ctx)

	if err := a.auth.EnsureIndexes(ctx); err != nil {
		a.log.Warn(ctx, "could not ensure indexes", "error", err)
	}

	if id, err := a.auth.OfflineLogin(ctx); err == nil {
		a.user = id
		_ = a.store.SetUser(ctx, id.ID)
		printlnFn("Welcome back,", id.DisplayName)
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.statusLine, scanner)
}

// statusLine renders the prompt status: user and sync state.
func (a *App) statusLine() string {
	who := "not logged in"
	if a.user != nil {
		who = a.user.DisplayName
	}
	return who + " | " + string(a.store.SyncStatus())
}
