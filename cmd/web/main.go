package main

import (
	"context"
	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"
	"github.com/joho/godotenv"
	"github.com/myrjola/veritruth/internal/ai"
	"github.com/myrjola/veritruth/internal/analysis"
	"github.com/myrjola/veritruth/internal/envstruct"
	"github.com/myrjola/veritruth/internal/errors"
	"github.com/myrjola/veritruth/internal/logging"
	"github.com/myrjola/veritruth/internal/metrics"
	"github.com/myrjola/veritruth/internal/pprofserver"
	"github.com/myrjola/veritruth/internal/workspace"
	"log/slog"
	"net/http"
	"os"
	"time"
)

type application struct {
	logger         *slog.Logger
	analyzer       *analysis.Analyzer
	sessionManager *scs.SessionManager
	workspaces     *workspace.Registry
	metrics        *metrics.Metrics
	maxUploadBytes int64
	requestTimeout time.Duration
}

type config struct {
	// Addr is the address to listen on. It's possible to choose the address dynamically with localhost:0.
	Addr string `env:"VERITRUTH_ADDR" envDefault:"localhost:4000"`
	// PprofPort is the localhost port for the pprof server. Empty disables it.
	PprofPort       string        `env:"VERITRUTH_PPROF_PORT" envDefault:""`
	RequestTimeout  time.Duration `env:"VERITRUTH_REQUEST_TIMEOUT" envDefault:"2m"`
	SessionLifetime time.Duration `env:"VERITRUTH_SESSION_LIFETIME" envDefault:"12h"`
	MaxUploadBytes  int64         `env:"VERITRUTH_MAX_UPLOAD_BYTES" envDefault:"10485760"`
	AI              ai.Config
}

// engineFactory creates the analysis engine from configuration. Tests replace it with a stub.
type engineFactory func(ctx context.Context, cfg ai.Config) (analysis.Engine, error)

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	return runWithEngine(ctx, logger, lookupEnv, ai.NewEngine)
}

func runWithEngine(
	ctx context.Context,
	logger *slog.Logger,
	lookupEnv func(string) (string, bool),
	newEngine engineFactory,
) error {
	var (
		cfg    config
		err    error
		engine analysis.Engine
	)
	if err = envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "populate config")
	}
	if engine, err = newEngine(ctx, cfg.AI); err != nil {
		return errors.Wrap(err, "new engine", slog.String("provider", cfg.AI.Provider))
	}

	pprofserver.Launch(ctx, cfg.PprofPort, logger)

	sessionManager := scs.New()
	sessionManager.Store = memstore.NewWithCleanupInterval(time.Hour)
	sessionManager.Lifetime = cfg.SessionLifetime
	sessionManager.Cookie.Secure = true
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode

	m := metrics.New()
	app := application{
		logger:         logger,
		analyzer:       analysis.NewAnalyzer(engine, logger, m),
		sessionManager: sessionManager,
		workspaces:     workspace.NewRegistry(),
		metrics:        m,
		maxUploadBytes: cfg.MaxUploadBytes,
		requestTimeout: cfg.RequestTimeout,
	}
	go app.sweepWorkspaces(ctx, cfg.SessionLifetime)

	if err = app.configureAndStartServer(ctx, cfg.Addr); err != nil {
		return errors.Wrap(err, "start server")
	}
	return nil
}

// sweepWorkspaces drops workspaces whose browser session has expired.
func (app *application) sweepWorkspaces(ctx context.Context, idle time.Duration) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := app.workspaces.Sweep(idle); removed > 0 {
				app.logger.LogAttrs(ctx, slog.LevelDebug, "swept idle workspaces", slog.Int("removed", removed))
			}
		}
	}
}

func main() {
	ctx := context.Background()
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   true,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.LogAttrs(ctx, slog.LevelError, "failed to load .env", errors.SlogError(err))
		os.Exit(1)
	}

	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "failure starting application", errors.SlogError(err))
		os.Exit(1)
	}
}
