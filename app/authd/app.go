package authd

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/authkit/core/config"
	"github.com/dmitrymomot/authkit/core/credentials"
	"github.com/dmitrymomot/authkit/core/logger"
	"github.com/dmitrymomot/authkit/core/session"
	"github.com/dmitrymomot/authkit/core/token"
	credentialspg "github.com/dmitrymomot/authkit/integration/credentials/pg"
	"github.com/dmitrymomot/authkit/integration/database/pg"
	"github.com/dmitrymomot/authkit/integration/database/redis"
	sessionpg "github.com/dmitrymomot/authkit/integration/session/pg"
	sessionredis "github.com/dmitrymomot/authkit/integration/session/redis"
)

// App wires the session engine: PostgreSQL session store, Redis token
// index, credentials verifier, manager, and the background expiry sweeper.
type App struct {
	config   Config
	logger   *slog.Logger
	pool     *pgxpool.Pool
	redis    *goredis.Client
	codec    *token.Codec
	store    session.Store
	index    session.TokenIndex
	verifier credentials.Verifier
	manager  *session.Manager
	sweeper  *session.Sweeper
}

type AppOption func(*App) error

// NewApp assembles the engine from environment configuration. Collaborators
// not injected through options are built from config, connecting to
// PostgreSQL and Redis on demand. The caller owns the returned App and must
// Close it.
func NewApp(ctx context.Context, opts ...AppOption) (*App, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}

	app := &App{config: cfg}

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	if app.logger == nil {
		app.logger = newLogger(cfg)
		logger.SetAsDefault(app.logger)
	}

	if err := app.build(ctx); err != nil {
		app.Close()
		return nil, err
	}

	return app, nil
}

// build fills every collaborator the options left nil.
func (a *App) build(ctx context.Context) error {
	if a.store == nil {
		pool, err := a.ensurePool(ctx)
		if err != nil {
			return err
		}
		store, err := sessionpg.New(pool)
		if err != nil {
			return err
		}
		a.store = store
	}

	if a.index == nil {
		client, err := a.ensureRedis(ctx)
		if err != nil {
			return err
		}
		index, err := sessionredis.New(client)
		if err != nil {
			return err
		}
		a.index = index
	}

	if a.verifier == nil {
		pool, err := a.ensurePool(ctx)
		if err != nil {
			return err
		}
		directory, err := credentialspg.New(pool)
		if err != nil {
			return err
		}
		verifier, err := credentials.NewDirectoryVerifier(directory)
		if err != nil {
			return err
		}
		a.verifier = verifier
	}

	if a.codec == nil {
		codec, err := token.NewCodecFromConfig(a.config.Token)
		if err != nil {
			return err
		}
		a.codec = codec
	}

	if a.manager == nil {
		manager, err := session.NewManagerFromConfig(a.config.Session, a.codec, a.store, a.index,
			session.WithVerifier(a.verifier),
			session.WithLogger(a.logger.With(logger.Component("session"))),
		)
		if err != nil {
			return err
		}
		a.manager = manager
	}

	if a.sweeper == nil {
		sweeper, err := session.NewSweeperFromConfig(a.config.Session, a.store,
			session.WithSweeperLogger(a.logger.With(logger.Component("sweeper"))),
		)
		if err != nil {
			return err
		}
		a.sweeper = sweeper
	}

	return nil
}

// ensurePool connects to PostgreSQL once and applies pending migrations.
// A missing migrations directory is tolerated so the app can run against a
// pre-migrated database.
func (a *App) ensurePool(ctx context.Context) (*pgxpool.Pool, error) {
	if a.pool != nil {
		return a.pool, nil
	}

	pool, err := pg.Connect(ctx, a.config.DB)
	if err != nil {
		return nil, err
	}

	if err := pg.Migrate(ctx, pool, a.config.DB, a.logger); err != nil {
		if !errors.Is(err, pg.ErrMigrationsDirNotFound) {
			pool.Close()
			return nil, err
		}
		a.logger.WarnContext(ctx, "migrations directory not found, skipping migration",
			logger.Key("path", a.config.DB.MigrationsPath))
	}

	a.pool = pool
	return pool, nil
}

func (a *App) ensureRedis(ctx context.Context) (*goredis.Client, error) {
	if a.redis != nil {
		return a.redis, nil
	}

	client, err := redis.Connect(ctx, a.config.Redis)
	if err != nil {
		return nil, err
	}

	a.redis = client
	return client, nil
}

// Run starts the background sweeper and blocks until ctx is cancelled or
// the sweeper fails. The sweeper stops gracefully before Run returns.
func (a *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(a.sweeper.Run(ctx))

	a.logger.InfoContext(ctx, "authd running",
		logger.Event("started"),
		slog.String("env", a.config.Env),
	)

	return g.Wait()
}

// Healthchecks returns the named readiness probes of the engine's
// dependencies, suitable for mounting on health endpoints.
func (a *App) Healthchecks() map[string]func(context.Context) error {
	return map[string]func(context.Context) error{
		"postgres": pg.Healthcheck(a.pool),
		"redis":    redis.Healthcheck(a.redis),
		"sweeper":  a.sweeper.Healthcheck,
	}
}

// Sessions returns the session manager.
func (a *App) Sessions() *session.Manager {
	return a.manager
}

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Close releases the PostgreSQL and Redis clients. Call after Run returns.
func (a *App) Close() {
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.pool != nil {
		a.pool.Close()
	}
}

func newLogger(cfg Config) *slog.Logger {
	var opts []logger.Option
	switch cfg.Env {
	case "production":
		opts = append(opts, logger.WithProduction(cfg.AppName))
	case "staging":
		opts = append(opts, logger.WithStaging(cfg.AppName))
	default:
		opts = append(opts, logger.WithDevelopment(cfg.AppName))
	}

	if cfg.LogLevel != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(cfg.LogLevel)); err == nil {
			opts = append(opts, logger.WithLevel(level))
		}
	}

	return logger.New(opts...)
}

func WithLogger(log *slog.Logger) AppOption {
	return func(app *App) error {
		if log == nil {
			return errors.New("logger cannot be nil")
		}
		app.logger = log
		return nil
	}
}

func WithPool(pool *pgxpool.Pool) AppOption {
	return func(app *App) error {
		if pool == nil {
			return errors.New("postgres pool cannot be nil")
		}
		app.pool = pool
		return nil
	}
}

func WithRedisClient(client *goredis.Client) AppOption {
	return func(app *App) error {
		if client == nil {
			return errors.New("redis client cannot be nil")
		}
		app.redis = client
		return nil
	}
}

func WithCodec(codec *token.Codec) AppOption {
	return func(app *App) error {
		if codec == nil {
			return errors.New("token codec cannot be nil")
		}
		app.codec = codec
		return nil
	}
}

func WithStore(store session.Store) AppOption {
	return func(app *App) error {
		if store == nil {
			return errors.New("session store cannot be nil")
		}
		app.store = store
		return nil
	}
}

func WithIndex(index session.TokenIndex) AppOption {
	return func(app *App) error {
		if index == nil {
			return errors.New("token index cannot be nil")
		}
		app.index = index
		return nil
	}
}

func WithVerifier(verifier credentials.Verifier) AppOption {
	return func(app *App) error {
		if verifier == nil {
			return errors.New("credentials verifier cannot be nil")
		}
		app.verifier = verifier
		return nil
	}
}

func WithManager(manager *session.Manager) AppOption {
	return func(app *App) error {
		if manager == nil {
			return errors.New("session manager cannot be nil")
		}
		app.manager = manager
		return nil
	}
}

func WithSweeper(sweeper *session.Sweeper) AppOption {
	return func(app *App) error {
		if sweeper == nil {
			return errors.New("sweeper cannot be nil")
		}
		app.sweeper = sweeper
		return nil
	}
}
