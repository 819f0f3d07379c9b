// Package server arma el grafo de dependencias del servicio y corre el
// http.Server con apagado ordenado.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/alquiler/internal/audit"
	"github.com/dropDatabas3/alquiler/internal/authz"
	"github.com/dropDatabas3/alquiler/internal/cache"
	"github.com/dropDatabas3/alquiler/internal/config"
	"github.com/dropDatabas3/alquiler/internal/http/controllers"
	mw "github.com/dropDatabas3/alquiler/internal/http/middlewares"
	"github.com/dropDatabas3/alquiler/internal/http/router"
	"github.com/dropDatabas3/alquiler/internal/http/services"
	"github.com/dropDatabas3/alquiler/internal/http/services/health"
	"github.com/dropDatabas3/alquiler/internal/idp"
	jwtx "github.com/dropDatabas3/alquiler/internal/jwt"
	"github.com/dropDatabas3/alquiler/internal/metrics"
	"github.com/dropDatabas3/alquiler/internal/observability/logger"
	"github.com/dropDatabas3/alquiler/internal/rate"
	"github.com/dropDatabas3/alquiler/internal/store"
	"github.com/dropDatabas3/alquiler/internal/util"
)

// App es el resultado del wiring. Los binarios usan Handler; el CLI usa
// Store y Services directamente.
type App struct {
	Handler  http.Handler
	Store    store.AdapterConnection
	Services *services.Services
	Issuer   *jwtx.Issuer
	Cache    cache.Client
	// AuditPG es nil salvo con audit.driver=postgres.
	AuditPG *audit.PGSink

	closers []func() error
}

// Close libera conexiones en orden inverso a su apertura.
func (a *App) Close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Build conecta store, auditoría, cache y rate limit, y arma services,
// controllers y router. Requiere los adapters registrados (ver store/adapters/dal).
func Build(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logger.L().With(logger.Component("wiring"))
	app := &App{}
	fail := func(err error) (*App, error) {
		_ = app.Close()
		return nil, err
	}

	conn, err := store.OpenAdapter(ctx, store.AdapterConfig{
		Name:          cfg.Storage.Driver,
		URI:           cfg.Storage.Mongo.URI,
		Database:      cfg.Storage.Mongo.Database,
		Timeout:       cfg.Storage.Mongo.Timeout,
		EnsureIndexes: cfg.Storage.Mongo.EnsureIndexes,
	})
	if err != nil {
		return fail(fmt.Errorf("open store: %w", err))
	}
	app.Store = conn
	app.closers = append(app.closers, conn.Close)
	log.Info("store connected", logger.String("driver", conn.Name()))

	var sink audit.Sink
	if cfg.Audit.Driver == "postgres" {
		pg, err := audit.NewPGSink(ctx, cfg.Audit.DSN)
		if err != nil {
			return fail(fmt.Errorf("audit sink: %w", err))
		}
		log.Info("audit sink connected", logger.String("dsn", util.MaskDSN(cfg.Audit.DSN)))
		app.AuditPG = pg
		app.closers = append(app.closers, pg.Close)
		sink = pg
	}
	trail := audit.NewTrail(sink)

	cc, err := cache.New(ctx, cache.Config{
		Driver:     cfg.Cache.Kind,
		Addr:       cfg.Cache.Redis.Addr,
		Password:   cfg.Cache.Redis.Password,
		DB:         cfg.Cache.Redis.DB,
		Prefix:     cfg.Cache.Redis.Prefix,
		DefaultTTL: cfg.Cache.TTL,
	})
	if err != nil {
		return fail(fmt.Errorf("cache: %w", err))
	}
	app.Cache = cc
	app.closers = append(app.closers, cc.Close)

	issuer, err := jwtx.NewIssuer(cfg.Auth.Issuer, []byte(cfg.Auth.JWTSecret), cfg.Auth.TokenTTL)
	if err != nil {
		return fail(err)
	}
	app.Issuer = issuer

	provider, err := idp.New(idp.Config{
		Kind:           cfg.Auth.Provider,
		FirebaseAPIKey: cfg.Auth.Firebase.APIKey,
		FirebaseURL:    cfg.Auth.Firebase.BaseURL,
	}, conn.Users())
	if err != nil {
		return fail(err)
	}

	svc := services.New(services.Deps{
		Store:    conn,
		Issuer:   issuer,
		Provider: provider,
		Audit:    trail,
		Cache:    cc,
		CacheTTL: cfg.Cache.TTL,
		MaxPage:  cfg.Reports.MaxPageSize,
		Health:   healthDeps(cfg, conn, cc, app.AuditPG),
	})
	app.Services = svc

	var poolFn func() *pgxpool.Pool
	if app.AuditPG != nil {
		poolFn = app.AuditPG.Pool
	}
	metricsHandler, err := metrics.Register(metrics.Config{AuditPool: poolFn})
	if err != nil {
		return fail(fmt.Errorf("metrics: %w", err))
	}

	app.Handler = router.New(router.Deps{
		Controllers: controllers.New(svc, cfg.Reports.MaxPageSize),
		Resolver:    authz.NewResolver(issuer),
		Limiter:     buckets(cfg, cc),
		Metrics:     metricsHandler,
	})
	return app, nil
}

// buckets comparte el redis del cache cuando existe; si no, cuenta en memoria.
func buckets(cfg *config.Config, cc cache.Client) mw.BucketLimiter {
	if cfg.Rate.Disabled {
		return nil
	}
	client, _ := cache.Redis(cc)
	return rate.NewBuckets(client, cfg.Cache.Redis.Prefix+":rl:", map[string]rate.Rule{
		"login": {Limit: cfg.Rate.Login.Limit, Window: cfg.Rate.Login.Window},
	})
}

func healthDeps(cfg *config.Config, conn store.AdapterConnection, cc cache.Client, pg *audit.PGSink) health.Deps {
	d := health.Deps{
		Name:     "alquiler",
		Version:  cfg.App.Version,
		Required: map[string]health.Check{"store": conn.Ping},
		Optional: map[string]health.Check{"cache": cc.Ping},
	}
	if pg != nil {
		d.Optional["audit"] = func(ctx context.Context) error { return pg.Pool().Ping(ctx) }
	}
	return d
}
