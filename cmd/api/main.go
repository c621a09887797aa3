package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"libraryapi/internal/book"
	"libraryapi/internal/config"
	"libraryapi/internal/kv"
	"libraryapi/internal/logging"
	"libraryapi/internal/readinglist"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("load config")
	}
	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("server stopped")
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.close()

	router := newRouter(ctx, cfg, st)

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", cfg.Server.Addr).Str("store", cfg.Store.Driver).Msg("starting server")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logging.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

// stores bundles the repositories of the configured backend.
type stores struct {
	books book.Repository
	lists readinglist.Repository
	ping  func(context.Context) error
	close func()
}

func openStores(ctx context.Context, cfg *config.Config) (stores, error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		pool, err := openPool(ctx, cfg)
		if err != nil {
			return stores{}, err
		}
		return stores{
			books: book.NewPostgresRepo(pool, cfg.Store.Timeout),
			lists: readinglist.NewPostgresRepo(pool, cfg.Store.Timeout),
			ping:  pool.Ping,
			close: pool.Close,
		}, nil
	default:
		db, err := kv.Open(kv.Options{Path: cfg.Store.BadgerPath, InMemory: cfg.Store.BadgerInMemory})
		if err != nil {
			return stores{}, err
		}
		return stores{
			books: book.NewBadgerRepo(db, cfg.Tables.Books),
			lists: readinglist.NewBadgerRepo(db, cfg.Tables.ReadingLists),
			ping:  db.Ping,
			close: func() {
				if err := db.Close(); err != nil {
					logging.Error().Err(err).Msg("close badger")
				}
			},
		}, nil
	}
}

func openPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, cfg.Store.DSN)
	if err != nil {
		return nil, fmt.Errorf("create db pool: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database (%s): %w", cfg.RedactedDSN(), err)
	}
	logging.Info().Str("dsn", cfg.RedactedDSN()).Msg("database connection OK")
	return pool, nil
}
