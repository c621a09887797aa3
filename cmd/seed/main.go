package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/jackc/pgx/v5/pgxpool"

	"libraryapi/internal/book"
	"libraryapi/internal/config"
	"libraryapi/internal/fixtures"
	"libraryapi/internal/ingest"
	"libraryapi/internal/kv"
	"libraryapi/internal/logging"
	"libraryapi/internal/platform/openlibrary"
	"libraryapi/internal/readinglist"
)

func main() {
	var (
		source = flag.String("source", "fixtures", "Where books come from: fixtures or openlibrary")
		lists  = flag.Bool("lists", false, "Also write the sample reading lists")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("load config")
	}
	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	log := logging.With("seed")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	books, readingLists, closeFn, err := openRepos(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("store", cfg.Store.Driver).Msg("open store")
	}
	defer closeFn()

	switch *source {
	case "fixtures":
		n, err := seedFixtures(ctx, books)
		if err != nil {
			log.Fatal().Err(err).Msg("seed fixture books")
		}
		log.Info().Int("books", n).Msg("fixture books written")
	case "openlibrary":
		ol := openlibrary.NewClient("libraryapi-seed/1.0", cfg.Seed.OpenLibraryRPS, 3)
		svc := ingest.NewService(ol, books, ingest.Config{
			BooksMax: cfg.Seed.BooksMax,
			Subjects: cfg.Seed.Subjects,
		})
		if _, err := svc.Run(ctx); err != nil {
			log.Fatal().Err(err).Msg("ingest from open library")
		}
	default:
		log.Fatal().Str("source", *source).Msg("unknown source, use: fixtures, openlibrary")
	}

	if *lists {
		n, err := seedLists(ctx, readingLists)
		if err != nil {
			log.Fatal().Err(err).Msg("seed reading lists")
		}
		log.Info().Int("lists", n).Msg("sample reading lists written")
	}
}

func seedFixtures(ctx context.Context, repo book.Repository) (int, error) {
	books := fixtures.Books()
	for i := range books {
		if err := repo.Put(ctx, &books[i]); err != nil {
			return i, err
		}
	}
	return len(books), nil
}

// seedLists writes the sample lists, leaving any that already exist alone.
func seedLists(ctx context.Context, repo readinglist.Repository) (int, error) {
	written := 0
	for _, l := range fixtures.ReadingLists() {
		if _, err := repo.Get(ctx, l.UserID, l.ID); err == nil {
			continue
		}
		if err := repo.Create(ctx, &l); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}

func openRepos(ctx context.Context, cfg *config.Config) (book.Repository, readinglist.Repository, func(), error) {
	if cfg.Store.Driver == config.DriverPostgres {
		pool, err := pgxpool.New(ctx, cfg.Store.DSN)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, nil, err
		}
		return book.NewPostgresRepo(pool, cfg.Store.Timeout),
			readinglist.NewPostgresRepo(pool, cfg.Store.Timeout),
			pool.Close, nil
	}

	db, err := kv.Open(kv.Options{Path: cfg.Store.BadgerPath, InMemory: cfg.Store.BadgerInMemory})
	if err != nil {
		return nil, nil, nil, err
	}
	return book.NewBadgerRepo(db, cfg.Tables.Books),
		readinglist.NewBadgerRepo(db, cfg.Tables.ReadingLists),
		func() { _ = db.Close() }, nil
}
