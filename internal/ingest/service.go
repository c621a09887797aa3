package ingest

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"libraryapi/internal/book"
	"libraryapi/internal/logging"
	"libraryapi/internal/platform/openlibrary"
	"libraryapi/internal/validation"
)

type Config struct {
	BooksMax  int
	Subjects  []string
	BatchSize int
}

type OpenLibraryClient interface {
	SearchBooks(ctx context.Context, subject string, limit int) (*openlibrary.SearchResponse, error)
	GetBooksByISBN(ctx context.Context, isbns []string) (map[string]openlibrary.BookDetails, error)
}

// BookStore is the part of book.Repository ingestion writes through.
type BookStore interface {
	Get(ctx context.Context, id string) (book.Book, error)
	Put(ctx context.Context, b *book.Book) error
}

type Service struct {
	olClient OpenLibraryClient
	books    BookStore
	cfg      Config
	now      func() time.Time
}

func NewService(olClient OpenLibraryClient, books BookStore, cfg Config) *Service {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 20
	}
	return &Service{
		olClient: olClient,
		books:    books,
		cfg:      cfg,
		now:      time.Now,
	}
}

// Run walks the configured subjects until BooksMax new books were written.
// Books already in the catalog (by ISBN) are skipped.
func (s *Service) Run(ctx context.Context) (run *Run, err error) {
	run = &Run{
		ID:        uuid.NewString(),
		Status:    StatusRunning,
		Subjects:  s.cfg.Subjects,
		StartedAt: s.now(),
	}
	log := logging.With("ingest").With().Str("run_id", run.ID).Logger()

	defer func() {
		run.FinishedAt = s.now()
		if err != nil {
			run.Error = err.Error()
			run.Status = StatusFailed
		} else {
			run.Status = StatusCompleted
		}
		log.Info().
			Str("status", run.Status).
			Int("books_fetched", run.BooksFetched).
			Int("books_upserted", run.BooksUpserted).
			Int("books_skipped", run.BooksSkipped).
			Dur("took", run.FinishedAt.Sub(run.StartedAt)).
			Msg("ingest run finished")
	}()

	processed := make(map[string]bool)
	for _, subject := range s.cfg.Subjects {
		if s.done(run) {
			break
		}

		searchLimit := 100
		if remaining := s.cfg.BooksMax - run.BooksUpserted; remaining < 50 {
			searchLimit = remaining * 2
		}

		res, err := s.olClient.SearchBooks(ctx, subject, searchLimit)
		if err != nil {
			return run, fmt.Errorf("search failed for %s: %w", subject, err)
		}

		docs := make(map[string]openlibrary.SearchDoc)
		var batch []string
		for _, doc := range res.Docs {
			isbn := preferredISBN(doc.ISBN)
			if isbn == "" || processed[isbn] {
				continue
			}
			processed[isbn] = true

			if _, err := s.books.Get(ctx, isbn); err == nil {
				run.BooksSkipped++
				continue
			} else if !errors.Is(err, book.ErrNotFound) {
				return run, fmt.Errorf("check %s: %w", isbn, err)
			}

			docs[isbn] = doc
			batch = append(batch, isbn)
			if len(batch) >= s.cfg.BatchSize {
				s.hydrateBatch(ctx, run, subject, batch, docs)
				batch = nil
				if s.done(run) {
					break
				}
			}
		}
		if len(batch) > 0 && !s.done(run) {
			s.hydrateBatch(ctx, run, subject, batch, docs)
		}
	}
	return run, nil
}

func (s *Service) done(run *Run) bool {
	return run.BooksUpserted >= s.cfg.BooksMax
}

func (s *Service) hydrateBatch(ctx context.Context, run *Run, subject string, isbns []string, docs map[string]openlibrary.SearchDoc) {
	batch, err := s.olClient.GetBooksByISBN(ctx, isbns)
	if err != nil {
		logging.Warn().Err(err).Int("isbns", len(isbns)).Msg("failed to hydrate batch")
		return
	}
	run.BooksFetched += len(batch)

	// map iteration order is random; walk the search order instead
	for _, isbn := range isbns {
		if s.done(run) {
			return
		}
		details, ok := batch["ISBN:"+isbn]
		if !ok {
			continue
		}

		b := toBook(isbn, subject, docs[isbn], details)
		if err := validation.Struct(b); err != nil {
			logging.Debug().Err(err).Str("isbn", isbn).Msg("skipping incomplete book")
			run.BooksSkipped++
			continue
		}
		if err := s.books.Put(ctx, &b); err != nil {
			logging.Warn().Err(err).Str("isbn", isbn).Msg("failed to upsert book")
			continue
		}
		run.BooksUpserted++
	}
}

func toBook(isbn, subject string, doc openlibrary.SearchDoc, d openlibrary.BookDetails) book.Book {
	title := d.Title
	if title == "" {
		title = doc.Title
	}
	if d.Subtitle != "" {
		title += ": " + d.Subtitle
	}

	var author string
	switch {
	case len(d.Authors) > 0:
		author = d.Authors[0].Name
	case len(doc.AuthorNames) > 0:
		author = doc.AuthorNames[0]
	}

	year := doc.FirstPublishYear
	if year == 0 {
		year = publishYear(d.PublishDate)
	}

	return book.Book{
		ID:            isbn,
		Title:         title,
		Author:        author,
		Genre:         genreFromSubject(subject),
		Description:   d.Notes,
		CoverImage:    d.Cover.Large,
		PublishedYear: year,
		ISBN:          isbn,
	}
}

// preferredISBN picks the first 13 digit ISBN, else the first one.
func preferredISBN(isbns []string) string {
	for _, i := range isbns {
		if len(i) == 13 {
			return i
		}
	}
	if len(isbns) > 0 {
		return isbns[0]
	}
	return ""
}

var yearRe = regexp.MustCompile(`\b(1[5-9]\d\d|20\d\d)\b`)

// publishYear pulls a year out of free form dates like "March 3, 2005".
func publishYear(date string) int {
	m := yearRe.FindString(date)
	if m == "" {
		return 0
	}
	y, _ := strconv.Atoi(m)
	return y
}

func genreFromSubject(subject string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(subject, "_", " "))
}
