package book

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"libraryapi/internal/validation"
)

// ErrInvalid wraps validation failures on admin writes.
var ErrInvalid = errors.New("invalid book")

// ScanLimits bounds a full catalog listing.
type ScanLimits struct {
	PageSize int
	MaxPages int
}

// Service provides book-related business logic.
type Service struct {
	repo   Repository
	limits ScanLimits
	now    func() time.Time
}

// NewService creates a new book service.
func NewService(repo Repository, limits ScanLimits) *Service {
	if limits.PageSize <= 0 {
		limits.PageSize = 1000
	}
	if limits.MaxPages <= 0 {
		limits.MaxPages = 10
	}
	return &Service{
		repo:   repo,
		limits: limits,
		now:    time.Now,
	}
}

// ListAll reads the catalog page by page, up to the configured page limit,
// and returns it sorted by title with the distinct genres.
func (s *Service) ListAll(ctx context.Context) (Catalog, error) {
	var (
		books    []Book
		startKey string
		pages    int
	)
	for {
		page, err := s.repo.ScanPage(ctx, startKey, s.limits.PageSize)
		if err != nil {
			return Catalog{}, fmt.Errorf("scan books page %d: %w", pages+1, err)
		}
		books = append(books, page.Books...)
		pages++
		startKey = page.LastKey
		if startKey == "" || pages >= s.limits.MaxPages {
			break
		}
	}
	if books == nil {
		books = []Book{}
	}

	SortByTitle(books)
	return Catalog{
		Books: books,
		Metadata: Metadata{
			TotalBooks:  len(books),
			Genres:      Genres(books),
			LastUpdated: s.now().UTC(),
		},
		Truncated: startKey != "",
	}, nil
}

// SortByTitle orders books by title using English collation.
func SortByTitle(books []Book) {
	c := collate.New(language.English)
	slices.SortStableFunc(books, func(a, b Book) int {
		return c.CompareString(a.Title, b.Title)
	})
}

// Genres returns the sorted distinct non-empty genres.
func Genres(books []Book) []string {
	seen := make(map[string]struct{})
	genres := []string{}
	for _, b := range books {
		if b.Genre == "" {
			continue
		}
		if _, ok := seen[b.Genre]; ok {
			continue
		}
		seen[b.Genre] = struct{}{}
		genres = append(genres, b.Genre)
	}
	slices.Sort(genres)
	return genres
}

// Get returns a book by id.
func (s *Service) Get(ctx context.Context, id string) (Book, error) {
	return s.repo.Get(ctx, id)
}

// Create stores a new book, assigning an id when none is given.
func (s *Service) Create(ctx context.Context, b Book) (Book, error) {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if err := s.check(b); err != nil {
		return Book{}, err
	}
	if err := s.repo.Put(ctx, &b); err != nil {
		return Book{}, err
	}
	return b, nil
}

// Update replaces an existing book.
func (s *Service) Update(ctx context.Context, id string, b Book) (Book, error) {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return Book{}, err
	}
	b.ID = id
	if err := s.check(b); err != nil {
		return Book{}, err
	}
	if err := s.repo.Put(ctx, &b); err != nil {
		return Book{}, err
	}
	return b, nil
}

// Delete removes a book and returns it.
func (s *Service) Delete(ctx context.Context, id string) (Book, error) {
	return s.repo.Delete(ctx, id)
}

func (s *Service) check(b Book) error {
	if err := validation.Struct(b); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}
