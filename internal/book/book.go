package book

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a book is not found.
var ErrNotFound = errors.New("book not found")

// Book is one catalog entry.
type Book struct {
	ID            string  `json:"id"`
	Title         string  `json:"title" validate:"required"`
	Author        string  `json:"author" validate:"required"`
	Genre         string  `json:"genre"`
	Description   string  `json:"description"`
	CoverImage    string  `json:"coverImage" validate:"omitempty,url"`
	Rating        float64 `json:"rating" validate:"gte=0,lte=5"`
	PublishedYear int     `json:"publishedYear"`
	ISBN          string  `json:"isbn" validate:"omitempty,isbn"`
}

// Page is one slice of a catalog scan. LastKey is empty once the scan is done.
type Page struct {
	Books   []Book
	LastKey string
}

// Catalog is the fully resolved listing returned by Service.ListAll.
type Catalog struct {
	Books    []Book
	Metadata Metadata
	// Truncated reports that the scan stopped at the page limit with data left.
	Truncated bool
}

type Metadata struct {
	TotalBooks  int       `json:"totalBooks"`
	Genres      []string  `json:"genres"`
	LastUpdated time.Time `json:"lastUpdated"`
}
