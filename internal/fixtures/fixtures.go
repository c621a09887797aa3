// Package fixtures holds the built-in catalog and reading lists served when
// the backend cannot be reached, and used to seed a fresh store.
package fixtures

import (
	"time"

	"libraryapi/internal/book"
	"libraryapi/internal/readinglist"
)

var books = []book.Book{
	{
		ID:            "1",
		Title:         "The Great Gatsby",
		Author:        "F. Scott Fitzgerald",
		Genre:         "Classic Literature",
		Description:   "A portrait of the Jazz Age told through the eyes of Nick Carraway and his mysterious neighbour Jay Gatsby.",
		CoverImage:    "https://covers.openlibrary.org/b/isbn/9780743273565-L.jpg",
		Rating:        4.2,
		PublishedYear: 1925,
		ISBN:          "9780743273565",
	},
	{
		ID:            "2",
		Title:         "To Kill a Mockingbird",
		Author:        "Harper Lee",
		Genre:         "Classic Literature",
		Description:   "A young girl watches her father defend a Black man accused of a crime in 1930s Alabama.",
		CoverImage:    "https://covers.openlibrary.org/b/isbn/9780061120084-L.jpg",
		Rating:        4.5,
		PublishedYear: 1960,
		ISBN:          "9780061120084",
	},
	{
		ID:            "3",
		Title:         "1984",
		Author:        "George Orwell",
		Genre:         "Dystopian Fiction",
		Description:   "Winston Smith rebels against the Party in a society of total surveillance.",
		CoverImage:    "https://covers.openlibrary.org/b/isbn/9780451524935-L.jpg",
		Rating:        4.4,
		PublishedYear: 1949,
		ISBN:          "9780451524935",
	},
	{
		ID:            "4",
		Title:         "Pride and Prejudice",
		Author:        "Jane Austen",
		Genre:         "Romance",
		Description:   "Elizabeth Bennet and Mr. Darcy misjudge each other across the drawing rooms of Regency England.",
		CoverImage:    "https://covers.openlibrary.org/b/isbn/9780141439518-L.jpg",
		Rating:        4.3,
		PublishedYear: 1813,
		ISBN:          "9780141439518",
	},
	{
		ID:            "5",
		Title:         "Dune",
		Author:        "Frank Herbert",
		Genre:         "Science Fiction",
		Description:   "Paul Atreides comes of age on the desert planet Arrakis, source of the most valuable substance in the universe.",
		CoverImage:    "https://covers.openlibrary.org/b/isbn/9780441013593-L.jpg",
		Rating:        4.6,
		PublishedYear: 1965,
		ISBN:          "9780441013593",
	},
	{
		ID:            "6",
		Title:         "The Hobbit",
		Author:        "J.R.R. Tolkien",
		Genre:         "Fantasy",
		Description:   "Bilbo Baggins is swept into a quest to reclaim a dwarf kingdom from the dragon Smaug.",
		CoverImage:    "https://covers.openlibrary.org/b/isbn/9780547928227-L.jpg",
		Rating:        4.7,
		PublishedYear: 1937,
		ISBN:          "9780547928227",
	},
	{
		ID:            "7",
		Title:         "The Catcher in the Rye",
		Author:        "J.D. Salinger",
		Genre:         "Classic Literature",
		Description:   "Holden Caulfield wanders New York City in the days after being expelled from school.",
		CoverImage:    "https://covers.openlibrary.org/b/isbn/9780316769488-L.jpg",
		Rating:        3.8,
		PublishedYear: 1951,
		ISBN:          "9780316769488",
	},
	{
		ID:            "8",
		Title:         "Sapiens",
		Author:        "Yuval Noah Harari",
		Genre:         "History",
		Description:   "A brief history of humankind from the Stone Age to the present.",
		CoverImage:    "https://covers.openlibrary.org/b/isbn/9780062316097-L.jpg",
		Rating:        4.4,
		PublishedYear: 2011,
		ISBN:          "9780062316097",
	},
}

var listTime = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

var readingLists = []readinglist.ReadingList{
	{
		ID:          "1",
		UserID:      "1",
		Name:        "Summer Reading",
		Description: "Books to read on vacation",
		BookIDs:     []string{"1", "4", "6"},
		CreatedAt:   listTime,
		UpdatedAt:   listTime,
	},
	{
		ID:          "2",
		UserID:      "1",
		Name:        "Sci-Fi Classics",
		Description: "Essential science fiction",
		BookIDs:     []string{"3", "5"},
		CreatedAt:   listTime.Add(24 * time.Hour),
		UpdatedAt:   listTime.Add(48 * time.Hour),
	},
}

// Books returns a fresh copy of the fixture catalog.
func Books() []book.Book {
	return append([]book.Book(nil), books...)
}

// Book looks a fixture up by id.
func Book(id string) (book.Book, bool) {
	for _, b := range books {
		if b.ID == id {
			return b, true
		}
	}
	return book.Book{}, false
}

// ReadingLists returns deep copies of the fixture lists.
func ReadingLists() []readinglist.ReadingList {
	out := make([]readinglist.ReadingList, len(readingLists))
	for i, l := range readingLists {
		out[i] = l.Clone()
	}
	return out
}

// ReadingList looks a fixture list up by id.
func ReadingList(id string) (readinglist.ReadingList, bool) {
	for _, l := range readingLists {
		if l.ID == id {
			return l.Clone(), true
		}
	}
	return readinglist.ReadingList{}, false
}
