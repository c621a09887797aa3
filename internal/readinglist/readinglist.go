package readinglist

import (
	"errors"
	"time"
)

var (
	ErrNotFound         = errors.New("Reading list not found")
	ErrMissingName      = errors.New("Missing required field: name")
	ErrNoFieldsToUpdate = errors.New("No fields to update")
)

// ReadingList is a named, user-owned ordered collection of book ids.
// BookIDs never holds the same id twice.
type ReadingList struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	BookIDs     []string  `json:"bookIds"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Clone returns a copy that shares no memory with l.
func (l ReadingList) Clone() ReadingList {
	l.BookIDs = append([]string{}, l.BookIDs...)
	return l
}

// Contains reports whether bookID is in the list.
func (l ReadingList) Contains(bookID string) bool {
	for _, id := range l.BookIDs {
		if id == bookID {
			return true
		}
	}
	return false
}

// NewList is the input for creating a list.
type NewList struct {
	UserID      string   `json:"userId,omitempty"`
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	BookIDs     []string `json:"bookIds"`
}

// Patch carries the fields of a partial update. Nil means "leave as is";
// an explicit JSON null decodes to nil too.
type Patch struct {
	Name        *string   `json:"name,omitempty"`
	Description *string   `json:"description,omitempty"`
	BookIDs     *[]string `json:"bookIds,omitempty"`
}

func (p Patch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.BookIDs == nil
}

// Apply copies the present fields onto l.
func (p Patch) Apply(l *ReadingList) {
	if p.Name != nil {
		l.Name = *p.Name
	}
	if p.Description != nil {
		l.Description = *p.Description
	}
	if p.BookIDs != nil {
		l.BookIDs = UniqueIDs(*p.BookIDs)
	}
}

// UniqueIDs drops repeated ids, keeping the first occurrence. Never returns nil.
func UniqueIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Timestamp truncates t to the millisecond precision used on the wire.
func Timestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}
