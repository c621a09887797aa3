// Package state holds the client side containers for reading lists and
// favorites.
package state

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"libraryapi/internal/readinglist"
)

// ErrListNotFound is returned when a mutation names a list that is not loaded.
var ErrListNotFound = errors.New("Reading list not found")

type Phase int

const (
	PhaseUninitialized Phase = iota
	PhaseLoading
	PhaseReady
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	default:
		return "uninitialized"
	}
}

// ReadingLists is the in-memory copy of the user's reading lists.
//
// The mutex only guards memory and is not held across API calls. Mutations
// compute the new book ids from the current snapshot, so two overlapping
// mutations of one list both start from the same ids and the later response
// wins: the earlier change is lost.
type ReadingLists struct {
	api    ListsAPI
	notify Notifier

	mu    sync.Mutex
	lists []readinglist.ReadingList
	phase Phase
}

func NewReadingLists(api ListsAPI, notify Notifier) *ReadingLists {
	if notify == nil {
		notify = NewLogNotifier()
	}
	return &ReadingLists{api: api, notify: notify}
}

func (s *ReadingLists) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

func (s *ReadingLists) IsLoading() bool {
	return s.Phase() == PhaseLoading
}

// Lists returns a copy of the loaded lists.
func (s *ReadingLists) Lists() []readinglist.ReadingList {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]readinglist.ReadingList, len(s.lists))
	for i, l := range s.lists {
		out[i] = l.Clone()
	}
	return out
}

// Refresh replaces the loaded lists wholesale. On failure the lists are left
// as they were and the container returns to its previous phase.
func (s *ReadingLists) Refresh(ctx context.Context) error {
	s.mu.Lock()
	prev := s.phase
	s.phase = PhaseLoading
	s.mu.Unlock()

	lists, err := s.api.ListUserLists(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.phase = prev
		s.notify.Failure("Failed to load reading lists", err)
		return fmt.Errorf("refresh reading lists: %w", err)
	}
	s.lists = make([]readinglist.ReadingList, len(lists))
	for i, l := range lists {
		s.lists[i] = l.Clone()
	}
	s.phase = PhaseReady
	return nil
}

// IsBookInList reports whether bookID is in the loaded list listID.
func (s *ReadingLists) IsBookInList(bookID, listID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(listID)
	return i >= 0 && s.lists[i].Contains(bookID)
}

// AddBookToList appends bookID to the list. It reports false without writing
// when the book is already there.
func (s *ReadingLists) AddBookToList(ctx context.Context, bookID, listID string) (bool, error) {
	base, err := s.snapshot(listID)
	if err != nil {
		s.notify.Failure("Failed to add book to list", err)
		return false, err
	}
	if base.Contains(bookID) {
		s.notify.Success("Book is already in this list!")
		return false, nil
	}

	ids := append(base.BookIDs, bookID)
	if err := s.write(ctx, listID, ids); err != nil {
		s.notify.Failure("Failed to add book to list", err)
		return false, err
	}
	s.notify.Success(fmt.Sprintf("Book added to %q!", base.Name))
	return true, nil
}

// AddBooksToList appends the ids not already in the list with a single write
// and returns how many were added.
func (s *ReadingLists) AddBooksToList(ctx context.Context, bookIDs []string, listID string) (int, error) {
	base, err := s.snapshot(listID)
	if err != nil {
		s.notify.Failure("Failed to add books to list", err)
		return 0, err
	}

	var fresh []string
	for _, id := range readinglist.UniqueIDs(bookIDs) {
		if !base.Contains(id) {
			fresh = append(fresh, id)
		}
	}
	if len(fresh) == 0 {
		s.notify.Success("All selected books are already in this list!")
		return 0, nil
	}

	if err := s.write(ctx, listID, append(base.BookIDs, fresh...)); err != nil {
		s.notify.Failure("Failed to add books to list", err)
		return 0, err
	}
	s.notify.Success(fmt.Sprintf("%d books added to %q!", len(fresh), base.Name))
	return len(fresh), nil
}

// RemoveBookFromList drops bookID from the list. Removing a book that is not
// in the list does nothing.
func (s *ReadingLists) RemoveBookFromList(ctx context.Context, bookID, listID string) error {
	base, err := s.snapshot(listID)
	if err != nil {
		s.notify.Failure("Failed to remove book from list", err)
		return err
	}
	if !base.Contains(bookID) {
		return nil
	}

	ids := make([]string, 0, len(base.BookIDs)-1)
	for _, id := range base.BookIDs {
		if id != bookID {
			ids = append(ids, id)
		}
	}
	if err := s.write(ctx, listID, ids); err != nil {
		s.notify.Failure("Failed to remove book from list", err)
		return err
	}
	s.notify.Success(fmt.Sprintf("Book removed from %q!", base.Name))
	return nil
}

// CreateList creates a list remotely and appends the result.
func (s *ReadingLists) CreateList(ctx context.Context, in readinglist.NewList) (readinglist.ReadingList, error) {
	l, err := s.api.CreateList(ctx, in)
	if err != nil {
		s.notify.Failure("Failed to create reading list", err)
		return readinglist.ReadingList{}, err
	}

	s.mu.Lock()
	s.lists = append(s.lists, l.Clone())
	s.mu.Unlock()
	s.notify.Success(fmt.Sprintf("Reading list %q created!", l.Name))
	return l, nil
}

// DeleteList deletes a list remotely and drops it locally.
func (s *ReadingLists) DeleteList(ctx context.Context, listID string) error {
	if _, err := s.snapshot(listID); err != nil {
		s.notify.Failure("Failed to delete reading list", err)
		return err
	}
	if err := s.api.DeleteList(ctx, listID); err != nil {
		s.notify.Failure("Failed to delete reading list", err)
		return err
	}

	s.mu.Lock()
	if i := s.indexOf(listID); i >= 0 {
		s.lists = append(s.lists[:i], s.lists[i+1:]...)
	}
	s.mu.Unlock()
	s.notify.Success("Reading list deleted")
	return nil
}

// snapshot copies the loaded list so the lock can be released before the
// network call.
func (s *ReadingLists) snapshot(listID string) (readinglist.ReadingList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(listID)
	if i < 0 {
		return readinglist.ReadingList{}, ErrListNotFound
	}
	return s.lists[i].Clone(), nil
}

// write sends the new ids and replaces the local entry with the server's copy.
func (s *ReadingLists) write(ctx context.Context, listID string, ids []string) error {
	updated, err := s.api.UpdateList(ctx, listID, readinglist.Patch{BookIDs: &ids})
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(listID); i >= 0 {
		s.lists[i] = updated.Clone()
	}
	return nil
}

func (s *ReadingLists) indexOf(listID string) int {
	for i, l := range s.lists {
		if l.ID == listID {
			return i
		}
	}
	return -1
}
