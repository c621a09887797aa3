package readinglist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"libraryapi/internal/validation"
)

type Service struct {
	repo  Repository
	now   func() time.Time
	newID func() string
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:  repo,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Create stores a new list owned by in.UserID. The caller resolves the
// default owner before calling.
func (s *Service) Create(ctx context.Context, in NewList) (ReadingList, error) {
	if err := validation.Struct(in); err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) && verrs.Has("name", "required") {
			return ReadingList{}, ErrMissingName
		}
		return ReadingList{}, err
	}

	now := Timestamp(s.now())
	l := ReadingList{
		ID:          s.newID(),
		UserID:      in.UserID,
		Name:        in.Name,
		Description: in.Description,
		BookIDs:     UniqueIDs(in.BookIDs),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, &l); err != nil {
		return ReadingList{}, fmt.Errorf("create reading list: %w", err)
	}
	return l, nil
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]ReadingList, error) {
	lists, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list reading lists for %s: %w", userID, err)
	}
	if lists == nil {
		lists = []ReadingList{}
	}
	return lists, nil
}

func (s *Service) Get(ctx context.Context, userID, id string) (ReadingList, error) {
	return s.repo.Get(ctx, userID, id)
}

// FindByID resolves a list through the id index, whoever owns it.
func (s *Service) FindByID(ctx context.Context, id string) (ReadingList, error) {
	return s.repo.GetByID(ctx, id)
}

// Update applies the present fields of p and moves UpdatedAt strictly forward.
// A missing list wins over an empty patch.
func (s *Service) Update(ctx context.Context, userID, id string, p Patch) (ReadingList, error) {
	return s.repo.Update(ctx, userID, id, func(l *ReadingList) error {
		if p.Empty() {
			return ErrNoFieldsToUpdate
		}
		p.Apply(l)
		l.UpdatedAt = s.nextUpdatedAt(l.UpdatedAt)
		return nil
	})
}

func (s *Service) nextUpdatedAt(prev time.Time) time.Time {
	now := Timestamp(s.now())
	if !now.After(prev) {
		now = prev.Add(time.Millisecond)
	}
	return now
}

func (s *Service) Delete(ctx context.Context, userID, id string) (ReadingList, error) {
	return s.repo.Delete(ctx, userID, id)
}
