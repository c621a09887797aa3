package state

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libraryapi/internal/readinglist"
)

type recordingNotifier struct {
	mu        sync.Mutex
	successes []string
	failures  []string
}

func (n *recordingNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, msg)
}

func (n *recordingNotifier) Failure(msg string, err error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.failures = append(n.failures, msg)
}

var t0 = time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

func list(id string, ids ...string) readinglist.ReadingList {
	if ids == nil {
		ids = []string{}
	}
	return readinglist.ReadingList{ID: id, UserID: "1", Name: "List " + id, BookIDs: ids, CreatedAt: t0, UpdatedAt: t0}
}

func bookIDs(ids ...string) readinglist.Patch {
	return readinglist.Patch{BookIDs: &ids}
}

func loaded(t *testing.T, lists ...readinglist.ReadingList) (*ReadingLists, *MockListsAPI, *recordingNotifier) {
	t.Helper()
	ctrl := gomock.NewController(t)
	api := NewMockListsAPI(ctrl)
	n := &recordingNotifier{}
	s := NewReadingLists(api, n)

	api.EXPECT().ListUserLists(gomock.Any()).Return(lists, nil)
	require.NoError(t, s.Refresh(context.Background()))
	return s, api, n
}

func TestRefresh_Phases(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := NewMockListsAPI(ctrl)
	s := NewReadingLists(api, &recordingNotifier{})
	assert.Equal(t, PhaseUninitialized, s.Phase())

	api.EXPECT().ListUserLists(gomock.Any()).DoAndReturn(func(context.Context) ([]readinglist.ReadingList, error) {
		assert.True(t, s.IsLoading())
		return []readinglist.ReadingList{list("1", "a")}, nil
	})
	require.NoError(t, s.Refresh(context.Background()))

	assert.Equal(t, PhaseReady, s.Phase())
	assert.False(t, s.IsLoading())
	assert.Len(t, s.Lists(), 1)
}

func TestRefresh_FailureKeepsLists(t *testing.T) {
	s, api, n := loaded(t, list("1", "a"))
	boom := errors.New("network down")

	api.EXPECT().ListUserLists(gomock.Any()).Return(nil, boom)
	err := s.Refresh(context.Background())

	assert.ErrorIs(t, err, boom)
	assert.False(t, s.IsLoading())
	assert.Equal(t, []readinglist.ReadingList{list("1", "a")}, s.Lists())
	assert.Equal(t, []string{"Failed to load reading lists"}, n.failures)
}

func TestRefresh_ReplacesWholesale(t *testing.T) {
	s, api, _ := loaded(t, list("1", "a"), list("2"))

	api.EXPECT().ListUserLists(gomock.Any()).Return([]readinglist.ReadingList{list("3")}, nil)
	require.NoError(t, s.Refresh(context.Background()))

	lists := s.Lists()
	require.Len(t, lists, 1)
	assert.Equal(t, "3", lists[0].ID)
}

func TestAddBookToList(t *testing.T) {
	s, api, n := loaded(t, list("1", "a"))
	server := list("1", "a", "b")
	server.UpdatedAt = t0.Add(time.Minute)

	api.EXPECT().UpdateList(gomock.Any(), "1", bookIDs("a", "b")).Return(server, nil)
	added, err := s.AddBookToList(context.Background(), "b", "1")

	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, server, s.Lists()[0])
	assert.True(t, s.IsBookInList("b", "1"))
	assert.Equal(t, []string{`Book added to "List 1"!`}, n.successes)
}

func TestAddBookToList_AlreadyPresentWritesNothing(t *testing.T) {
	s, _, n := loaded(t, list("1", "a"))

	added, err := s.AddBookToList(context.Background(), "a", "1")

	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, []string{"Book is already in this list!"}, n.successes)
}

func TestAddBookToList_UnknownList(t *testing.T) {
	s, _, n := loaded(t, list("1"))

	_, err := s.AddBookToList(context.Background(), "a", "nope")

	assert.ErrorIs(t, err, ErrListNotFound)
	assert.Equal(t, "Reading list not found", err.Error())
	assert.Len(t, n.failures, 1)
}

func TestAddBookToList_FailureLeavesStateUnchanged(t *testing.T) {
	s, api, n := loaded(t, list("1", "a"))
	boom := errors.New("503")

	api.EXPECT().UpdateList(gomock.Any(), "1", bookIDs("a", "b")).Return(readinglist.ReadingList{}, boom)
	_, err := s.AddBookToList(context.Background(), "b", "1")

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"a"}, s.Lists()[0].BookIDs)
	assert.Equal(t, []string{"Failed to add book to list"}, n.failures)
}

func TestAddBooksToList(t *testing.T) {
	s, api, _ := loaded(t, list("1", "a", "b"))

	api.EXPECT().UpdateList(gomock.Any(), "1", bookIDs("a", "b", "c", "d")).Return(list("1", "a", "b", "c", "d"), nil)
	n, err := s.AddBooksToList(context.Background(), []string{"b", "c", "c", "d"}, "1")

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"a", "b", "c", "d"}, s.Lists()[0].BookIDs)
}

func TestAddBooksToList_NothingNew(t *testing.T) {
	s, _, notes := loaded(t, list("1", "a", "b"))

	n, err := s.AddBooksToList(context.Background(), []string{"b", "a"}, "1")

	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, []string{"All selected books are already in this list!"}, notes.successes)
}

func TestAddBooksToList_FailureIsReturned(t *testing.T) {
	s, api, _ := loaded(t, list("1"))
	boom := errors.New("boom")

	api.EXPECT().UpdateList(gomock.Any(), "1", gomock.Any()).Return(readinglist.ReadingList{}, boom)
	_, err := s.AddBooksToList(context.Background(), []string{"x"}, "1")

	assert.ErrorIs(t, err, boom)
	assert.Empty(t, s.Lists()[0].BookIDs)
}

func TestRemoveBookFromList(t *testing.T) {
	s, api, _ := loaded(t, list("1", "a", "b", "c"))

	api.EXPECT().UpdateList(gomock.Any(), "1", bookIDs("a", "c")).Return(list("1", "a", "c"), nil)
	require.NoError(t, s.RemoveBookFromList(context.Background(), "b", "1"))

	assert.False(t, s.IsBookInList("b", "1"))
	assert.True(t, s.IsBookInList("c", "1"))
}

func TestRemoveBookFromList_AbsentIsNoop(t *testing.T) {
	s, _, n := loaded(t, list("1", "a"))

	require.NoError(t, s.RemoveBookFromList(context.Background(), "zzz", "1"))
	assert.Empty(t, n.successes)

	assert.ErrorIs(t, s.RemoveBookFromList(context.Background(), "a", "nope"), ErrListNotFound)
}

func TestIsBookInList_UnknownList(t *testing.T) {
	s, _, _ := loaded(t, list("1", "a"))
	assert.False(t, s.IsBookInList("a", "2"))
}

func TestLists_ReturnsCopy(t *testing.T) {
	s, _, _ := loaded(t, list("1", "a"))

	got := s.Lists()
	got[0].BookIDs[0] = "mutated"
	got[0].Name = "mutated"

	assert.True(t, s.IsBookInList("a", "1"))
	assert.Equal(t, "List 1", s.Lists()[0].Name)
}

func TestCreateAndDeleteList(t *testing.T) {
	s, api, _ := loaded(t, list("1"))
	ctx := context.Background()

	in := readinglist.NewList{Name: "Summer 2024"}
	api.EXPECT().CreateList(gomock.Any(), in).Return(list("2"), nil)
	_, err := s.CreateList(ctx, in)
	require.NoError(t, err)
	assert.Len(t, s.Lists(), 2)

	api.EXPECT().DeleteList(gomock.Any(), "1").Return(nil)
	require.NoError(t, s.DeleteList(ctx, "1"))
	lists := s.Lists()
	require.Len(t, lists, 1)
	assert.Equal(t, "2", lists[0].ID)

	assert.ErrorIs(t, s.DeleteList(ctx, "1"), ErrListNotFound)
}

// Two overlapping adds on one list both start from the same ids. The add
// whose response lands last overwrites the other.
func TestOverlappingAdds_LoseAnUpdate(t *testing.T) {
	s, api, _ := loaded(t, list("L", "x"))

	entered := make(chan struct{})
	release := make(chan struct{})
	api.EXPECT().UpdateList(gomock.Any(), "L", bookIDs("x", "a")).DoAndReturn(
		func(context.Context, string, readinglist.Patch) (readinglist.ReadingList, error) {
			close(entered)
			<-release
			return list("L", "x", "a"), nil
		})
	api.EXPECT().UpdateList(gomock.Any(), "L", bookIDs("x", "b")).Return(list("L", "x", "b"), nil)

	done := make(chan error, 1)
	go func() {
		_, err := s.AddBookToList(context.Background(), "a", "L")
		done <- err
	}()

	<-entered
	added, err := s.AddBookToList(context.Background(), "b", "L")
	require.NoError(t, err)
	assert.True(t, added)
	assert.True(t, s.IsBookInList("b", "L"))

	close(release)
	require.NoError(t, <-done)

	assert.Equal(t, []string{"x", "a"}, s.Lists()[0].BookIDs)
	assert.False(t, s.IsBookInList("b", "L"))
}
