package fixtures

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libraryapi/internal/validation"
)

func TestBooks_AreValidAndUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, b := range Books() {
		assert.NoError(t, validation.Struct(b), b.ID)
		assert.False(t, seen[b.ID], "duplicate id %s", b.ID)
		seen[b.ID] = true
	}
}

func TestReadingLists_ReferenceFixtureBooks(t *testing.T) {
	for _, l := range ReadingLists() {
		for _, id := range l.BookIDs {
			_, ok := Book(id)
			assert.True(t, ok, "list %s references unknown book %s", l.ID, id)
		}
		assert.False(t, l.UpdatedAt.Before(l.CreatedAt))
	}
}

func TestCopiesAreIsolated(t *testing.T) {
	lists := ReadingLists()
	lists[0].BookIDs[0] = "mutated"
	again, ok := ReadingList(lists[0].ID)
	require.True(t, ok)
	assert.NotEqual(t, "mutated", again.BookIDs[0])

	bs := Books()
	bs[0].Title = "mutated"
	b, _ := Book(bs[0].ID)
	assert.NotEqual(t, "mutated", b.Title)

	_, ok = Book("missing")
	assert.False(t, ok)
}
