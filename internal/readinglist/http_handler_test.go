package readinglist

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libraryapi/internal/testutil"
)

func newBadgerRouter(t *testing.T) http.Handler {
	t.Helper()
	r := chi.NewRouter()
	NewHTTPHandler(NewService(NewBadgerRepo(testutil.OpenDB(t), "ReadingLists")), "1").Register(r)
	return r
}

func do(t *testing.T, h http.Handler, method, target, body string) (testutil.RecordResponse, map[string]any) {
	t.Helper()
	var payload interface{}
	if body != "" {
		payload = body
	}
	res := testutil.Serve(h, testutil.NewRequest(method, target, payload))
	return res, res.Body
}

func TestHTTP_CreateThenList(t *testing.T) {
	router := newBadgerRouter(t)

	w, body := do(t, router, http.MethodPost, "/reading-lists", `{"name":"Summer 2024","description":"","bookIds":[]}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Reading list created successfully", body["message"])
	assert.Equal(t, "*", w.Header.Get("Access-Control-Allow-Origin"))

	created := body["readingList"].(map[string]any)
	assert.Equal(t, "1", created["userId"])
	assert.Equal(t, created["createdAt"], created["updatedAt"])
	assert.Equal(t, []any{}, created["bookIds"])

	w, body = do(t, router, http.MethodGet, "/reading-lists", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, body["count"])
	assert.Equal(t, "1", body["userId"])
	lists := body["readingLists"].([]any)
	assert.Equal(t, "Summer 2024", lists[0].(map[string]any)["name"])

	w, body = do(t, router, http.MethodGet, "/reading-lists?userId=2", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, body["count"])
	assert.Equal(t, []any{}, body["readingLists"])
}

func TestHTTP_CreateValidation(t *testing.T) {
	router := newBadgerRouter(t)

	w, body := do(t, router, http.MethodPost, "/reading-lists", `{"description":"x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing required field: name", body["error"])

	w, _ = do(t, router, http.MethodPost, "/reading-lists", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHTTP_UpdateScenario(t *testing.T) {
	router := newBadgerRouter(t)

	_, body := do(t, router, http.MethodPost, "/reading-lists", `{"name":"Classics","userId":"u1"}`)
	id := body["readingList"].(map[string]any)["id"].(string)

	w, body := do(t, router, http.MethodPut, "/reading-lists/"+id, `{"userId":"u1","bookIds":["a","b"]}`)
	require.Equal(t, http.StatusOK, w.Code)
	first := body["readingList"].(map[string]any)
	assert.Equal(t, "Reading list updated successfully", body["message"])

	w, body = do(t, router, http.MethodPut, "/reading-lists/"+id, `{"userId":"u1","bookIds":["a"]}`)
	require.Equal(t, http.StatusOK, w.Code)
	second := body["readingList"].(map[string]any)

	assert.Equal(t, []any{"a"}, second["bookIds"])
	assert.Equal(t, "Classics", second["name"])
	firstAt, err := time.Parse(time.RFC3339Nano, first["updatedAt"].(string))
	require.NoError(t, err)
	secondAt, err := time.Parse(time.RFC3339Nano, second["updatedAt"].(string))
	require.NoError(t, err)
	assert.True(t, secondAt.After(firstAt))

	w, body = do(t, router, http.MethodPut, "/reading-lists/"+id, `{"userId":"u1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No fields to update", body["error"])

	w, body = do(t, router, http.MethodPut, "/reading-lists/"+id, `{"userId":"u1","bookIds":null}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No fields to update", body["error"])

	w, body = do(t, router, http.MethodPut, "/reading-lists/"+id, `{"name":"wrong owner"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Reading list not found", body["error"])

	w, body = do(t, router, http.MethodPut, "/reading-lists/does-not-exist", `{"name":""}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Reading list not found", body["error"])

	w, body = do(t, router, http.MethodPut, "/reading-lists", `{"name":"x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing reading list ID in path", body["error"])
}

func TestHTTP_GetByIndexAndDelete(t *testing.T) {
	router := newBadgerRouter(t)

	_, body := do(t, router, http.MethodPost, "/reading-lists", `{"name":"To read","userId":"u9","bookIds":["x"]}`)
	id := body["readingList"].(map[string]any)["id"].(string)

	w, body := do(t, router, http.MethodGet, "/reading-lists/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u9", body["readingList"].(map[string]any)["userId"])

	w, _ = do(t, router, http.MethodDelete, "/reading-lists/"+id, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, body = do(t, router, http.MethodDelete, "/reading-lists/"+id+"?userId=u9", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Reading list deleted successfully", body["message"])
	assert.Equal(t, "To read", body["deletedReadingList"].(map[string]any)["name"])

	w, _ = do(t, router, http.MethodGet, "/reading-lists/"+id, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, body = do(t, router, http.MethodDelete, "/reading-lists", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing reading list ID in path", body["error"])
}

func TestHTTP_StoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepository(ctrl)
	r := chi.NewRouter()
	NewHTTPHandler(NewService(repo), "1").Register(r)

	repo.EXPECT().ListByUser(gomock.Any(), "1").Return(nil, errors.New("connection reset"))

	w, body := do(t, r, http.MethodGet, "/reading-lists", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to retrieve reading lists", body["error"])
	assert.Contains(t, body["message"], "connection reset")
}
