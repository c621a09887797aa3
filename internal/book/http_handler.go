package book

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"libraryapi/internal/httpx"
)

const (
	listCacheControl = "public, max-age=300"
	getCacheControl  = "public, max-age=600"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// Register mounts the book routes on r.
func (h *HTTPHandler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(httpx.AllowOrigin(http.MethodGet, http.MethodPost))
		r.Get("/books", h.List)
		r.Post("/books", h.Create)
	})
	r.Group(func(r chi.Router) {
		r.Use(httpx.AllowOrigin(http.MethodGet, http.MethodPut, http.MethodDelete))
		r.Get("/books/{id}", h.Get)
		r.Put("/books/{id}", h.Update)
		r.Delete("/books/{id}", h.Delete)
	})
}

type listResponse struct {
	Books       []Book      `json:"books"`
	Count       int         `json:"count"`
	Performance performance `json:"performance"`
	Metadata    Metadata    `json:"metadata"`
}

type performance struct {
	ScanTimeMs int64     `json:"scanTimeMs"`
	Timestamp  time.Time `json:"timestamp"`
	Truncated  bool      `json:"truncated"`
}

// List handles GET /books
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	catalog, err := h.service.ListAll(r.Context())
	if err != nil {
		httpx.JSONInternalError(w, r, "Failed to retrieve books", err)
		return
	}

	etag, err := catalogETag(catalog.Books)
	if err != nil {
		httpx.JSONInternalError(w, r, "Failed to retrieve books", err)
		return
	}
	w.Header().Set("Cache-Control", listCacheControl)
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	httpx.JSON(w, http.StatusOK, listResponse{
		Books: catalog.Books,
		Count: len(catalog.Books),
		Performance: performance{
			ScanTimeMs: time.Since(start).Milliseconds(),
			Timestamp:  catalog.Metadata.LastUpdated,
			Truncated:  catalog.Truncated,
		},
		Metadata: catalog.Metadata,
	})
}

func catalogETag(books []Book) (string, error) {
	data, err := json.Marshal(books)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return `W/"` + hex.EncodeToString(sum[:8]) + `"`, nil
}

// Get handles GET /books/{id}
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		httpx.JSONError(w, http.StatusBadRequest, "Missing book ID", "Book ID is required in path parameters")
		return
	}

	b, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "Book not found", fmt.Sprintf("Book with ID %s does not exist", id))
			return
		}
		httpx.JSONInternalError(w, r, "Failed to retrieve book", err)
		return
	}

	w.Header().Set("Cache-Control", getCacheControl)
	httpx.JSON(w, http.StatusOK, map[string]any{"book": b})
}

// Create handles POST /books
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req Book
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	b, err := h.service.Create(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalid) {
			httpx.JSONError(w, http.StatusBadRequest, "Invalid book", err.Error())
			return
		}
		httpx.JSONInternalError(w, r, "Failed to create book", err)
		return
	}

	httpx.JSON(w, http.StatusCreated, map[string]any{
		"book":    b,
		"message": "Book created successfully",
	})
}

// Update handles PUT /books/{id}
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		httpx.JSONError(w, http.StatusBadRequest, "Missing book ID", "Book ID is required in path parameters")
		return
	}

	var req Book
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	b, err := h.service.Update(r.Context(), id, req)
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.JSONError(w, http.StatusNotFound, "Book not found", fmt.Sprintf("Book with ID %s does not exist", id))
	case errors.Is(err, ErrInvalid):
		httpx.JSONError(w, http.StatusBadRequest, "Invalid book", err.Error())
	case err != nil:
		httpx.JSONInternalError(w, r, "Failed to update book", err)
	default:
		httpx.JSON(w, http.StatusOK, map[string]any{
			"book":    b,
			"message": "Book updated successfully",
		})
	}
}

// Delete handles DELETE /books/{id}
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		httpx.JSONError(w, http.StatusBadRequest, "Missing book ID", "Book ID is required in path parameters")
		return
	}

	b, err := h.service.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "Book not found", fmt.Sprintf("Book with ID %s does not exist", id))
			return
		}
		httpx.JSONInternalError(w, r, "Failed to delete book", err)
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]any{
		"deletedBook": b,
		"message":     "Book deleted successfully",
	})
}
