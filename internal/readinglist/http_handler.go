package readinglist

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"libraryapi/internal/httpx"
	"libraryapi/internal/validation"
)

// HTTPHandler serves the reading list routes. Ownership is scoped by the
// client supplied userId, falling back to defaultUserID; it is not verified.
type HTTPHandler struct {
	service       *Service
	defaultUserID string
}

func NewHTTPHandler(service *Service, defaultUserID string) *HTTPHandler {
	return &HTTPHandler{service: service, defaultUserID: defaultUserID}
}

// Register mounts the reading list routes on r.
func (h *HTTPHandler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(httpx.AllowOrigin(http.MethodGet, http.MethodPost))
		r.Get("/reading-lists", h.List)
		r.Post("/reading-lists", h.Create)
		r.Put("/reading-lists", h.Update)
		r.Delete("/reading-lists", h.Delete)
	})
	r.Group(func(r chi.Router) {
		r.Use(httpx.AllowOrigin(http.MethodGet, http.MethodPut, http.MethodDelete))
		r.Get("/reading-lists/{id}", h.Get)
		r.Put("/reading-lists/{id}", h.Update)
		r.Delete("/reading-lists/{id}", h.Delete)
	})
}

func (h *HTTPHandler) userID(candidate string) string {
	if candidate != "" {
		return candidate
	}
	return h.defaultUserID
}

// Create handles POST /reading-lists
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req NewList
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "Invalid JSON in request body", err.Error())
		return
	}
	req.UserID = h.userID(req.UserID)

	l, err := h.service.Create(r.Context(), req)
	if err != nil {
		var verrs validation.Errors
		switch {
		case errors.Is(err, ErrMissingName):
			httpx.JSONError(w, http.StatusBadRequest, ErrMissingName.Error(), "")
		case errors.As(err, &verrs):
			httpx.JSONError(w, http.StatusBadRequest, "Invalid reading list", verrs.Error())
		default:
			httpx.JSONInternalError(w, r, "Failed to create reading list", err)
		}
		return
	}

	httpx.JSON(w, http.StatusCreated, map[string]any{
		"readingList": l,
		"message":     "Reading list created successfully",
	})
}

// List handles GET /reading-lists?userId=
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := h.userID(r.URL.Query().Get("userId"))

	lists, err := h.service.ListByUser(r.Context(), userID)
	if err != nil {
		httpx.JSONInternalError(w, r, "Failed to retrieve reading lists", err)
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]any{
		"readingLists": lists,
		"count":        len(lists),
		"userId":       userID,
	})
}

// Get handles GET /reading-lists/{id}. Without a userId the id index is used.
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var (
		l   ReadingList
		err error
	)
	if userID := r.URL.Query().Get("userId"); userID != "" {
		l, err = h.service.Get(r.Context(), userID, id)
	} else {
		l, err = h.service.FindByID(r.Context(), id)
	}
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, ErrNotFound.Error(), "")
			return
		}
		httpx.JSONInternalError(w, r, "Failed to retrieve reading list", err)
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]any{"readingList": l})
}

type updateReq struct {
	UserID string `json:"userId"`
	Patch
}

// Update handles PUT /reading-lists/{id}
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		httpx.JSONError(w, http.StatusBadRequest, "Missing reading list ID in path", "")
		return
	}

	var req updateReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "Invalid JSON in request body", err.Error())
		return
	}

	l, err := h.service.Update(r.Context(), h.userID(req.UserID), id, req.Patch)
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.JSONError(w, http.StatusNotFound, ErrNotFound.Error(), "")
	case errors.Is(err, ErrNoFieldsToUpdate):
		httpx.JSONError(w, http.StatusBadRequest, ErrNoFieldsToUpdate.Error(), "")
	case err != nil:
		httpx.JSONInternalError(w, r, "Failed to update reading list", err)
	default:
		httpx.JSON(w, http.StatusOK, map[string]any{
			"readingList": l,
			"message":     "Reading list updated successfully",
		})
	}
}

// Delete handles DELETE /reading-lists/{id}?userId=
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		httpx.JSONError(w, http.StatusBadRequest, "Missing reading list ID in path", "")
		return
	}

	l, err := h.service.Delete(r.Context(), h.userID(r.URL.Query().Get("userId")), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, ErrNotFound.Error(), "")
			return
		}
		httpx.JSONInternalError(w, r, "Failed to delete reading list", err)
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]any{
		"deletedReadingList": l,
		"message":            "Reading list deleted successfully",
	})
}
