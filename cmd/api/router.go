package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"libraryapi/internal/book"
	"libraryapi/internal/config"
	"libraryapi/internal/httpx"
	"libraryapi/internal/readinglist"
)

func newRouter(ctx context.Context, cfg *config.Config, st stores) http.Handler {
	r := chi.NewRouter()
	r.Use(httpx.RequestIDMiddleware)
	r.Use(httpx.AccessLogMiddleware)
	r.Use(httpx.RecoveryMiddleware)
	r.Use(httpx.SecurityHeadersMiddleware)
	r.Use(httpx.PreflightMiddleware())
	if cfg.Server.RateLimitRPS > 0 {
		r.Use(httpx.NewRateLimiter(ctx, cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst).Middleware)
	}
	r.Use(httpx.RequestSizeLimitMiddleware(cfg.Server.MaxBodyBytes))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := st.ping(ctx); err != nil {
			httpx.JSONError(w, http.StatusServiceUnavailable, "Store not ready", err.Error())
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	bookService := book.NewService(st.books, book.ScanLimits{
		PageSize: cfg.Tables.ScanPageSize,
		MaxPages: cfg.Tables.ScanMaxPages,
	})
	book.NewHTTPHandler(bookService).Register(r)

	listService := readinglist.NewService(st.lists)
	readinglist.NewHTTPHandler(listService, cfg.DefaultUserID).Register(r)

	return r
}
