package client

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"libraryapi/internal/book"
	"libraryapi/internal/fixtures"
)

// ListCatalog returns every book. It never fails: within the TTL the cached
// catalog is returned without a network call, and when the API is down the
// last cached catalog (of any age) or the fixture catalog is served instead.
// Concurrent misses share a single request.
func (c *Client) ListCatalog(ctx context.Context) []book.Book {
	if books, at, ok := c.cache.load(); ok && c.now().Sub(at) < c.ttl {
		return books
	}

	v, _, _ := c.group.Do("catalog", func() (any, error) {
		var resp struct {
			Books []book.Book `json:"books"`
		}
		// Shared by every waiter, so it is not bound to the first caller's
		// cancellation. The HTTP client timeout still applies.
		if err := c.do(context.WithoutCancel(ctx), http.MethodGet, "/books", nil, &resp); err != nil {
			if books, _, ok := c.cache.load(); ok {
				c.fallback("list catalog (stale cache)", err)
				return books, nil
			}
			c.fallback("list catalog", err)
			return fixtures.Books(), nil
		}
		if resp.Books == nil {
			resp.Books = []book.Book{}
		}
		c.cache.store(resp.Books, c.now())
		return resp.Books, nil
	})
	return cloneBooks(v.([]book.Book))
}

// InvalidateCatalog drops the cached catalog so the next ListCatalog fetches.
func (c *Client) InvalidateCatalog() {
	c.cache.reset()
}

// GetCatalogEntry fetches one book. The catalog cache is not involved.
// On network failure the fixture catalog is searched instead.
func (c *Client) GetCatalogEntry(ctx context.Context, id string) (book.Book, error) {
	var resp struct {
		Book book.Book `json:"book"`
	}
	err := c.do(ctx, http.MethodGet, "/books/"+url.PathEscape(id), nil, &resp)
	switch {
	case err == nil:
		return resp.Book, nil
	case isNotFound(err):
		return book.Book{}, ErrNotFound
	case errors.Is(err, context.Canceled):
		return book.Book{}, err
	}

	c.fallback("get catalog entry", err)
	if b, ok := fixtures.Book(id); ok {
		return b, nil
	}
	return book.Book{}, ErrNotFound
}
