package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"libraryapi/internal/fixtures"
	"libraryapi/internal/readinglist"
)

// ListUserLists returns the reading lists of the configured user, or the
// fixture lists when the API cannot be reached.
func (c *Client) ListUserLists(ctx context.Context) ([]readinglist.ReadingList, error) {
	var resp struct {
		ReadingLists []readinglist.ReadingList `json:"readingLists"`
	}
	err := c.do(ctx, http.MethodGet, "/reading-lists?userId="+url.QueryEscape(c.userID), nil, &resp)
	if err != nil {
		c.fallback("list reading lists", err)
		return fixtures.ReadingLists(), nil
	}
	if resp.ReadingLists == nil {
		resp.ReadingLists = []readinglist.ReadingList{}
	}
	return resp.ReadingLists, nil
}

// CreateList creates a list owned by the configured user.
func (c *Client) CreateList(ctx context.Context, in readinglist.NewList) (readinglist.ReadingList, error) {
	if in.UserID == "" {
		in.UserID = c.userID
	}
	if in.BookIDs == nil {
		in.BookIDs = []string{}
	}

	var resp struct {
		ReadingList readinglist.ReadingList `json:"readingList"`
	}
	err := c.do(ctx, http.MethodPost, "/reading-lists", in, &resp)
	if err == nil {
		return resp.ReadingList, nil
	}
	if c.strict {
		return readinglist.ReadingList{}, err
	}

	c.fallback("create reading list", err)
	now := readinglist.Timestamp(c.now())
	return readinglist.ReadingList{
		ID:          strconv.FormatInt(now.UnixMilli(), 10),
		UserID:      c.userID,
		Name:        in.Name,
		Description: in.Description,
		BookIDs:     readinglist.UniqueIDs(in.BookIDs),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

type updateBody struct {
	UserID string `json:"userId"`
	readinglist.Patch
}

// UpdateList applies a partial update to one of the configured user's lists.
func (c *Client) UpdateList(ctx context.Context, id string, patch readinglist.Patch) (readinglist.ReadingList, error) {
	var resp struct {
		ReadingList readinglist.ReadingList `json:"readingList"`
	}
	err := c.do(ctx, http.MethodPut, "/reading-lists/"+url.PathEscape(id), updateBody{UserID: c.userID, Patch: patch}, &resp)
	if err == nil {
		return resp.ReadingList, nil
	}
	if c.strict {
		return readinglist.ReadingList{}, err
	}

	c.fallback("update reading list", err)
	l, ok := fixtures.ReadingList(id)
	if !ok {
		l = readinglist.ReadingList{ID: id, UserID: c.userID, BookIDs: []string{}}
	}
	patch.Apply(&l)
	l.UpdatedAt = readinglist.Timestamp(c.now())
	return l, nil
}

// DeleteList removes one of the configured user's lists.
func (c *Client) DeleteList(ctx context.Context, id string) error {
	path := "/reading-lists/" + url.PathEscape(id) + "?userId=" + url.QueryEscape(c.userID)
	err := c.do(ctx, http.MethodDelete, path, nil, nil)
	if err == nil {
		return nil
	}
	if c.strict {
		return err
	}
	c.fallback("delete reading list", err)
	return nil
}
