package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"libraryapi/internal/book"
	"libraryapi/internal/client"
	"libraryapi/internal/readinglist"
	"libraryapi/internal/state"
)

var errUsage = errors.New("usage: shelf <books|book|lists|create-list|delete-list|add|remove|fav|favs> [args]")

type catalog interface {
	ListCatalog(ctx context.Context) []book.Book
	GetCatalogEntry(ctx context.Context, id string) (book.Book, error)
}

type app struct {
	api       catalog
	lists     *state.ReadingLists
	favorites *state.Favorites
	out       io.Writer
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, args := args[0], args[1:]

	switch cmd {
	case "books":
		return a.books(ctx)
	case "book":
		if len(args) != 1 {
			return fmt.Errorf("usage: shelf book <id>")
		}
		return a.book(ctx, args[0])
	case "lists":
		return a.showLists(ctx)
	case "create-list":
		return a.createList(ctx, args)
	case "delete-list":
		if len(args) != 1 {
			return fmt.Errorf("usage: shelf delete-list <listID>")
		}
		if err := a.lists.Refresh(ctx); err != nil {
			return err
		}
		return a.lists.DeleteList(ctx, args[0])
	case "add":
		if len(args) < 2 {
			return fmt.Errorf("usage: shelf add <listID> <bookID>...")
		}
		return a.add(ctx, args[0], args[1:])
	case "remove":
		if len(args) != 2 {
			return fmt.Errorf("usage: shelf remove <listID> <bookID>")
		}
		if err := a.lists.Refresh(ctx); err != nil {
			return err
		}
		return a.lists.RemoveBookFromList(ctx, args[1], args[0])
	case "fav":
		if len(args) != 1 {
			return fmt.Errorf("usage: shelf fav <bookID>")
		}
		return a.toggleFavorite(ctx, args[0])
	case "favs":
		a.printBooks(a.favorites.Favorites())
		return nil
	}
	return errUsage
}

func (a *app) books(ctx context.Context) error {
	a.printBooks(a.api.ListCatalog(ctx))
	return nil
}

func (a *app) printBooks(books []book.Book) {
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tAUTHOR\tGENRE\tRATING")
	for _, b := range books {
		fav := ""
		if a.favorites.IsFavorite(b.ID) {
			fav = " *"
		}
		fmt.Fprintf(tw, "%s\t%s%s\t%s\t%s\t%.1f\n", b.ID, b.Title, fav, b.Author, b.Genre, b.Rating)
	}
	_ = tw.Flush()
}

func (a *app) book(ctx context.Context, id string) error {
	b, err := a.api.GetCatalogEntry(ctx, id)
	if errors.Is(err, client.ErrNotFound) {
		return fmt.Errorf("book %s not found", id)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s\nby %s (%d)\n", b.Title, b.Author, b.PublishedYear)
	if b.Genre != "" {
		fmt.Fprintf(a.out, "genre: %s\n", b.Genre)
	}
	if b.ISBN != "" {
		fmt.Fprintf(a.out, "isbn: %s\n", b.ISBN)
	}
	fmt.Fprintf(a.out, "rating: %.1f\n", b.Rating)
	if b.Description != "" {
		fmt.Fprintf(a.out, "\n%s\n", b.Description)
	}
	return nil
}

func (a *app) showLists(ctx context.Context) error {
	if err := a.lists.Refresh(ctx); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tBOOKS\tUPDATED")
	for _, l := range a.lists.Lists() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", l.ID, l.Name, strings.Join(l.BookIDs, ","), l.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}

func (a *app) createList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("create-list", flag.ContinueOnError)
	fs.SetOutput(a.out)
	description := fs.String("description", "", "List description")
	if err := fs.Parse(args); err != nil {
		return err
	}
	name := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if name == "" {
		return fmt.Errorf("usage: shelf create-list [-description d] <name>")
	}

	l, err := a.lists.CreateList(ctx, readinglist.NewList{Name: name, Description: *description})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "created list %s (%s)\n", l.Name, l.ID)
	return nil
}

func (a *app) add(ctx context.Context, listID string, bookIDs []string) error {
	if err := a.lists.Refresh(ctx); err != nil {
		return err
	}
	if len(bookIDs) == 1 {
		_, err := a.lists.AddBookToList(ctx, bookIDs[0], listID)
		return err
	}
	_, err := a.lists.AddBooksToList(ctx, bookIDs, listID)
	return err
}

func (a *app) toggleFavorite(ctx context.Context, bookID string) error {
	b, err := a.api.GetCatalogEntry(ctx, bookID)
	if err != nil {
		return fmt.Errorf("look up %s: %w", bookID, err)
	}
	on, err := a.favorites.ToggleFavorite(ctx, b)
	if err != nil {
		return err
	}
	if on {
		fmt.Fprintf(a.out, "added %q to favorites\n", b.Title)
	} else {
		fmt.Fprintf(a.out, "removed %q from favorites\n", b.Title)
	}
	return nil
}
