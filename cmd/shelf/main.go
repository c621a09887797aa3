// Command shelf browses the library catalog and manages reading lists and
// local favorites from the terminal.
//
//	shelf books
//	shelf book <id>
//	shelf lists
//	shelf create-list [-description d] <name>
//	shelf delete-list <listID>
//	shelf add <listID> <bookID>...
//	shelf remove <listID> <bookID>
//	shelf fav <bookID>
//	shelf favs
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"libraryapi/internal/client"
	"libraryapi/internal/config"
	"libraryapi/internal/localstore"
	"libraryapi/internal/logging"
	"libraryapi/internal/state"
)

func main() {
	strict := flag.Bool("strict", false, "Fail list changes instead of falling back to local data")
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "usage: shelf [-strict] <books|book|lists|create-list|delete-list|add|remove|fav|favs> [args]")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("load config")
	}
	logging.Init(logging.Config{Level: cfg.Log.Level, Format: "console"})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	store, err := localstore.Open(cfg.Client.FavoritesPath)
	if err != nil {
		logging.Fatal().Err(err).Msg("open favorites store")
	}
	defer store.Close()

	opts := []client.Option{
		client.WithCatalogTTL(cfg.Client.CatalogTTL),
		client.WithUserID(cfg.DefaultUserID),
		client.WithTokenSource(client.StaticToken(cfg.Client.Token)),
	}
	if *strict {
		opts = append(opts, client.WithStrictWrites())
	}
	api := client.New(cfg.Client.BaseURL, opts...)

	a := &app{
		api:       api,
		lists:     state.NewReadingLists(api, nil),
		favorites: state.NewFavorites(ctx, store),
		out:       os.Stdout,
	}
	if err := a.run(ctx, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, "shelf:", err)
		os.Exit(1)
	}
}
