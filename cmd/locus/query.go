package main

import (
	"flag"
	"fmt"

	badgerstore "github.com/ternarybob/locus/internal/storage/badger"
)

// runList prints collected places from local storage: locus list [flags]
func runList(args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	searchQuery := fs.String("query", "", "Filter by the definition query that collected the place")
	limit := fs.Int("limit", 50, "Maximum places to print")
	if err := fs.Parse(args); err != nil {
		return err
	}

	db, err := badgerstore.NewBadgerDB(logger, &config.Storage.Badger)
	if err != nil {
		return err
	}
	defer db.Close()
	storage := badgerstore.NewPlaceStorage(db, logger)

	docs, err := storage.ListPlacesByQuery(*searchQuery, *limit)
	if err != nil {
		return err
	}

	for _, doc := range docs {
		line := fmt.Sprintf("%s  %s", doc.PlaceID, doc.DisplayName)
		if doc.FormattedAddress != "" {
			line += "  " + doc.FormattedAddress
		}
		if doc.Rating > 0 {
			line += fmt.Sprintf("  %.1f (%d)", doc.Rating, doc.UserRatingCount)
		}
		fmt.Println(line)
	}

	count, err := storage.CountPlaces()
	if err != nil {
		return err
	}
	fmt.Printf("%d of %d stored place(s)\n", len(docs), count)
	return nil
}
