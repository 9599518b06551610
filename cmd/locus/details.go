package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/ternarybob/locus/pkg/places"
)

// runDetails fetches a single place: locus details [flags] <place-id>
func runDetails(args []string) error {
	fs := flag.NewFlagSet("details", flag.ExitOnError)
	fields := fs.String("fields", "*", "Comma-separated place fields (snake_case, * for all)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() != 1 {
		return fmt.Errorf("details requires exactly one place ID")
	}

	client, err := newPlacesClient()
	if err != nil {
		return err
	}

	place, err := client.GetPlaceDetails(context.Background(), fs.Arg(0), splitFields(*fields),
		places.WithLanguageCode(config.PlacesAPI.LanguageCode))
	if err != nil {
		return err
	}

	fmt.Println(place.String())
	return nil
}

// runPhoto resolves a photo resource name: locus photo [flags] <photo-name>
func runPhoto(args []string) error {
	fs := flag.NewFlagSet("photo", flag.ExitOnError)
	maxWidth := fs.Int("width", 0, "Maximum photo width in pixels (1-4800)")
	maxHeight := fs.Int("height", 0, "Maximum photo height in pixels (1-4800)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() != 1 {
		return fmt.Errorf("photo requires exactly one photo resource name")
	}

	client, err := newPlacesClient()
	if err != nil {
		return err
	}

	var opts []places.QueryOption
	if *maxWidth > 0 {
		opts = append(opts, places.WithMaxWidth(*maxWidth))
	}
	if *maxHeight > 0 {
		opts = append(opts, places.WithMaxHeight(*maxHeight))
	}

	uri, err := client.GetPhotoURI(context.Background(), places.Photo{Name: fs.Arg(0)}, opts...)
	if err != nil {
		return err
	}

	fmt.Println(uri)
	return nil
}
