// Package catalog pulls (artist, representative song) pairs from the
// music-catalog service's playlist API.
//
// Authentication uses the client-credentials grant; credentials come from
// config, the environment, or a .env file. Playlist tracks are fetched page
// by page and reduced to one pair per artist, keeping the first track seen.
package catalog
