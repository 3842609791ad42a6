// Package spotify provides the music catalog client used for track and
// artist search when composing tags.
package spotify

import (
	"context"
	"fmt"

	"commusics/internal/middleware"

	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2/clientcredentials"
)

// MinQueryLen is the minimum rune length of a search query. Shorter queries
// return empty results without issuing the outbound HTTP call.
const MinQueryLen = 2

const searchLimit = 10

// Track is a track search result mapped into the local row shape.
type Track struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Artist      string `json:"artist"`
	ArtistID    string `json:"artist_id"`
	AlbumArtURL string `json:"album_art_url"`
}

// Artist is an artist search result mapped into the local row shape.
type Artist struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
}

// Searcher is the catalog search surface consumed by handlers.
type Searcher interface {
	SearchTracks(ctx context.Context, query string) ([]Track, error)
	SearchArtists(ctx context.Context, query string) ([]Artist, error)
}

// Client searches the Spotify catalog using the client-credentials flow.
// A fresh token is exchanged per call; search traffic is light enough that
// token reuse is not worth the shared state.
type Client struct {
	clientID     string
	clientSecret string
	// tokenURL is overridable in tests
	tokenURL string
}

// New creates a Spotify catalog client from application credentials.
func New(clientID, clientSecret string) *Client {
	return &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		tokenURL:     spotifyauth.TokenURL,
	}
}

// api exchanges client credentials for a bearer token and returns an
// authenticated API client.
func (c *Client) api(ctx context.Context) (*spotify.Client, error) {
	if c.clientID == "" || c.clientSecret == "" {
		return nil, fmt.Errorf("spotify credentials not configured")
	}

	creds := &clientcredentials.Config{
		ClientID:     c.clientID,
		ClientSecret: c.clientSecret,
		TokenURL:     c.tokenURL,
	}
	token, err := creds.Token(ctx)
	if err != nil {
		middleware.CatalogErrors.WithLabelValues("spotify", "auth").Inc()
		return nil, fmt.Errorf("exchanging spotify credentials: %w", err)
	}

	httpClient := spotifyauth.New().Client(ctx, token)
	return spotify.New(httpClient), nil
}

// SearchTracks searches the catalog for tracks matching the query.
func (c *Client) SearchTracks(ctx context.Context, query string) ([]Track, error) {
	if len([]rune(query)) < MinQueryLen {
		return []Track{}, nil
	}

	api, err := c.api(ctx)
	if err != nil {
		return nil, err
	}

	results, err := api.Search(ctx, query, spotify.SearchTypeTrack, spotify.Limit(searchLimit))
	if err != nil {
		middleware.CatalogErrors.WithLabelValues("spotify", "search").Inc()
		return nil, fmt.Errorf("searching tracks: %w", err)
	}
	if results.Tracks == nil {
		return []Track{}, nil
	}

	tracks := make([]Track, 0, len(results.Tracks.Tracks))
	for _, t := range results.Tracks.Tracks {
		tracks = append(tracks, convertTrack(t))
	}
	return tracks, nil
}

// SearchArtists searches the catalog for artists matching the query.
func (c *Client) SearchArtists(ctx context.Context, query string) ([]Artist, error) {
	if len([]rune(query)) < MinQueryLen {
		return []Artist{}, nil
	}

	api, err := c.api(ctx)
	if err != nil {
		return nil, err
	}

	results, err := api.Search(ctx, query, spotify.SearchTypeArtist, spotify.Limit(searchLimit))
	if err != nil {
		middleware.CatalogErrors.WithLabelValues("spotify", "search").Inc()
		return nil, fmt.Errorf("searching artists: %w", err)
	}
	if results.Artists == nil {
		return []Artist{}, nil
	}

	artists := make([]Artist, 0, len(results.Artists.Artists))
	for _, a := range results.Artists.Artists {
		artists = append(artists, convertArtist(a))
	}
	return artists, nil
}

// convertTrack maps an API track to the local row shape. The primary artist is
// the first listed artist; the first album image is the largest one.
func convertTrack(t spotify.FullTrack) Track {
	track := Track{
		ID:   t.ID.String(),
		Name: t.Name,
	}
	if len(t.Artists) > 0 {
		track.Artist = t.Artists[0].Name
		track.ArtistID = t.Artists[0].ID.String()
	}
	if len(t.Album.Images) > 0 {
		track.AlbumArtURL = t.Album.Images[0].URL
	}
	return track
}

func convertArtist(a spotify.FullArtist) Artist {
	artist := Artist{
		ID:   a.ID.String(),
		Name: a.Name,
	}
	if len(a.Images) > 0 {
		artist.ImageURL = a.Images[0].URL
	}
	return artist
}
