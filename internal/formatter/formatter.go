// package formatter provides stateless transforms reducing upstream Spotify
// responses to a smaller field set for client consumption
package formatter

import (
	"encoding/json"
	"fmt"

	"github.com/desertthunder/spotifeel/internal/services"
)

// SimplifiedTrack is the reduced track shape returned to clients.
type SimplifiedTrack struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Artists    []string `json:"artists"`
	Album      string   `json:"album,omitempty"`
	Image      string   `json:"image,omitempty"`
	DurationMS int      `json:"duration_ms"`
	Explicit   bool     `json:"explicit"`
	URL        string   `json:"url,omitempty"`
	URI        string   `json:"uri,omitempty"`
}

// SimplifiedArtist is the reduced artist shape returned to clients.
type SimplifiedArtist struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Genres     []string `json:"genres"`
	Popularity int      `json:"popularity"`
	Followers  int      `json:"followers"`
	Image      string   `json:"image,omitempty"`
	URL        string   `json:"url,omitempty"`
	URI        string   `json:"uri,omitempty"`
}

// SimplifiedPlay pairs a played-at timestamp with its simplified track.
type SimplifiedPlay struct {
	PlayedAt string          `json:"played_at"`
	Track    SimplifiedTrack `json:"track"`
}

// bestImage picks the first (largest) image URL, or empty when none exist.
// Missing images are a defined no-op, not an error.
func bestImage(images []services.SpotifyImage) string {
	if len(images) == 0 {
		return ""
	}
	return images[0].URL
}

// SimplifyTrack reduces a Spotify track to the simplified shape, tolerating
// missing optional fields.
func SimplifyTrack(track services.SpotifyTrack) SimplifiedTrack {
	artists := make([]string, 0, len(track.Artists))
	for _, artist := range track.Artists {
		if artist.Name != "" {
			artists = append(artists, artist.Name)
		}
	}

	return SimplifiedTrack{
		ID:         track.ID,
		Name:       track.Name,
		Artists:    artists,
		Album:      track.Album.Name,
		Image:      bestImage(track.Album.Images),
		DurationMS: track.DurationMS,
		Explicit:   track.Explicit,
		URL:        track.ExternalURLs.Spotify,
		URI:        track.URI,
	}
}

// SimplifyArtist reduces a Spotify artist to the simplified shape.
func SimplifyArtist(artist services.SpotifyArtist) SimplifiedArtist {
	return SimplifiedArtist{
		ID:         artist.ID,
		Name:       artist.Name,
		Genres:     artist.Genres,
		Popularity: artist.Popularity,
		Followers:  artist.Followers.Total,
		Image:      bestImage(artist.Images),
		URL:        artist.ExternalURLs.Spotify,
		URI:        artist.URI,
	}
}

// SimplifyPlay reduces a recently-played entry to the simplified shape.
func SimplifyPlay(item services.SpotifyPlayHistory) SimplifiedPlay {
	return SimplifiedPlay{
		PlayedAt: item.PlayedAt,
		Track:    SimplifyTrack(item.Track),
	}
}

// SimplifyTopTracks decodes a raw top-tracks response body and returns the
// simplified item list.
func SimplifyTopTracks(body []byte) ([]SimplifiedTrack, error) {
	var page services.SpotifyTopTracks
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("failed to decode top tracks: %w", err)
	}

	items := make([]SimplifiedTrack, 0, len(page.Items))
	for _, track := range page.Items {
		items = append(items, SimplifyTrack(track))
	}
	return items, nil
}

// SimplifyTopArtists decodes a raw top-artists response body and returns the
// simplified item list.
func SimplifyTopArtists(body []byte) ([]SimplifiedArtist, error) {
	var page services.SpotifyTopArtists
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("failed to decode top artists: %w", err)
	}

	items := make([]SimplifiedArtist, 0, len(page.Items))
	for _, artist := range page.Items {
		items = append(items, SimplifyArtist(artist))
	}
	return items, nil
}

// SimplifyRecentlyPlayed decodes a raw recently-played response body and
// returns the simplified item list.
func SimplifyRecentlyPlayed(body []byte) ([]SimplifiedPlay, error) {
	var page services.SpotifyRecentlyPlayed
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("failed to decode recently played: %w", err)
	}

	items := make([]SimplifiedPlay, 0, len(page.Items))
	for _, item := range page.Items {
		items = append(items, SimplifyPlay(item))
	}
	return items, nil
}
