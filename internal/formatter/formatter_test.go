package formatter

import (
	"testing"

	"github.com/desertthunder/spotifeel/internal/services"
)

func TestSimplifyTrack(t *testing.T) {
	t.Run("Full Track", func(t *testing.T) {
		track := services.SpotifyTrack{
			ID:   "t1",
			Name: "Song",
			Artists: []services.SpotifyArtist{
				{Name: "First"},
				{Name: "Second"},
			},
			Album: services.SpotifyAlbum{
				Name: "Album",
				Images: []services.SpotifyImage{
					{URL: "https://img/large"},
					{URL: "https://img/small"},
				},
			},
			DurationMS: 201000,
			Explicit:   true,
			URI:        "spotify:track:t1",
		}
		track.ExternalURLs.Spotify = "https://open.spotify.com/track/t1"

		got := SimplifyTrack(track)

		if got.ID != "t1" || got.Name != "Song" {
			t.Errorf("unexpected identity fields: %+v", got)
		}

		if len(got.Artists) != 2 || got.Artists[0] != "First" {
			t.Errorf("expected artist names, got %v", got.Artists)
		}

		if got.Image != "https://img/large" {
			t.Errorf("expected first image, got %s", got.Image)
		}

		if got.URL != "https://open.spotify.com/track/t1" {
			t.Errorf("expected external url, got %s", got.URL)
		}
	})

	t.Run("Missing Optional Fields", func(t *testing.T) {
		got := SimplifyTrack(services.SpotifyTrack{ID: "t2", Name: "Bare"})

		if got.Image != "" {
			t.Errorf("expected empty image for track without album art, got %s", got.Image)
		}

		if got.Album != "" {
			t.Errorf("expected empty album, got %s", got.Album)
		}

		if len(got.Artists) != 0 {
			t.Errorf("expected no artists, got %v", got.Artists)
		}
	})

	t.Run("Nameless Artists Dropped", func(t *testing.T) {
		track := services.SpotifyTrack{
			Artists: []services.SpotifyArtist{{Name: ""}, {Name: "Kept"}},
		}

		got := SimplifyTrack(track)
		if len(got.Artists) != 1 || got.Artists[0] != "Kept" {
			t.Errorf("expected nameless artists dropped, got %v", got.Artists)
		}
	})
}

func TestSimplifyArtist(t *testing.T) {
	artist := services.SpotifyArtist{
		ID:         "a1",
		Name:       "Artist",
		Genres:     []string{"genre"},
		Popularity: 80,
		Images:     []services.SpotifyImage{{URL: "https://img/a"}},
		URI:        "spotify:artist:a1",
	}
	artist.Followers.Total = 1234

	got := SimplifyArtist(artist)

	if got.Followers != 1234 {
		t.Errorf("expected followers total 1234, got %d", got.Followers)
	}

	if got.Image != "https://img/a" {
		t.Errorf("expected artist image, got %s", got.Image)
	}

	if SimplifyArtist(services.SpotifyArtist{}).Image != "" {
		t.Error("expected empty image for artist without images")
	}
}

func TestSimplifyPages(t *testing.T) {
	t.Run("Top Tracks", func(t *testing.T) {
		body := []byte(`{"items":[{"id":"t1","name":"Song","artists":[{"name":"A"}]}],"total":1,"limit":20}`)

		items, err := SimplifyTopTracks(body)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(items) != 1 || items[0].ID != "t1" {
			t.Errorf("unexpected items: %+v", items)
		}
	})

	t.Run("Top Artists", func(t *testing.T) {
		body := []byte(`{"items":[{"id":"a1","name":"Artist","followers":{"total":9}}]}`)

		items, err := SimplifyTopArtists(body)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(items) != 1 || items[0].Followers != 9 {
			t.Errorf("unexpected items: %+v", items)
		}
	})

	t.Run("Recently Played", func(t *testing.T) {
		body := []byte(`{"items":[{"played_at":"2025-01-01T00:00:00Z","track":{"id":"t1"}}]}`)

		items, err := SimplifyRecentlyPlayed(body)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(items) != 1 || items[0].PlayedAt != "2025-01-01T00:00:00Z" {
			t.Errorf("unexpected items: %+v", items)
		}
	})

	t.Run("Invalid JSON", func(t *testing.T) {
		if _, err := SimplifyTopTracks([]byte("not json")); err == nil {
			t.Error("expected error for invalid JSON")
		}
	})
}
