package shared

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func clearSpotifyEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SPOTIFY_CLIENT_ID", "SPOTIFY_CLIENT_SECRET", "SPOTIFY_REDIRECT_URI",
		"SPOTIFEEL_HOST", "SPOTIFEEL_PORT", "SPOTIFEEL_TOKEN_DIR",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestConfig(t *testing.T) {
	t.Run("LoadConfig", func(t *testing.T) {
		t.Run("From Environment", func(t *testing.T) {
			clearSpotifyEnv(t)
			t.Setenv("SPOTIFY_CLIENT_ID", "test_client_id")
			t.Setenv("SPOTIFY_CLIENT_SECRET", "test_secret")
			t.Setenv("SPOTIFY_REDIRECT_URI", "http://127.0.0.1:8000/auth/callback")

			config, err := LoadConfig("")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if config.Spotify.ClientID != "test_client_id" {
				t.Errorf("expected client id test_client_id, got %s", config.Spotify.ClientID)
			}

			if config.Server.Addr() != "127.0.0.1:8000" {
				t.Errorf("expected default addr 127.0.0.1:8000, got %s", config.Server.Addr())
			}

			if config.Tokens.Dir != "data/tokens" {
				t.Errorf("expected default token dir data/tokens, got %s", config.Tokens.Dir)
			}
		})

		t.Run("Missing Credentials Listed Together", func(t *testing.T) {
			clearSpotifyEnv(t)
			t.Setenv("SPOTIFY_CLIENT_ID", "test_client_id")

			_, err := LoadConfig("")
			if err == nil {
				t.Fatal("expected error for missing credentials")
			}

			if !errors.Is(err, ErrMissingConfig) {
				t.Errorf("expected ErrMissingConfig, got %v", err)
			}

			msg := err.Error()
			if !strings.Contains(msg, "SPOTIFY_CLIENT_SECRET") || !strings.Contains(msg, "SPOTIFY_REDIRECT_URI") {
				t.Errorf("expected all missing keys in error, got %q", msg)
			}

			if strings.Contains(msg, "SPOTIFY_CLIENT_ID,") {
				t.Errorf("client id should not be reported missing: %q", msg)
			}
		})

		t.Run("TOML Fills Unset Values", func(t *testing.T) {
			clearSpotifyEnv(t)
			t.Setenv("SPOTIFY_CLIENT_ID", "test_client_id")
			t.Setenv("SPOTIFY_CLIENT_SECRET", "test_secret")
			t.Setenv("SPOTIFY_REDIRECT_URI", "http://127.0.0.1:8000/auth/callback")

			tmpDir := t.TempDir()
			configPath := filepath.Join(tmpDir, "config.toml")
			testConfig := `[server]
host = "0.0.0.0"
port = 9000

[tokens]
dir = "/var/lib/spotifeel/tokens"
`
			if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
				t.Fatalf("failed to write config file: %v", err)
			}

			config, err := LoadConfig(configPath)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if config.Server.Addr() != "0.0.0.0:9000" {
				t.Errorf("expected addr 0.0.0.0:9000, got %s", config.Server.Addr())
			}

			if config.Tokens.Dir != "/var/lib/spotifeel/tokens" {
				t.Errorf("expected token dir from file, got %s", config.Tokens.Dir)
			}
		})

		t.Run("Environment Wins Over TOML", func(t *testing.T) {
			clearSpotifyEnv(t)
			t.Setenv("SPOTIFY_CLIENT_ID", "test_client_id")
			t.Setenv("SPOTIFY_CLIENT_SECRET", "test_secret")
			t.Setenv("SPOTIFY_REDIRECT_URI", "http://127.0.0.1:8000/auth/callback")
			t.Setenv("SPOTIFEEL_PORT", "3000")

			tmpDir := t.TempDir()
			configPath := filepath.Join(tmpDir, "config.toml")
			if err := os.WriteFile(configPath, []byte("[server]\nport = 9000\n"), 0644); err != nil {
				t.Fatalf("failed to write config file: %v", err)
			}

			config, err := LoadConfig(configPath)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if config.Server.Port != 3000 {
				t.Errorf("expected env port 3000, got %d", config.Server.Port)
			}
		})
	})

	t.Run("CreateEnvFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		envPath := filepath.Join(tmpDir, ".env")

		if err := CreateEnvFile(envPath); err != nil {
			t.Fatalf("failed to create env file: %v", err)
		}

		data, err := os.ReadFile(envPath)
		if err != nil {
			t.Fatalf("env file should exist: %v", err)
		}

		if !strings.Contains(string(data), "SPOTIFY_CLIENT_ID") {
			t.Error("example env should mention SPOTIFY_CLIENT_ID")
		}

		if err := CreateEnvFile(envPath); err == nil {
			t.Error("creating env file again should fail")
		}
	})
}
