// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"net/url"

	"github.com/desertthunder/spotifeel/internal/models"
	"github.com/desertthunder/spotifeel/internal/services"
)

// GetCall records one proxied GET made through the mock.
type GetCall struct {
	AccessToken string
	Path        string
	Params      url.Values
}

// MockService is a configurable test double for [services.Service].
//
// Unset behaviors fall back to benign defaults; every proxied GET is
// recorded in GetCalls for assertions.
type MockService struct {
	LoginURLFunc    func(state string) string
	ExchangeFunc    func(ctx context.Context, code string) (*models.TokenRecord, error)
	RefreshFunc     func(ctx context.Context, refreshToken string) (*models.TokenRecord, error)
	GetFunc         func(ctx context.Context, accessToken, path string, params url.Values) ([]byte, error)
	UserProfileFunc func(ctx context.Context, accessToken string) (*services.SpotifyUser, error)

	GetCalls []GetCall
}

func (m *MockService) Name() string { return "mock" }

func (m *MockService) LoginURL(state string) string {
	if m.LoginURLFunc != nil {
		return m.LoginURLFunc(state)
	}
	return "https://accounts.example.com/authorize?state=" + url.QueryEscape(state)
}

func (m *MockService) Exchange(ctx context.Context, code string) (*models.TokenRecord, error) {
	if m.ExchangeFunc != nil {
		return m.ExchangeFunc(ctx, code)
	}
	return nil, errors.New("exchange not configured")
}

func (m *MockService) Refresh(ctx context.Context, refreshToken string) (*models.TokenRecord, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, refreshToken)
	}
	return nil, errors.New("refresh not configured")
}

func (m *MockService) Get(ctx context.Context, accessToken, path string, params url.Values) ([]byte, error) {
	m.GetCalls = append(m.GetCalls, GetCall{AccessToken: accessToken, Path: path, Params: params})
	if m.GetFunc != nil {
		return m.GetFunc(ctx, accessToken, path, params)
	}
	return []byte(`{}`), nil
}

func (m *MockService) UserProfile(ctx context.Context, accessToken string) (*services.SpotifyUser, error) {
	if m.UserProfileFunc != nil {
		return m.UserProfileFunc(ctx, accessToken)
	}
	return &services.SpotifyUser{ID: "mock_user"}, nil
}
