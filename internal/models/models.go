// package models defines the data model for the spotifeel backend
package models

// TokenRecord holds the token response persisted per Spotify user, with JSON
// tags matching the token endpoint's field names verbatim.
//
// A record without an access token is never persisted as valid. Refresh
// responses may omit refresh_token; callers carry the prior one forward.
type TokenRecord struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type,omitempty"`
	ExpiresIn    int    `json:"expires_in,omitempty"`
	Scope        string `json:"scope,omitempty"`
}

// Valid reports whether the record carries a usable access token.
func (t *TokenRecord) Valid() bool {
	return t != nil && t.AccessToken != ""
}
