package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"golang.org/x/oauth2"
)

const tokenFilePermMode = 0o600

// ErrNoToken is returned when a token file holds no access token.
var ErrNoToken = errors.New("token file has no access token")

// LoadToken loads an oauth2 token from the specified file path
func LoadToken(tokenPath string) (*oauth2.Token, error) {
	f, err := os.Open(tokenPath)
	if err != nil {
		return nil, fmt.Errorf("unable to open token file: %w", err)
	}
	defer f.Close()

	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, fmt.Errorf("unable to decode token: %w", err)
	}

	return tok, nil
}

// LoadBearerToken returns the access token stored at tokenPath.
func LoadBearerToken(tokenPath string) (string, error) {
	tok, err := LoadToken(tokenPath)
	if err != nil {
		return "", err
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("%s: %w", tokenPath, ErrNoToken)
	}
	return tok.AccessToken, nil
}

// SaveToken saves an oauth2 token to the specified file path with restricted permissions
func SaveToken(tokenPath string, token *oauth2.Token) error {
	f, err := os.OpenFile(tokenPath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, tokenFilePermMode)
	if err != nil {
		return fmt.Errorf("unable to create token file: %w", err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(token); err != nil {
		return fmt.Errorf("unable to encode token: %w", err)
	}

	return nil
}

// SaveBearerToken stores a static bearer token. Tokens issued by the
// calendar API do not expire, so no expiry or refresh token is written.
func SaveBearerToken(tokenPath, accessToken string) error {
	if accessToken == "" {
		return ErrNoToken
	}
	return SaveToken(tokenPath, &oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"})
}
