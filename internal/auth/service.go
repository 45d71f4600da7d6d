package auth

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
)

// GetServiceAccountClient creates an HTTP client for the Google backend from
// the service-account key at keyPath. Only event write access is requested.
func GetServiceAccountClient(ctx context.Context, keyPath string) (*http.Client, error) {
	data, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read service account key: %w", err)
	}
	return ServiceAccountClientFromJSON(ctx, data)
}

// ServiceAccountClientFromJSON is GetServiceAccountClient for key bytes.
func ServiceAccountClientFromJSON(ctx context.Context, data []byte) (*http.Client, error) {
	credType, err := DetectCredentialType(data)
	if err != nil {
		return nil, err
	}
	if credType != CredentialTypeServiceAccount {
		return nil, fmt.Errorf("expected service account credentials, got %s", credType)
	}

	config, err := google.JWTConfigFromJSON(data, calendar.CalendarEventsScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse service account key: %w", err)
	}

	// Tokens are minted on demand from the key.
	return config.Client(ctx), nil
}
