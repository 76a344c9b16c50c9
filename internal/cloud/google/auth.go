package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/oauth2"
	goauth "golang.org/x/oauth2/google"
	gdrive "google.golang.org/api/drive/v3"
)

// Credentials carries the OAuth client registration and user token produced
// by cmd/oauth-init. JSON values take precedence over file paths. With no
// token configured the adapter falls back to service-account credentials
// from the environment.
type Credentials struct {
	ClientFile string
	ClientJSON string
	TokenFile  string
	TokenJSON  string
}

func (c Credentials) hasToken() bool {
	return c.TokenJSON != "" || c.TokenFile != ""
}

// OAuthConfig parses the OAuth client registration with the Drive appdata
// scope. Shared with cmd/oauth-init so both sides agree on the scope.
func OAuthConfig(c Credentials) (*oauth2.Config, error) {
	var raw []byte
	var err error
	switch {
	case c.ClientJSON != "":
		raw = []byte(c.ClientJSON)
	case c.ClientFile != "":
		raw, err = os.ReadFile(c.ClientFile)
		if err != nil {
			return nil, fmt.Errorf("read OAuth client file: %w", err)
		}
	default:
		return nil, errors.New("missing OAuth client credentials (set GOOGLE_OAUTH_CLIENT_JSON or GOOGLE_OAUTH_CLIENT_FILE)")
	}

	cfg, err := goauth.ConfigFromJSON(raw, gdrive.DriveAppdataScope)
	if err != nil {
		return nil, fmt.Errorf("parse OAuth client credentials: %w", err)
	}
	return cfg, nil
}

// tokenSource builds a refreshing token source from the stored token.
func (c Credentials) tokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	var raw []byte
	var err error
	switch {
	case c.TokenJSON != "":
		raw = []byte(c.TokenJSON)
	case c.TokenFile != "":
		raw, err = os.ReadFile(c.TokenFile)
		if err != nil {
			return nil, fmt.Errorf("read OAuth token file: %w", err)
		}
	default:
		return nil, errors.New("no OAuth token configured")
	}

	var tok oauth2.Token
	if err := json.Unmarshal(raw, &tok); err != nil {
		return nil, fmt.Errorf("parse OAuth token: %w", err)
	}

	cfg, err := OAuthConfig(c)
	if err != nil {
		return nil, err
	}
	return cfg.TokenSource(ctx, &tok), nil
}

// serviceAccountJSON resolves service-account credentials from the
// environment: GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS.
func serviceAccountJSON() ([]byte, error) {
	inline := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	file := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if inline == "" && file == "" {
		file = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	switch {
	case inline != "":
		return []byte(inline), nil
	case file != "":
		raw, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		return raw, nil
	default:
		return nil, errors.New("missing credentials: configure an OAuth token (run oauth-init) or set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS")
	}
}
