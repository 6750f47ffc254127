package mal

import (
	"fmt"
	"os"

	"github.com/malbuddy/malbuddy/errs"
	"github.com/malbuddy/malbuddy/filesystem"
	"github.com/titanous/json5"
)

// Credentials identify the registered API client.
type Credentials struct {
	ClientID     string `json:"CLIENT_ID"`
	ClientSecret string `json:"CLIENT_SECRET"`
}

// LoadCredentials reads the client credentials file. Comments and trailing commas are tolerated.
func LoadCredentials(path string) (Credentials, error) {
	var creds Credentials

	data, err := filesystem.API().ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return creds, fmt.Errorf("client credentials %s: %w", path, errs.ErrNotFound)
		}
		return creds, fmt.Errorf("read client credentials: %w", err)
	}

	if err := json5.Unmarshal(data, &creds); err != nil {
		return creds, fmt.Errorf("%w: parse client credentials: %w", errs.ErrConfig, err)
	}

	if creds.ClientID == "" {
		return creds, fmt.Errorf("%w: CLIENT_ID missing from %s", errs.ErrConfig, path)
	}

	return creds, nil
}
