package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	apperrors "gemini-transcriber/internal/app/errors"
)

const (
	// EnvGoogleAPIKey wins when both are set, as in the genai SDK.
	EnvGoogleAPIKey = "GOOGLE_API_KEY"
	EnvGeminiAPIKey = "GEMINI_API_KEY"

	apiKeyPrefix    = "AIza"
	apiKeyMinLength = 30
)

// DefaultEnvPaths are tried in order by LoadEnv.
var DefaultEnvPaths = []string{
	".env",
	".env.local",
	"../.env",
	"../../.env",
}

// Credentials holds the secret used to open a Gemini session.
type Credentials struct {
	APIKey string
	// Source names the variable the key came from.
	Source string
}

// LoadEnv loads the first env file that exists and returns its path.
// A missing file is not an error: variables may be set system-wide.
func LoadEnv(paths ...string) (string, error) {
	if len(paths) == 0 {
		paths = DefaultEnvPaths
	}

	for _, envPath := range paths {
		if _, err := os.Stat(envPath); err != nil {
			continue
		}
		if err := godotenv.Load(envPath); err != nil {
			return "", apperrors.Wrapf(err, apperrors.KindConfig, "error loading %s file", envPath)
		}
		return envPath, nil
	}

	return "", nil
}

// GetCredentials reads the API key from the environment without validating it.
func GetCredentials() Credentials {
	if key := strings.TrimSpace(os.Getenv(EnvGoogleAPIKey)); key != "" {
		return Credentials{APIKey: key, Source: EnvGoogleAPIKey}
	}
	if key := strings.TrimSpace(os.Getenv(EnvGeminiAPIKey)); key != "" {
		return Credentials{APIKey: key, Source: EnvGeminiAPIKey}
	}
	return Credentials{}
}

// Validate checks presence and basic format of the key.
func (c Credentials) Validate() error {
	if c.APIKey == "" {
		return apperrors.ErrMissingAPIKey.WithCause(
			fmt.Errorf("set %s or %s in the environment or a .env file", EnvGoogleAPIKey, EnvGeminiAPIKey))
	}
	source := c.Source
	if source == "" {
		source = EnvGeminiAPIKey
	}
	if !strings.HasPrefix(c.APIKey, apiKeyPrefix) {
		return apperrors.ErrInvalidAPIKey.WithCause(apperrors.InvalidFormat(source, "'"+apiKeyPrefix+"' prefix"))
	}
	if len(c.APIKey) < apiKeyMinLength {
		return apperrors.ErrInvalidAPIKey.WithCause(apperrors.TooShort(source, apiKeyMinLength))
	}
	return nil
}

// Redacted returns the key with everything but the prefix masked, for logs.
func (c Credentials) Redacted() string {
	if len(c.APIKey) <= len(apiKeyPrefix) {
		return strings.Repeat("*", len(c.APIKey))
	}
	return c.APIKey[:len(apiKeyPrefix)] + strings.Repeat("*", len(c.APIKey)-len(apiKeyPrefix))
}
