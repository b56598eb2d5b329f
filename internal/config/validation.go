package config

import (
	"time"

	apperrors "gemini-transcriber/internal/app/errors"
)

// maxTimeout bounds a single run.
const maxTimeout = 30 * time.Minute

// ValidateTimeout validates timeout duration. Zero means no deadline.
func ValidateTimeout(timeout time.Duration, name string) error {
	if timeout < 0 {
		return apperrors.Newf(apperrors.KindConfig, "%s timeout cannot be negative", name)
	}
	if timeout > maxTimeout {
		return apperrors.Newf(apperrors.KindConfig, "%s timeout too large (max 30 minutes)", name)
	}
	return nil
}
