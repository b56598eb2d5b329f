package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, KindUnknown},
		{"plain error", stderrors.New("boom"), KindUnknown},
		{"config sentinel", ErrMissingAPIKey, KindConfig},
		{"wrapped upload", Wrap(stderrors.New("eof"), KindUpload, "upload failed"), KindUpload},
		{"fmt wrapped generate", fmt.Errorf("run: %w", Wrap(stderrors.New("404"), KindGenerate, "generate content failed")), KindGenerate},
		{"write", Wrapf(fs.ErrNotExist, KindWrite, "write %s", "out.txt"), KindWrite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, KindUpload, "upload failed"))
	assert.Nil(t, Wrapf(nil, KindWrite, "write %s", "x"))
}

func TestErrorIsAndUnwrap(t *testing.T) {
	cause := fs.ErrPermission
	err := Wrap(cause, KindWrite, "file write failed")

	assert.True(t, stderrors.Is(err, ErrWriteFailed))
	assert.True(t, stderrors.Is(err, fs.ErrPermission))
	assert.False(t, stderrors.Is(err, ErrUploadFailed))
	assert.Equal(t, "file write failed: permission denied", err.Error())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "config", KindConfig.String())
	assert.Equal(t, "upload", KindUpload.String())
	assert.Equal(t, "generate", KindGenerate.String())
	assert.Equal(t, "write", KindWrite.String())
	assert.Equal(t, "unknown", Kind(42).String())
}

func TestFieldHelpers(t *testing.T) {
	assert.Equal(t, "GEMINI_API_KEY format invalid: expected AIza prefix", InvalidFormat("GEMINI_API_KEY", "AIza prefix").Error())
	assert.Equal(t, KindConfig, KindOf(TooShort("GEMINI_API_KEY", 30)))
}

func TestWithCause(t *testing.T) {
	cause := InvalidFormat("GEMINI_API_KEY", "AIza prefix")
	err := ErrInvalidAPIKey.WithCause(cause)

	assert.ErrorIs(t, err, ErrInvalidAPIKey)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, KindConfig, KindOf(err))
	assert.Equal(t, "invalid API key format: GEMINI_API_KEY format invalid: expected AIza prefix", err.Error())
	assert.Nil(t, ErrInvalidAPIKey.Unwrap(), "sentinel must stay unchanged")
}
