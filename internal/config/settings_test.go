package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "gemini-transcriber/internal/app/errors"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "transcriber.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadSettingsEmptyPath(t *testing.T) {
	settings, err := LoadSettings("")
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), settings)
	assert.Equal(t, "gemini-2.0-flash", settings.Model)
	assert.Equal(t, "Hello, how are you doing today?", settings.Prompt)
	assert.Equal(t, "media/filename.mp3", settings.AudioPath)
	assert.Equal(t, "output/transcript.txt", settings.OutputPath)
	assert.Zero(t, settings.Timeout())
}

func TestLoadSettings(t *testing.T) {
	t.Setenv("TRANSCRIBER_TEST_DIR", "/data")

	testCases := []struct {
		name          string
		content       string
		check         func(t *testing.T, s *Settings)
		errorContains string
	}{
		{
			name: "full file",
			content: `
model: gemini-2.5-pro
prompt: "Transcribe this audio verbatim. Cost: $5"
audio_path: ${TRANSCRIBER_TEST_DIR}/in.mp3
output_path: ${TRANSCRIBER_TEST_DIR}/out.txt
mime_type: audio/mpeg
log_level: debug
timeout: 2m
ledger_path: ${TRANSCRIBER_TEST_DIR}/ledger.db
metrics_file: ${TRANSCRIBER_TEST_DIR}/transcriber.prom
delete_upload: true
`,
			check: func(t *testing.T, s *Settings) {
				assert.Equal(t, "gemini-2.5-pro", s.Model)
				assert.Equal(t, "Transcribe this audio verbatim. Cost: $5", s.Prompt)
				assert.Equal(t, "/data/in.mp3", s.AudioPath)
				assert.Equal(t, "/data/out.txt", s.OutputPath)
				assert.Equal(t, "audio/mpeg", s.MIMEType)
				assert.Equal(t, "debug", s.LogLevel)
				assert.Equal(t, 2*time.Minute, s.Timeout())
				assert.Equal(t, "/data/ledger.db", s.LedgerPath)
				assert.Equal(t, "/data/transcriber.prom", s.MetricsFile)
				assert.True(t, s.DeleteUpload)
			},
		},
		{
			name:    "partial file keeps defaults",
			content: "log_level: warn\n",
			check: func(t *testing.T, s *Settings) {
				assert.Equal(t, DefaultModel, s.Model)
				assert.Equal(t, DefaultPrompt, s.Prompt)
				assert.Equal(t, DefaultAudioPath, s.AudioPath)
				assert.Equal(t, DefaultOutputPath, s.OutputPath)
				assert.Equal(t, "warn", s.LogLevel)
			},
		},
		{
			name:          "bad log level",
			content:       "log_level: chatty\n",
			errorContains: "invalid configuration",
		},
		{
			name:          "negative timeout",
			content:       "timeout: -1s\n",
			errorContains: "timeout cannot be negative",
		},
		{
			name:          "timeout too large",
			content:       "timeout: 2h\n",
			errorContains: "timeout too large",
		},
		{
			name:    "sub-second timeout kept",
			content: "timeout: 500ms\n",
			check: func(t *testing.T, s *Settings) {
				assert.Equal(t, 500*time.Millisecond, s.Timeout())
			},
		},
		{
			name:          "timeout without unit",
			content:       "timeout: 120\n",
			errorContains: "failed to parse settings file",
		},
		{
			name:          "non audio mime type",
			content:       "mime_type: text/plain\n",
			errorContains: "invalid configuration",
		},
		{
			name:          "malformed yaml",
			content:       "model: [unterminated\n",
			errorContains: "failed to parse settings file",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			settings, err := LoadSettings(writeSettings(t, tc.content))
			if tc.errorContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.errorContains)
				assert.Equal(t, apperrors.KindConfig, apperrors.KindOf(err))
				return
			}
			require.NoError(t, err)
			tc.check(t, settings)
		})
	}
}

func TestLoadSettingsMissingFile(t *testing.T) {
	_, err := LoadSettings(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConfig, apperrors.KindOf(err))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidateTimeout(t *testing.T) {
	assert.NoError(t, ValidateTimeout(0, "run"))
	assert.NoError(t, ValidateTimeout(30*time.Minute, "run"))
	assert.Error(t, ValidateTimeout(-time.Second, "run"))
	assert.Error(t, ValidateTimeout(31*time.Minute, "run"))
}
