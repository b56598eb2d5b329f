package testutil

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"gemini-transcriber/internal/app/api/gemini"
)

// TestUploadedFile is the remote reference mocks hand back by default.
var TestUploadedFile = gemini.NewUploadedFile(
	"files/test-audio-123",
	"https://generativelanguage.googleapis.com/v1beta/files/test-audio-123",
	"audio/mpeg",
)

// WriteAudioFixture writes a small ID3-tagged file and returns its path.
func WriteAudioFixture(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "filename.mp3")
	data := append([]byte("ID3\x03\x00\x00\x00\x00\x00\x00"), make([]byte, 128)...)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

// StageRecorder collects the stages reported to a transcriber observer.
type StageRecorder struct {
	mu     sync.Mutex
	Stages []string
}

func (r *StageRecorder) StageDone(stage string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Stages = append(r.Stages, stage)
}
