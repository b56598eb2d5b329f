package files

import (
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
)

// EnsureParentDir creates the directory that will hold filePath.
func EnsureParentDir(filePath string) error {
	return os.MkdirAll(filepath.Dir(filePath), os.ModePerm)
}

// WriteFileAtomic replaces filePath with data. Readers see either the old or
// the new content, and an existing file is left untouched on failure. The
// parent directory must exist.
func WriteFileAtomic(filePath string, data []byte, perm os.FileMode) error {
	return renameio.WriteFile(filePath, data, perm, renameio.WithTempDir(filepath.Dir(filePath)))
}
