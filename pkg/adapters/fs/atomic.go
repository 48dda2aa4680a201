package fs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// TempFilePrefix marks the scratch files left next to an index file while it is replaced.
const TempFilePrefix = ".dgpub-tmp-"

// replaceFile swaps the content of path in one rename, so a site generator
// reading the publish root sees either the old page or the new one.
// The parent directory must already exist.
func replaceFile(path, content string, perm os.FileMode) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), TempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	_, werr := tmp.WriteString(content)
	if werr == nil {
		werr = tmp.Sync()
	}
	if cerr := tmp.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		return fmt.Errorf("failed to write temp file: %w", werr)
	}

	if err := os.Chmod(tmp.Name(), perm); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Join(fmt.Errorf("failed to move temp file over %s", path), err)
	}
	return nil
}
