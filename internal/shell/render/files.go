package render

import (
	"fmt"
	"os"
	"path/filepath"
)

// =============================================================================
// File Writing
// =============================================================================

// MkFile writes contents to filePath under basePath, creating parent
// directories as needed. An existing file is left untouched unless overwrite
// is set. Returns a human-readable action line describing what happened.
func MkFile(basePath, filePath string, contents []byte, overwrite bool) (string, error) {
	full := filepath.Join(basePath, filePath)

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", &RenderError{Path: filePath, Message: "creating parent directory", Err: err}
	}

	_, statErr := os.Stat(full)
	exists := statErr == nil

	if exists && !overwrite {
		return fmt.Sprintf("File %s exists; doing nothing", filePath), nil
	}

	if err := os.WriteFile(full, contents, 0o644); err != nil {
		return "", &RenderError{Path: filePath, Message: "writing file", Err: err}
	}

	action := "created"
	if exists {
		action = "overwritten"
	}
	return fmt.Sprintf("File %s %s", filePath, action), nil
}
