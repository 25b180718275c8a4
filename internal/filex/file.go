// Package filex contains small filesystem helpers.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDir creates the directory (and any missing parents) if it does not
// exist yet and returns its absolute path.
func EnsureDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("abs %s: %w", dir, err)
	}

	if err := os.MkdirAll(abs, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", abs, err)
	}

	return abs, nil
}
