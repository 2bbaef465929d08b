// Package config manages batchren configuration and filesystem paths.
//
// The default root is ~/.batchren/ containing sessions/ and config.json. The
// root can be moved with BATCHREN_ROOT; individual settings can be overridden
// with environment variables (see settings.go).
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths contains all the filesystem paths used by batchren.
type Paths struct {
	// Root is the base directory for all batchren data (default: ~/.batchren)
	Root string

	// Sessions is the directory containing one session file per working directory
	Sessions string

	// Config is the path to the optional settings file
	Config string
}

// DefaultPaths returns the default paths for batchren.
// Paths can be overridden with environment variables:
// - BATCHREN_ROOT: Override the root directory
func DefaultPaths() (*Paths, error) {
	root := os.Getenv("BATCHREN_ROOT")
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		root = filepath.Join(home, ".batchren")
	}
	return PathsAt(root), nil
}

// PathsAt returns the paths rooted at root.
func PathsAt(root string) *Paths {
	return &Paths{
		Root:     root,
		Sessions: filepath.Join(root, "sessions"),
		Config:   filepath.Join(root, "config.json"),
	}
}

// DirMaker is the subset of fsops.FS needed to create the data directories.
type DirMaker interface {
	MkdirAll(path string, perm os.FileMode) error
}

// EnsureDirectories creates all necessary directories if they don't exist.
func (p *Paths) EnsureDirectories(fs DirMaker) error {
	dirs := []string{
		p.Root,
		p.Sessions,
	}

	for _, dir := range dirs {
		if err := fs.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}
