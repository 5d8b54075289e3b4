package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var (
	ErrNotTXD     = errors.New("input file is not a .txd archive")
	ErrNoTXDFiles = errors.New("no .txd files found")
)

// isTXD reports whether path has a .txd extension, ignoring case.
func isTXD(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".txd")
}

// ResolveInputs returns the archives to process for path. A file must be a
// .txd archive; a directory is walked recursively and must contain at least one.
func ResolveInputs(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat input: %w", err)
	}

	if !info.IsDir() {
		if !isTXD(path) {
			return nil, fmt.Errorf("%s: %w", path, ErrNotTXD)
		}
		return []string{path}, nil
	}

	var files []string
	err = filepath.Walk(path, func(p string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() || !isTXD(p) {
			return nil
		}
		files = append(files, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", path, err)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoTXDFiles)
	}

	sort.Strings(files)
	return files, nil
}

// OutputDir returns where textures from file are written: override when set,
// otherwise a sibling directory named after the archive with a _txd suffix.
func OutputDir(file, override string) string {
	if override != "" {
		return override
	}
	base := filepath.Base(file)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(filepath.Dir(file), base+"_txd")
}
