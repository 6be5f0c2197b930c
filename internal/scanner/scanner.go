// Package scanner provides recursive directory scanning and image file filtering.
package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SupportedExtensions contains the set of image file extensions we list.
var SupportedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
	".svg":  true,
}

// IsImage reports whether name has a supported image extension, ignoring case.
func IsImage(name string) bool {
	return SupportedExtensions[strings.ToLower(filepath.Ext(name))]
}

// Result holds the output of scanning a directory tree.
type Result struct {
	// ImagePaths are root-relative, slash-separated and sorted ascending.
	ImagePaths   []string
	SkippedCount int
}

// Scan walks root recursively and returns the relative paths of all image
// files. A symlinked root is followed; .git directories are not entered.
// A tree without images yields an empty Result, not an error.
func Scan(root string) (*Result, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("cannot access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	// WalkDir does not follow a symlinked root.
	root, err = filepath.EvalSymlinks(root)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve directory: %w", err)
	}

	result := &Result{}
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if path != root && d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if !IsImage(d.Name()) {
			result.SkippedCount++
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		result.ImagePaths = append(result.ImagePaths, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("cannot scan %s: %w", root, err)
	}

	sort.Strings(result.ImagePaths)
	return result, nil
}

// Discover returns the names of the directories directly under dir whose
// name starts with prefix, sorted ascending. Symlinks to directories count
// as directories.
func Discover(dir, prefix string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot read directory: %w", err)
	}

	var folders []string
	for _, entry := range entries {
		if !strings.HasPrefix(entry.Name(), prefix) {
			continue
		}
		if entry.IsDir() || isDirLink(filepath.Join(dir, entry.Name()), entry) {
			folders = append(folders, entry.Name())
		}
	}
	sort.Strings(folders)
	return folders, nil
}

func isDirLink(path string, entry fs.DirEntry) bool {
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
