package driver

import (
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"cstlint/internal/config"
)

// Extensions lists the file suffixes a directory run picks up.
var Extensions = []string{".js", ".jsx", ".mjs", ".cjs", ".ts", ".tsx"}

// skipDirs are never descended into.
var skipDirs = []string{".git", "node_modules", ".cache"}

// IsSource reports whether path has one of Extensions.
func IsSource(path string) bool {
	return slices.Contains(Extensions, strings.ToLower(filepath.Ext(path)))
}

// ListSourceFiles returns the sorted source files under dir that cfg does
// not ignore.
func ListSourceFiles(dir string, cfg *config.Config) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && slices.Contains(skipDirs, d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !IsSource(path) || (cfg != nil && cfg.Ignored(path)) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(files)
	return files, nil
}
