package xexec

import (
	"errors"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// findExecutable is from package exec
func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0111 != 0 {
		return nil
	}
	return fs.ErrPermission
}

// SearchPath searches for all executables that have prefix in their names in
// the directories named by the PATH environment variable.
func SearchPath(prefix string) ([]string, error) {
	var matches []string
	envPath := os.Getenv("PATH")
	dirSet := make(map[string]struct{})
	for _, dir := range filepath.SplitList(envPath) {
		if dir == "" {
			// From exec package:
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		if _, ok := dirSet[dir]; ok {
			continue
		}
		dirSet[dir] = struct{}{}
		files, err := os.ReadDir(dir)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, err
		}
		for _, f := range files {
			if strings.HasPrefix(f.Name(), prefix) {
				match := filepath.Join(dir, f.Name())
				if err := findExecutable(match); err == nil {
					matches = append(matches, match)
				}
			}
		}

	}
	return matches, nil
}

// FindFirst returns the path of the first of names found in PATH. An explicit
// path (one containing a separator) is checked directly.
// Returns exec.ErrNotFound when none are found.
func FindFirst(names ...string) (string, error) {
	for _, name := range names {
		if name == "" {
			continue
		}
		if strings.ContainsRune(name, filepath.Separator) {
			if err := findExecutable(name); err == nil {
				return name, nil
			}
			continue
		}
		matches, err := SearchPath(name)
		if err != nil {
			return "", err
		}
		for _, m := range matches {
			if filepath.Base(m) == name {
				return m, nil
			}
		}
	}
	return "", exec.ErrNotFound
}
