package filestore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store writes and lists files under a single directory. Filenames must
// be simple names, path separators and traversal are rejected.
type Store struct {
	dir string
}

func New(dir string) (Store, error) {
	err := os.MkdirAll(dir, 0o755)
	if err != nil {
		return Store{}, err
	}
	return Store{dir: dir}, nil
}

func (s Store) Dir() string {
	return s.dir
}

type InvalidFilenameError struct {
	Filename string
}

func (e InvalidFilenameError) Error() string {
	return fmt.Sprintf("invalid filename %q: use simple filenames only", e.Filename)
}

func validFilename(name string) bool {
	if name == "" || name == "." {
		return false
	}
	if strings.Contains(name, "..") {
		return false
	}
	if strings.ContainsAny(name, `/\`) {
		return false
	}
	return true
}

func (s Store) Write(filename, content string) (string, error) {
	if !validFilename(filename) {
		return "", InvalidFilenameError{Filename: filename}
	}
	path := filepath.Join(s.dir, filename)
	err := os.WriteFile(path, []byte(content), 0o644)
	if err != nil {
		return "", err
	}
	return path, nil
}

func (s Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}
