package receipt

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Storage defines the filesystem operations a run needs on its directory
type Storage interface {
	// Dir returns the directory the storage works on
	Dir() string

	// List returns the names of the PDF files in the directory, sorted
	List() ([]string, error)

	// Get retrieves a file by name
	Get(name string) ([]byte, error)

	// Exists reports whether a file with that name is present
	Exists(name string) bool

	// Rename moves a file to a new name in the same directory
	Rename(from, to string) error
}

// LocalStorage implements the Storage interface using local filesystem
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a new LocalStorage instance over an existing directory
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("resolving directory: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("opening directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("opening directory: %s is not a directory", abs)
	}

	return &LocalStorage{
		basePath: abs,
	}, nil
}

// Dir returns the absolute directory path
func (l *LocalStorage) Dir() string {
	return l.basePath
}

// List returns the *.pdf files of the directory, without descending into
// subdirectories
func (l *LocalStorage) List() ([]string, error) {
	entries, err := os.ReadDir(l.basePath)
	if err != nil {
		return nil, fmt.Errorf("reading directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Get retrieves a file from local storage
func (l *LocalStorage) Get(name string) ([]byte, error) {
	data, err := os.ReadFile(l.path(name))
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return data, nil
}

// Exists reports whether name is present in the directory
func (l *LocalStorage) Exists(name string) bool {
	_, err := os.Lstat(l.path(name))
	return err == nil || !errors.Is(err, os.ErrNotExist)
}

// Rename renames a file in place. It refuses to overwrite an existing file.
func (l *LocalStorage) Rename(from, to string) error {
	if l.Exists(to) {
		return fmt.Errorf("renaming file: %s already exists", to)
	}
	if err := os.Rename(l.path(from), l.path(to)); err != nil {
		return fmt.Errorf("renaming file: %w", err)
	}
	return nil
}

// path keeps every name inside the base directory
func (l *LocalStorage) path(name string) string {
	return filepath.Join(l.basePath, filepath.Base(name))
}
