// Package scripts finds executable scripts under a directory tree and reads
// the functions and comments out of them.
package scripts

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// ErrScriptNotFound is returned when no discovered executable has the
// requested name.
var ErrScriptNotFound = errors.New("script not found")

// sniffLen is how much of a file is inspected to tell text from binary.
const sniffLen = 1024

// Executable is a text file with an executable bit set.
type Executable struct {
	// Name is the file's base name, which is how users refer to it.
	Name string
	// Path is the file's path relative to the discovery root's parent, as
	// walked (e.g. "./scripts/build.sh").
	Path string
}

// Executables is the result of a discovery walk, sorted by path.
type Executables []Executable

// Get finds an executable by base name. The first match in path order wins.
func (e Executables) Get(name string) (Executable, error) {
	for _, x := range e {
		if x.Name == name {
			return x, nil
		}
	}
	return Executable{}, fmt.Errorf("%w: %q", ErrScriptNotFound, name)
}

// Names lists the executables' base names in path order.
func (e Executables) Names() []string {
	names := make([]string, len(e))
	for i, x := range e {
		names[i] = x.Name
	}
	return names
}

// Discover walks root for executable text files, skipping any directory
// whose name or root-relative path is in ignore. Unreadable entries are
// logged and skipped.
func Discover(root string, ignore []string, logger *slog.Logger) (Executables, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	ignored := make(map[string]bool, len(ignore))
	for _, name := range ignore {
		ignored[filepath.Clean(name)] = true
	}

	var found Executables
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			logger.Warn("skipping unreadable path", "path", path, "err", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path != root && isIgnored(root, path, d.Name(), ignored) {
				logger.Debug("ignoring directory", "path", path)
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			logger.Warn("cannot stat file", "path", path, "err", err)
			return nil
		}
		if info.Mode().Perm()&0o111 == 0 {
			return nil
		}
		binary, err := isBinary(path)
		if err != nil {
			logger.Warn("cannot read file", "path", path, "err", err)
			return nil
		}
		if binary {
			return nil
		}
		found = append(found, Executable{Name: d.Name(), Path: path})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discover scripts in %s: %w", root, err)
	}

	slices.SortFunc(found, func(a, b Executable) int {
		return strings.Compare(a.Path, b.Path)
	})
	logger.Debug("discovered executables", "root", root, "count", len(found))
	return found, nil
}

func isIgnored(root, path, name string, ignored map[string]bool) bool {
	if ignored[name] {
		return true
	}
	rel, err := filepath.Rel(root, path)
	return err == nil && ignored[rel]
}

// isBinary reports whether the start of the file contains a NUL byte.
func isBinary(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	buf := make([]byte, sniffLen)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return false, err
	}
	return bytes.IndexByte(buf[:n], 0) >= 0, nil
}
