// Package history appends commands to the user's interactive shell
// history, so a function picked in the finder can be re-run with the
// shell's own history search.
package history

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Shell identifies a history file format.
type Shell string

const (
	Bash Shell = "bash"
	Zsh  Shell = "zsh"
	Fish Shell = "fish"
)

// ErrUnknownShell is returned when $SHELL names a shell whose history
// format is not supported.
var ErrUnknownShell = errors.New("unknown shell")

// DetectShell maps a shell path such as /bin/zsh to its Shell.
func DetectShell(shellPath string) (Shell, error) {
	switch s := Shell(filepath.Base(shellPath)); s {
	case Bash, Zsh, Fish:
		return s, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownShell, shellPath)
}

// Store appends entries to one shell history file.
type Store struct {
	mu    sync.Mutex
	shell Shell
	path  string
	now   func() time.Time
}

// NewStore creates a store writing shell-formatted entries to path.
func NewStore(shell Shell, path string) *Store {
	return &Store{shell: shell, path: path, now: time.Now}
}

// Locate finds the current user's shell and history file from the
// environment: $SHELL, then $HISTFILE or the shell's default location.
func Locate(getenv func(string) string) (*Store, error) {
	shell, err := DetectShell(getenv("SHELL"))
	if err != nil {
		return nil, err
	}
	home := getenv("HOME")
	if home == "" {
		if home, err = os.UserHomeDir(); err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
	}

	var path string
	switch shell {
	case Fish:
		dataHome := getenv("XDG_DATA_HOME")
		if dataHome == "" {
			dataHome = filepath.Join(home, ".local", "share")
		}
		path = filepath.Join(dataHome, "fish", "fish_history")
	default:
		path = getenv("HISTFILE")
		if path == "" {
			path = filepath.Join(home, "."+string(shell)+"_history")
		}
	}
	return NewStore(shell, path), nil
}

// Shell returns the store's history format.
func (s *Store) Shell() Shell {
	return s.shell
}

// Path returns the history file path.
func (s *Store) Path() string {
	return s.path
}

// Append adds command as the newest history entry.
func (s *Store) Append(command string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	if _, err := f.WriteString(s.entry(command)); err != nil {
		f.Close()
		return fmt.Errorf("failed to write history: %w", err)
	}
	return f.Close()
}

func (s *Store) entry(command string) string {
	when := s.now().Unix()
	switch s.shell {
	case Zsh:
		// Extended history: ": <start>:<elapsed>;<command>".
		return fmt.Sprintf(": %d:0;%s\n", when, command)
	case Fish:
		cmd := strings.NewReplacer(`\`, `\\`, "\n", `\n`).Replace(command)
		return fmt.Sprintf("- cmd: %s\n  when: %d\n", cmd, when)
	default:
		return command + "\n"
	}
}
