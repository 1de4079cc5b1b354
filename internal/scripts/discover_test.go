package scripts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string, body string, mode os.FileMode) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), mode))
	require.NoError(t, os.Chmod(path, mode))
}

func TestDiscoverFindsExecutableTextFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "build.sh"), "#!/bin/bash\n", 0o755)
	writeFile(t, filepath.Join(root, "tools", "deploy"), "#!/bin/bash\n", 0o700)
	writeFile(t, filepath.Join(root, "README.md"), "# readme\n", 0o644)
	writeFile(t, filepath.Join(root, "bin", "tool"), "\x7fELF\x00\x00", 0o755)
	writeFile(t, filepath.Join(root, ".git", "hooks", "pre-commit"), "#!/bin/sh\n", 0o755)
	writeFile(t, filepath.Join(root, "vendor", "x", "gen.sh"), "#!/bin/sh\n", 0o755)
	writeFile(t, filepath.Join(root, "empty.sh"), "", 0o755)

	execs, err := Discover(root, []string{".git", "vendor/x"}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"build.sh", "empty.sh", "deploy"}, execs.Names())
	assert.Equal(t, filepath.Join(root, "tools", "deploy"), execs[2].Path)
}

func TestDiscoverMissingRoot(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "nope"), nil, nil)
	assert.Error(t, err)
}

func TestExecutablesGet(t *testing.T) {
	execs := Executables{
		{Name: "a.sh", Path: "./a.sh"},
		{Name: "b.sh", Path: "./x/b.sh"},
		{Name: "b.sh", Path: "./y/b.sh"},
	}

	got, err := execs.Get("b.sh")
	require.NoError(t, err)
	assert.Equal(t, "./x/b.sh", got.Path)

	_, err = execs.Get("c.sh")
	assert.ErrorIs(t, err, ErrScriptNotFound)
}
