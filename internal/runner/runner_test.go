package runner

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moasq/lk/internal/scripts"
)

func requireBash(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("bash"); err != nil {
		t.Skip("bash not available")
	}
}

func writeScript(t *testing.T, body string) *scripts.Script {
	t.Helper()
	path := filepath.Join(t.TempDir(), "it's here.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/usr/bin/env bash\n"+body), 0o755))
	return &scripts.Script{Path: path}
}

func TestWrapperQuotesPathAndParams(t *testing.T) {
	got := Wrapper("./my dir/run.sh", "deploy", []string{"prod", "a b", "it's"})

	assert.True(t, strings.HasPrefix(got, "#!/usr/bin/env bash\n"))
	assert.True(t, strings.HasSuffix(got, `source './my dir/run.sh' && deploy prod 'a b' 'it'"'"'s'`+"\n"), got)
}

func TestWrapperWithoutParams(t *testing.T) {
	got := Wrapper("./run.sh", "build", nil)
	assert.True(t, strings.HasSuffix(got, "source ./run.sh && build\n"), got)
}

func TestRunPassesParams(t *testing.T) {
	requireBash(t)
	s := writeScript(t, "greet() {\n  printf '%s|' \"$@\"\n}\n")
	dir := t.TempDir()
	var out bytes.Buffer

	err := Run(context.Background(), s, scripts.Function{Name: "greet"}, []string{"a b", "$HOME"}, Options{
		Dir:    dir,
		Stdout: &out,
		Quiet:  true,
	})

	require.NoError(t, err)
	assert.Equal(t, "a b|$HOME|", out.String())

	left, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, left, "wrapper is removed")
}

func TestRunReportsExitCode(t *testing.T) {
	requireBash(t)
	s := writeScript(t, "fail() {\n  echo oops >&2\n  return 3\n}\n")
	dir := t.TempDir()
	var stdout, stderr bytes.Buffer

	err := Run(context.Background(), s, scripts.Function{Name: "fail"}, nil, Options{
		Dir:    dir,
		Stdout: &stdout,
		Stderr: &stderr,
	})

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 3, exitErr.Code)
	assert.Contains(t, stdout.String(), "-> fail")
	assert.Equal(t, "oops\n", stderr.String())

	left, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, left, "wrapper is removed on failure too")
}

func TestRunMissingWrapperDir(t *testing.T) {
	s := &scripts.Script{Path: "./x.sh"}
	err := Run(context.Background(), s, scripts.Function{Name: "x"}, nil, Options{
		Dir:    filepath.Join(t.TempDir(), "missing"),
		Stdout: &bytes.Buffer{},
	})
	assert.ErrorContains(t, err, "write wrapper")
}
