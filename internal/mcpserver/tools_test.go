package mcpserver

import (
	"context"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.DiscardHandler)

const releaseScript = `#!/usr/bin/env bash
# Release helpers.

# Print the arguments.
echo_args() {
  printf '<%s>' "$@"
}

fail() {
  echo broken
  return 4
}

_hidden() {
  :
}
`

func fixtureRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	path := filepath.Join(root, "ops", "release.sh")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(releaseScript), 0o755))
	return root
}

func TestListFunctions(t *testing.T) {
	h := &handlers{opts: Options{Root: fixtureRoot(t), Logger: testLogger}}

	_, out, err := h.listFunctions(context.Background(), nil, listFunctionsInput{})
	require.NoError(t, err)

	require.Len(t, out.Scripts, 1)
	s := out.Scripts[0]
	assert.Equal(t, "release.sh", s.Name)
	assert.Equal(t, []string{"Release helpers."}, s.Comment)
	require.Len(t, s.Functions, 2)
	assert.Equal(t, "echo_args", s.Functions[0].Name)
	assert.Equal(t, []string{"Print the arguments."}, s.Functions[0].Comment)
	assert.Equal(t, "fail", s.Functions[1].Name)
}

func TestRunFunctionSplitsArgs(t *testing.T) {
	if _, err := exec.LookPath("bash"); err != nil {
		t.Skip("bash not available")
	}
	h := &handlers{opts: Options{Root: fixtureRoot(t), Logger: testLogger}}

	_, out, err := h.runFunction(context.Background(), nil, runFunctionInput{
		Script:   "release.sh",
		Function: "echo_args",
		Args:     `one "two three"`,
	})
	require.NoError(t, err)
	assert.Equal(t, "<one><two three>", out.Output)
	assert.Zero(t, out.ExitCode)
}

func TestRunFunctionReportsExitCode(t *testing.T) {
	if _, err := exec.LookPath("bash"); err != nil {
		t.Skip("bash not available")
	}
	h := &handlers{opts: Options{Root: fixtureRoot(t), Logger: testLogger}}

	_, out, err := h.runFunction(context.Background(), nil, runFunctionInput{Script: "release.sh", Function: "fail"})
	require.NoError(t, err)
	assert.Equal(t, 4, out.ExitCode)
	assert.Equal(t, "broken\n", out.Output)
}

func TestRunFunctionUnknownNames(t *testing.T) {
	h := &handlers{opts: Options{Root: fixtureRoot(t), Logger: testLogger}}

	_, _, err := h.runFunction(context.Background(), nil, runFunctionInput{Script: "nope.sh", Function: "x"})
	assert.Error(t, err)

	_, _, err = h.runFunction(context.Background(), nil, runFunctionInput{Script: "release.sh", Function: "_hidden"})
	assert.Error(t, err)

	_, _, err = h.runFunction(context.Background(), nil, runFunctionInput{Script: "release.sh", Function: "fail", Args: `"unterminated`})
	assert.Error(t, err)
}

func TestServerListsTools(t *testing.T) {
	ctx := context.Background()
	server := NewServer(Options{Root: fixtureRoot(t), Version: "test"})
	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	defer serverSession.Close()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	defer session.Close()

	res, err := session.ListTools(ctx, &mcp.ListToolsParams{})
	require.NoError(t, err)

	var names []string
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{"list_functions", "run_function"}, names)
}
