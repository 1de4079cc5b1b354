package mcpserver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/google/shlex"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/moasq/lk/internal/runner"
	"github.com/moasq/lk/internal/scripts"
)

type handlers struct {
	opts Options
}

// listFunctionsInput is the input for the list_functions tool.
type listFunctionsInput struct {
	Root string `json:"root,omitempty" jsonschema:"Directory to search. Defaults to the directory lk was started in."`
}

type functionInfo struct {
	Name    string   `json:"name"`
	Comment []string `json:"comment,omitempty"`
}

type scriptInfo struct {
	Name      string         `json:"name"`
	Path      string         `json:"path"`
	Comment   []string       `json:"comment,omitempty"`
	Functions []functionInfo `json:"functions"`
}

type listFunctionsOutput struct {
	Scripts []scriptInfo `json:"scripts"`
}

func (h *handlers) listFunctions(ctx context.Context, req *mcp.CallToolRequest, input listFunctionsInput) (*mcp.CallToolResult, listFunctionsOutput, error) {
	root := input.Root
	if root == "" {
		root = h.opts.Root
	}
	execs, err := scripts.Discover(root, h.opts.Ignore, h.opts.Logger)
	if err != nil {
		return nil, listFunctionsOutput{}, err
	}

	parsed, errs := scripts.ParseAll(execs)
	for _, err := range errs {
		h.opts.Logger.Warn("skipping unreadable script", "err", err)
	}

	out := listFunctionsOutput{Scripts: make([]scriptInfo, 0, len(parsed))}
	for _, s := range parsed {
		info := scriptInfo{
			Name:      s.FileName(),
			Path:      s.Path,
			Comment:   s.Comment,
			Functions: make([]functionInfo, 0, len(s.Functions)),
		}
		for _, fn := range s.Functions {
			info.Functions = append(info.Functions, functionInfo{Name: fn.Name, Comment: fn.Comment})
		}
		out.Scripts = append(out.Scripts, info)
	}
	return nil, out, nil
}

// runFunctionInput is the input for the run_function tool.
type runFunctionInput struct {
	Root     string `json:"root,omitempty" jsonschema:"Directory the script was listed from. Defaults to the directory lk was started in."`
	Script   string `json:"script" jsonschema:"Script file name as returned by list_functions e.g. release.sh"`
	Function string `json:"function" jsonschema:"Function to run"`
	Args     string `json:"args,omitempty" jsonschema:"Arguments for the function, split with shell quoting rules"`
}

type runFunctionOutput struct {
	Output   string `json:"output"`
	ExitCode int    `json:"exit_code"`
}

func (h *handlers) runFunction(ctx context.Context, req *mcp.CallToolRequest, input runFunctionInput) (*mcp.CallToolResult, runFunctionOutput, error) {
	root := input.Root
	if root == "" {
		root = h.opts.Root
	}
	params, err := shlex.Split(input.Args)
	if err != nil {
		return nil, runFunctionOutput{}, fmt.Errorf("invalid args %q: %w", input.Args, err)
	}

	execs, err := scripts.Discover(root, h.opts.Ignore, h.opts.Logger)
	if err != nil {
		return nil, runFunctionOutput{}, err
	}
	exe, err := execs.Get(input.Script)
	if err != nil {
		return nil, runFunctionOutput{}, err
	}
	script, err := scripts.Parse(exe)
	if err != nil {
		return nil, runFunctionOutput{}, err
	}
	fn, err := script.Function(input.Function)
	if err != nil {
		return nil, runFunctionOutput{}, err
	}

	var output bytes.Buffer
	err = runner.Run(ctx, script, fn, params, runner.Options{
		Dir:    os.TempDir(),
		Stdin:  bytes.NewReader(nil),
		Stdout: &output,
		Stderr: &output,
		Quiet:  true,
		Logger: h.opts.Logger,
	})

	var exitErr *runner.ExitError
	switch {
	case errors.As(err, &exitErr):
		return nil, runFunctionOutput{Output: output.String(), ExitCode: exitErr.Code}, nil
	case err != nil:
		return nil, runFunctionOutput{}, err
	}
	return nil, runFunctionOutput{Output: output.String()}, nil
}
