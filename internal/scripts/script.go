package scripts

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// ErrFunctionNotFound is returned when a script has no function with the
// requested name.
var ErrFunctionNotFound = errors.New("function not found")

// functionHeader matches a one-line shell function opener such as
// `build() {` or `  deploy  ()  {`.
var functionHeader = regexp.MustCompile(`^.*\(\).*\{$`)

// Function is a shell function and the comment block directly above it.
type Function struct {
	Name    string
	Comment []string
}

// Script is a parsed executable.
type Script struct {
	Path string
	// Comment is the block of comment lines following the shebang.
	Comment   []string
	Functions []Function
}

// Parse reads an executable and extracts its header comment and functions.
// Functions whose names start with an underscore are private and skipped.
func Parse(exe Executable) (*Script, error) {
	f, err := os.Open(exe.Path)
	if err != nil {
		return nil, fmt.Errorf("open script %s: %w", exe.Path, err)
	}
	defer f.Close()

	s := &Script{Path: exe.Path}
	var pending []string
	inHeader := false

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if strings.HasPrefix(line, "#") {
			switch {
			case strings.Contains(line, "#!/"):
				inHeader = true
			case inHeader:
				comment := cleanComment(line)
				// Skip spacer lines between the shebang and the text.
				if len(s.Comment) == 0 && comment == "" {
					continue
				}
				s.Comment = append(s.Comment, comment)
			default:
				pending = append(pending, cleanComment(line))
			}
			continue
		}

		if isFunctionHeader(line) {
			s.Functions = append(s.Functions, Function{
				Name:    functionName(line),
				Comment: pending,
			})
		}
		pending = nil
		inHeader = false
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read script %s: %w", exe.Path, err)
	}
	return s, nil
}

// Function looks up a function by name.
func (s *Script) Function(name string) (Function, error) {
	for _, fn := range s.Functions {
		if fn.Name == name {
			return fn, nil
		}
	}
	return Function{}, fmt.Errorf("%w: %q in %s", ErrFunctionNotFound, name, s.Path)
}

// FunctionNames lists the script's functions in file order.
func (s *Script) FunctionNames() []string {
	names := make([]string, len(s.Functions))
	for i, fn := range s.Functions {
		names[i] = fn.Name
	}
	return names
}

// Dir is the directory holding the script.
func (s *Script) Dir() string {
	return filepath.Dir(s.Path)
}

// FileName is the script's base name.
func (s *Script) FileName() string {
	return filepath.Base(s.Path)
}

func isFunctionHeader(line string) bool {
	if strings.HasPrefix(strings.TrimSpace(line), "_") {
		return false
	}
	return functionHeader.MatchString(line)
}

func functionName(line string) string {
	name, _, _ := strings.Cut(line, "()")
	return strings.TrimSpace(name)
}

// cleanComment strips the leading hashes and the whitespace after them.
func cleanComment(line string) string {
	return strings.TrimLeft(strings.TrimLeft(line, "#"), " \t")
}

// ParseAll parses every executable, skipping (and returning) the ones that
// cannot be read.
func ParseAll(execs Executables) ([]*Script, []error) {
	var (
		out  []*Script
		errs []error
	)
	for _, exe := range execs {
		s, err := Parse(exe)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, s)
	}
	return out, errs
}
