package scripts

import (
	"fmt"
	"io"
	"strings"

	"github.com/moasq/lk/internal/terminal"
)

// indent is the gap left of the longest function name in a listing.
const indent = 2

// PrintExecutables lists discovered executables with their paths.
func PrintExecutables(w io.Writer, execs Executables) {
	if len(execs) == 0 {
		fmt.Fprintf(w, "%sNo executables found here.%s\n", terminal.Yellow, terminal.Reset)
		return
	}
	fmt.Fprintf(w, "lk found these executables. Run %slk <executable>%s to see the functions each one offers.\n",
		terminal.Green, terminal.Reset)
	for _, x := range execs {
		fmt.Fprintf(w, "  %s%s%s %s-- %s%s\n", terminal.Bold, x.Name, terminal.Reset, terminal.Dim, x.Path, terminal.Reset)
	}
}

// PrintScript shows a script's header comment and its functions, names
// right-aligned, each followed by its comment.
func PrintScript(w io.Writer, s *Script) {
	fmt.Fprintf(w, "%s%s%s\n", terminal.Bold, s.Path, terminal.Reset)
	if len(s.Functions) == 0 {
		fmt.Fprintf(w, "%sThis script has no functions.%s Declare one as %sname() {%s on a single line.\n",
			terminal.Yellow, terminal.Reset, terminal.Green, terminal.Reset)
		return
	}
	for _, line := range s.Comment {
		fmt.Fprintf(w, "  %s\n", line)
	}

	width := 0
	for _, fn := range s.Functions {
		width = max(width, len(fn.Name))
	}
	width += indent

	for _, fn := range s.Functions {
		name := fmt.Sprintf("%*s", width, fn.Name)
		if len(fn.Comment) == 0 {
			fmt.Fprintf(w, "%s%s%s\n", terminal.Green, name, terminal.Reset)
			continue
		}
		fmt.Fprintf(w, "%s%s%s %s\n", terminal.Green, name, terminal.Reset, fn.Comment[0])
		for _, line := range fn.Comment[1:] {
			fmt.Fprintf(w, "%s %s\n", strings.Repeat(" ", width), line)
		}
	}
}

// PrintUnknownScript reports a script name that was not found.
func PrintUnknownScript(w io.Writer, name string, execs Executables) {
	fmt.Fprintf(w, "%sCouldn't find a script called %q.%s\n", terminal.Red, name, terminal.Reset)
	PrintExecutables(w, execs)
}

// PrintUnknownFunction reports a function name the script does not define.
func PrintUnknownFunction(w io.Writer, s *Script, name string) {
	fmt.Fprintf(w, "%sCouldn't find a function called %q in %s.%s\n", terminal.Red, name, s.Path, terminal.Reset)
	PrintScript(w, s)
}
