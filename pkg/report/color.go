package report

import (
	"io"
	"os"

	"golang.org/x/term"
)

// UseColor resolves a color mode (auto, always, never) for output going to
// w. Auto colors only a terminal, and never when NO_COLOR is set.
func UseColor(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
