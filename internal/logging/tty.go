package logging

import (
	"io"
	"os"

	"golang.org/x/term"
)

// ForceColorEnv enables color on writers that are not terminals, for CI
// log viewers that render ANSI codes. NO_COLOR still wins.
const ForceColorEnv = "CLICOLOR_FORCE"

// IsTTY reports whether v is a terminal. Anything with an Fd method (such
// as *os.File) is checked; other readers and writers are not terminals.
func IsTTY(v any) bool {
	if f, ok := v.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// Interactive reports whether in and out are both terminals, which the
// full-screen target picker needs.
func Interactive(in io.Reader, out io.Writer) bool {
	return IsTTY(in) && IsTTY(out)
}

// SupportsColor reports whether ANSI colors should be written to w.
// NO_COLOR and TERM=dumb disable color; ForceColorEnv enables it off a
// terminal.
func SupportsColor(w io.Writer) bool {
	return colorAllowed(IsTTY(w))
}

func colorAllowed(isTTY bool) bool {
	// https://no-color.org
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	if v := os.Getenv(ForceColorEnv); v != "" && v != "0" {
		return true
	}
	return isTTY
}
