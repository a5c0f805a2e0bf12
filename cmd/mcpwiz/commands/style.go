package commands

import (
	"github.com/fatih/color"

	"github.com/mcp-proxy/mcp-proxy/internal/target"
)

var (
	errorColor = color.New(color.FgRed, color.Bold)
	okColor    = color.New(color.FgGreen)
	dimColor   = color.New(color.FgHiBlack)
)

// kindColors gives each target kind a distinct badge color.
var kindColors = map[target.Kind]*color.Color{
	target.KindStdio:   color.New(color.FgMagenta),
	target.KindSSE:     color.New(color.FgCyan),
	target.KindOpenAPI: color.New(color.FgBlue),
	target.KindA2A:     color.New(color.FgGreen),
}

func errorBadge() string { return errorColor.Sprint("error") }

func kindBadge(k target.Kind) string {
	if c, ok := kindColors[k]; ok {
		return c.Sprint(string(k))
	}
	return string(k)
}
