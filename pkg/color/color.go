// Package color assigns stable terminal colors to identifiers so the same
// user is always printed the same way.
package color

import (
	"hash/fnv"

	"github.com/fatih/color"
)

var palette = []*color.Color{
	color.New(color.FgHiRed),
	color.New(color.FgHiGreen),
	color.New(color.FgHiYellow),
	color.New(color.FgHiBlue),
	color.New(color.FgHiMagenta),
	color.New(color.FgHiCyan),
	color.New(color.FgRed),
	color.New(color.FgGreen),
	color.New(color.FgYellow),
	color.New(color.FgBlue),
	color.New(color.FgMagenta),
	color.New(color.FgCyan),
}

// ForKey returns the palette color for key. The same key always maps to the
// same color.
func ForKey(key string) *color.Color {
	h := fnv.New32a()
	h.Write([]byte(key))
	return palette[h.Sum32()%uint32(len(palette))]
}

// Name renders name in the color assigned to id.
func Name(id, name string) string {
	return ForKey(id).Sprint(name)
}
