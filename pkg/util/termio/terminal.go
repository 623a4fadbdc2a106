package termio

import (
	"os"

	"golang.org/x/term"
)

// DEFAULT_WIDTH is assumed for anything which is not a terminal.
const DEFAULT_WIDTH = uint(80)

// IsTerminal checks whether a given file is attached to a terminal.
func IsTerminal(file *os.File) bool {
	return term.IsTerminal(int(file.Fd()))
}

// Width returns the width (in columns) of the terminal attached to a given
// file, or DEFAULT_WIDTH if it is not attached to one.
func Width(file *os.File) uint {
	if !IsTerminal(file) {
		return DEFAULT_WIDTH
	}
	//
	w, _, err := term.GetSize(int(file.Fd()))
	//
	if err != nil || w <= 0 {
		return DEFAULT_WIDTH
	}
	//
	return uint(w)
}

// Truncate shortens a given line of text so that it fits within a given width,
// marking any truncation with an ellipsis.
func Truncate(text string, width uint) string {
	runes := []rune(text)
	//
	if uint(len(runes)) <= width || width < 4 {
		return text
	}
	//
	return string(runes[:width-3]) + "..."
}
