package termio

import "fmt"

// Colours understood by terminals.
const (
	// TERM_RED represents red
	TERM_RED = uint(1)
	// TERM_YELLOW represents yellow
	TERM_YELLOW = uint(3)
)

// AnsiEscape represents an ANSI escape code used for formatting text in a terminal.
type AnsiEscape struct {
	escape string
	count  uint
}

// NewAnsiEscape construct an empty escape
func NewAnsiEscape() AnsiEscape {
	return AnsiEscape{"\033", 0}
}

// ResetAnsiEscape constructs a reset term.
func ResetAnsiEscape() AnsiEscape {
	return AnsiEscape{"\033[0", 1}
}

// BoldAnsiEscape constructs a bold term.
func BoldAnsiEscape() AnsiEscape {
	return AnsiEscape{"\033[1", 1}
}

// FgColour sets the foreground colour
func (p AnsiEscape) FgColour(col uint) AnsiEscape {
	col += 30
	// Construct string
	var escape string
	if p.count > 0 {
		escape = fmt.Sprintf("%s;%d", p.escape, col)
	} else {
		escape = fmt.Sprintf("%s[%d", p.escape, col)
	}
	// Done
	return AnsiEscape{escape, p.count + 1}
}

// Build constructs the final escape
func (p AnsiEscape) Build() string {
	return fmt.Sprintf("%sm", p.escape)
}

// Colourise wraps some text in a given escape, followed by a reset.  When
// disabled, the text is returned unchanged.
func Colourise(text string, escape AnsiEscape, enabled bool) string {
	if !enabled {
		return text
	}
	//
	return escape.Build() + text + ResetAnsiEscape().Build()
}
