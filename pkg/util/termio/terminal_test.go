package termio

import (
	"testing"

	"github.com/consensys/go-lambda/pkg/util/assert"
)

func Test_Truncate_01(t *testing.T) {
	assert.Equal(t, "λa. a", Truncate("λa. a", 5))
	assert.Equal(t, "λa....", Truncate("λa. λb. a", 6))
	assert.Equal(t, "abcdef", Truncate("abcdef", 3))
}

func Test_Colourise_01(t *testing.T) {
	red := NewAnsiEscape().FgColour(TERM_RED)
	//
	assert.Equal(t, "oops", Colourise("oops", red, false))
	assert.Equal(t, "\033[31moops\033[0m", Colourise("oops", red, true))
}
