package termfmt

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStyle(t *testing.T) {
	assert.Equal(t, "\x1b[1mhi\x1b[0m", fmt.Sprintf("%s", Bold().V("hi")))
	assert.Equal(t, "\x1b[32mADD\x1b[0m", fmt.Sprintf("%s", Fg(Green).V("ADD")))
	assert.Equal(t, "\x1b[1m\x1b[31mx\x1b[0m\x1b[0m", fmt.Sprintf("%s", Bold().Fg(Red).V("x")))
}

func TestStyle_Padding(t *testing.T) {
	assert.Equal(t, "\x1b[33mab   \x1b[0m", fmt.Sprintf("%-5s", Fg(Yellow).V("ab")))
}

func TestStyle_Disabled(t *testing.T) {
	assert.Equal(t, "plain", fmt.Sprintf("%s", Fg(Blue).Enabled(false).V("plain")))
	assert.Equal(t, "42", fmt.Sprintf("%d", Plain().V(42)))
}

func TestStyle_StripsUnprintable(t *testing.T) {
	assert.Equal(t, "\x1b[1mab\x1b[0m", fmt.Sprintf("%s", Bold().V("a\x1bb")))
}
