// Small subset of the terminal styling helpers originally from
// https://raw.githubusercontent.com/shabbyrobe/golib/master/termfmt/termfmt.go
// Provided under an MIT license.
package termfmt

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

type Escape interface {
	Wrap(out string) string
}

func Bold() Style            { return (Style{}).Bold() }
func Fg(c C16Name) Style     { return (Style{}).Fg(c) }
func With(e ...Escape) Style { return (Style{}).With(e...) }
func Plain() Style           { return Style{} }

// Style formats a value with escapes applied, e.g. fmt.Printf("%s", termfmt.Bold().V("hi")).
type Style struct {
	escapes []Escape
	v       any
}

var _ fmt.Formatter = Style{}

func (c Style) With(escs ...Escape) Style {
	c.escapes = append(append([]Escape(nil), c.escapes...), escs...)
	return c
}

func (c Style) Bold() Style        { return c.With(BoldEscape{}) }
func (c Style) Fg(n C16Name) Style { return c.With(C16Color{Name: n}) }

func (c Style) V(v any) Style {
	c.v = v
	return c
}

// Enabled returns c, or a style without escapes if enabled is false (e.g. output isn't a
// terminal).
func (c Style) Enabled(enabled bool) Style {
	if !enabled {
		c.escapes = nil
	}
	return c
}

func (c Style) Format(f fmt.State, verb rune) {
	v := fmt.Sprintf(buildValueFormat(f, verb), c.v)
	if len(c.escapes) > 0 {
		v = printable(v)
	}
	for i := len(c.escapes) - 1; i >= 0; i-- {
		v = c.escapes[i].Wrap(v)
	}
	f.Write([]byte(v))
}

func buildValueFormat(f fmt.State, verb rune) string {
	s := "%"
	for _, flag := range " +-0#" {
		if f.Flag(int(flag)) {
			s += string(flag)
		}
	}
	if width, ok := f.Width(); ok {
		s += strconv.Itoa(width)
	}
	if prec, ok := f.Precision(); ok {
		s += "." + strconv.Itoa(prec)
	}
	return s + string(verb)
}

type BoldEscape struct{}

func (b BoldEscape) Wrap(v string) string { return fmt.Sprintf("\x1b[1m%s\x1b[0m", v) }

type C16Name uint8

const (
	DefaultColor C16Name = iota

	Black
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	LightGrey
)

type C16Color struct {
	Name C16Name
}

func (c C16Color) Wrap(out string) string {
	cv := 39
	if c.Name != DefaultColor {
		// Our enum starts at one; foreground colours run from 30 to 37.
		cv = 30 + int(c.Name) - 1
	}
	return fmt.Sprintf("\x1b[%dm%s\x1b[0m", cv, out)
}

func printable(v string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsGraphic(r) {
			return r
		}
		return -1
	}, v)
}
