package tui

import (
	"github.com/muesli/termenv"
)

// NewRenderer returns a content renderer that styles node text using the
// detected terminal color profile. On dumb terminals it degrades to the
// plain text.
func NewRenderer() func(string) (string, error) {
	p := termenv.ColorProfile()
	return func(text string) (string, error) {
		return termenv.String(text).Foreground(p.Color("#5eead4")).String(), nil
	}
}
