// Package tui holds terminal presentation helpers for the CLI: the
// startup banner and the content renderer the interactive runner uses.
package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner shown when an interactive
// session starts.
func PrintBanner() {
	p := termenv.ColorProfile()
	// Teal-to-blue gradient, one color per line.
	s1 := termenv.String("                 _     ").Foreground(p.Color("#5eead4"))
	s2 := termenv.String("  ___  ___ __ _| |___ ").Foreground(p.Color("#2dd4bf"))
	s3 := termenv.String(" / __|/ __/ _` | / __|").Foreground(p.Color("#22d3ee"))
	s4 := termenv.String(" \\__ \\ (_| (_| | \\__ \\").Foreground(p.Color("#38bdf8"))
	s5 := termenv.String(" |___/\\___\\__,_|_|___/").Foreground(p.Color("#60a5fa"))

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	fmt.Println()
}
