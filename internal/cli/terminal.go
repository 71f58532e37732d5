package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Score bands for colouring
const (
	goodScore = 70.0
	fairScore = 40.0
)

// Terminal provides terminal-aware output utilities
type Terminal struct {
	IsTerminal bool
	UseColor   bool
}

// NewTerminal creates a new Terminal instance
func NewTerminal() *Terminal {
	isTerminal := term.IsTerminal(int(os.Stdout.Fd()))
	return &Terminal{
		IsTerminal: isTerminal,
		UseColor:   isTerminal && os.Getenv("NO_COLOR") == "", // Only use color in terminal
	}
}

// Status prints a transient progress message on stderr (terminal only)
func (t *Terminal) Status(msg string) {
	if t.IsTerminal {
		fmt.Fprintf(os.Stderr, "\r\033[K%s", msg)
	}
}

// ClearStatus removes the progress message (terminal only)
func (t *Terminal) ClearStatus() {
	if t.IsTerminal {
		fmt.Fprint(os.Stderr, "\r\033[K")
	}
}

// Color renders text with the given attributes (terminal only)
func (t *Terminal) Color(text string, attrs ...color.Attribute) string {
	c := color.New(attrs...)
	if !t.UseColor {
		c.DisableColor()
	} else {
		c.EnableColor()
	}
	return c.Sprint(text)
}

// Score renders a match score coloured by band
func (t *Terminal) Score(score float64) string {
	return t.Color(fmt.Sprintf("%.2f%%", score), ScoreColor(score), color.Bold)
}

// Heading renders a section heading
func (t *Terminal) Heading(text string) string {
	return t.Color(text, color.FgCyan, color.Bold)
}

// ScoreColor returns the colour for a score band
func ScoreColor(score float64) color.Attribute {
	switch {
	case score >= goodScore:
		return color.FgGreen
	case score >= fairScore:
		return color.FgYellow
	default:
		return color.FgRed
	}
}

// ScoreLabel describes a score band
func ScoreLabel(score float64) string {
	switch {
	case score >= goodScore:
		return "strong match"
	case score >= fairScore:
		return "partial match"
	default:
		return "weak match"
	}
}
