// Package statuscolor colours severities and verdicts for the console.
package statuscolor

import (
	"github.com/fatih/color"

	"github.com/selimozcann/SiteHunter/internal/model"
)

var (
	high   = color.New(color.FgRed, color.Bold)
	medium = color.New(color.FgYellow)
	low    = color.New(color.FgCyan)
	info   = color.New(color.FgGreen)
	gray   = color.New(color.FgHiBlack)
)

// SetEnabled turns colouring on or off for every helper in this package.
func SetEnabled(on bool) { color.NoColor = !on }

func colorFor(sev model.Severity) *color.Color {
	switch sev {
	case model.SeverityHigh:
		return high
	case model.SeverityMedium:
		return medium
	case model.SeverityLow:
		return low
	case model.SeverityInfo:
		return info
	default:
		return gray
	}
}

// Severity returns sev colourised.
func Severity(sev model.Severity) string {
	return colorFor(sev).Sprint(string(sev))
}

// WrapBySeverity wraps text with the colour of sev.
func WrapBySeverity(text string, sev model.Severity) string {
	return colorFor(sev).Sprint(text)
}

// Stability colours a build verdict: red unless it reads "Stable".
func Stability(verdict string) string {
	if verdict == "Stable" {
		return info.Sprint(verdict)
	}
	return high.Sprint(verdict)
}

// Gray wraps text in a muted colour.
func Gray(text string) string {
	return gray.Sprint(text)
}
