// Package banner prints the start-up banner.
package banner

import (
	"fmt"
	"io"

	"github.com/common-nighthawk/go-figure"
	"github.com/fatih/color"
)

// Print writes the banner to w.
func Print(w io.Writer, version string) {
	fig := figure.NewFigure("SITEHUNTER", "doom", true)
	_, _ = color.New(color.FgRed).Fprint(w, fig.String())

	cyan := color.New(color.FgCyan)
	green := color.New(color.FgGreen)

	_, _ = cyan.Fprintln(w, "════════════════════════════════════════════════")
	_, _ = green.Fprintln(w, fmt.Sprintf("    Website QA Probe %s | https://github.com/selimozcann", version))
	_, _ = cyan.Fprintln(w, "════════════════════════════════════════════════")
}
