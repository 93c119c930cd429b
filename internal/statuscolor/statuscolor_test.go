package statuscolor

import (
	"testing"

	"github.com/fatih/color"

	"github.com/selimozcann/SiteHunter/internal/model"
)

func TestSeverityPlainWhenDisabled(t *testing.T) {
	prev := color.NoColor
	t.Cleanup(func() { color.NoColor = prev })

	SetEnabled(false)
	if got := Severity(model.SeverityHigh); got != "High" {
		t.Fatalf("expected plain High, got %q", got)
	}
	if got := Stability("Needs Improvement"); got != "Needs Improvement" {
		t.Fatalf("unexpected verdict %q", got)
	}
}

func TestSeverityColoured(t *testing.T) {
	prev := color.NoColor
	t.Cleanup(func() { color.NoColor = prev })

	SetEnabled(true)
	got := Severity(model.SeverityHigh)
	if got == "High" {
		t.Fatalf("expected ANSI codes around High")
	}
	if WrapBySeverity("x", model.SeverityLow) == WrapBySeverity("x", model.SeverityHigh) {
		t.Fatalf("expected distinct colours for Low and High")
	}
}
