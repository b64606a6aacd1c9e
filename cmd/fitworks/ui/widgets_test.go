package ui

import (
	"strings"
	"testing"
)

func TestScoreBarShowsScoreAndLabel(t *testing.T) {
	out := ScoreBar(72, 30, "ATS score")
	if !strings.Contains(out, "72") {
		t.Errorf("expected score in output, got %q", out)
	}
	if !strings.Contains(out, "ATS score") {
		t.Errorf("expected label in output, got %q", out)
	}
}

func TestScoreBarClampsOverflow(t *testing.T) {
	// A score over 100 must not overflow the gauge width.
	out := ScoreBar(150, 20, "x")
	if strings.Count(out, "█") > 20 {
		t.Errorf("gauge exceeded its width: %q", out)
	}
}

func TestSubScoreBarClamps(t *testing.T) {
	out := SubScoreBar("Content Quality", 15)
	if !strings.Contains(out, "10/10") {
		t.Errorf("expected clamp to 10, got %q", out)
	}
	out = SubScoreBar("Content Quality", -2)
	if !strings.Contains(out, "0/10") {
		t.Errorf("expected clamp to 0, got %q", out)
	}
}

func TestSelectListMarksCursor(t *testing.T) {
	out := SelectList([]string{"alpha", "beta", "gamma"}, 1)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[1], "›") {
		t.Errorf("cursor marker missing on selected line: %q", lines[1])
	}
	if strings.Contains(lines[0], "›") {
		t.Errorf("cursor marker on unselected line: %q", lines[0])
	}
}

func TestChipsEmpty(t *testing.T) {
	out := Chips(nil, ChipStyle, 40)
	if !strings.Contains(out, "none") {
		t.Errorf("expected placeholder for empty chips, got %q", out)
	}
}

func TestChipsWrap(t *testing.T) {
	items := []string{"kubernetes", "postgresql", "terraform", "grpc", "golang"}
	out := Chips(items, ChipStyle, 24)
	if !strings.Contains(out, "\n") {
		t.Errorf("expected chips to wrap at narrow width: %q", out)
	}
	for _, item := range items {
		if !strings.Contains(out, item) {
			t.Errorf("chip %q missing from output", item)
		}
	}
}

func TestKeyHints(t *testing.T) {
	out := KeyHints("enter", "select", "esc", "back")
	for _, want := range []string{"enter", "select", "esc", "back"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in hints, got %q", want, out)
		}
	}
}

func TestStaticPagesNonEmpty(t *testing.T) {
	if Landing() == "" {
		t.Error("landing page is empty")
	}
	if !strings.Contains(Dashboard("Jane"), "Jane") {
		t.Error("dashboard does not greet the user")
	}
	if !strings.Contains(TemplatesPage(), "Classic Executive") {
		t.Error("templates page missing catalog entries")
	}
	if !strings.Contains(Support(), "coffee") {
		t.Error("support page missing donation copy")
	}
}

func TestScoreColorBands(t *testing.T) {
	if ScoreColor(85) != Success {
		t.Error("high scores should render green")
	}
	if ScoreColor(65) != Warning {
		t.Error("mid scores should render yellow")
	}
	if ScoreColor(30) != Danger {
		t.Error("low scores should render red")
	}
}
