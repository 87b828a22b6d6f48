package main

import (
	"bytes"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/Garsondee/Sentinel-Sense/internal/game"
	"github.com/sirupsen/logrus"
	"gopkg.in/src-d/go-billy.v4/memfs"
)

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

func TestSurveySeed_WritesArtifacts(t *testing.T) {
	fs := memfs.New()
	reporter := game.NewSurveyReporter()
	rc := runConfig{size: 16, gravity: 2, age: 2, trees: 20, sentries: 1}

	var out bytes.Buffer
	if err := surveySeed(&out, fs, reporter, 1, 7, rc, quietLogger()); err != nil {
		t.Fatalf("surveySeed: %v", err)
	}

	summary := reporter.Summary()
	if summary.Runs != 1 {
		t.Fatalf("expected 1 run, got %d", summary.Runs)
	}
	if summary.Failed == 1 {
		if !strings.Contains(out.String(), "FAILED") {
			t.Fatalf("failed seed not reported: %s", out.String())
		}
		t.Skip("seed 7 cannot produce a 16x16 board")
	}

	rf, err := fs.Open("seed-7.txt")
	if err != nil {
		t.Fatalf("open report: %v", err)
	}
	text, err := io.ReadAll(rf)
	_ = rf.Close()
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !strings.Contains(string(text), "seed=7") {
		t.Fatalf("report lacks seed line:\n%s", text)
	}

	f, err := fs.Open("seed-7.png")
	if err != nil {
		t.Fatalf("open heightmap: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode heightmap: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 16*heightmapScale || b.Dy() != 16*heightmapScale {
		t.Fatalf("expected %dx%d heightmap, got %v", 16*heightmapScale, 16*heightmapScale, b)
	}
}

func TestSurveySeed_NoFilesystemPrintsOnly(t *testing.T) {
	reporter := game.NewSurveyReporter()
	rc := runConfig{size: 12, gravity: 1, age: 2, trees: 10, sentries: 0}

	var out bytes.Buffer
	if err := surveySeed(&out, nil, reporter, 3, 11, rc, quietLogger()); err != nil {
		t.Fatalf("surveySeed: %v", err)
	}
	if !strings.Contains(out.String(), "--- run 3 seed=11") {
		t.Fatalf("missing run header:\n%s", out.String())
	}
}

func TestSurveySeed_InvalidConfigIsFatal(t *testing.T) {
	reporter := game.NewSurveyReporter()
	rc := runConfig{size: 2, gravity: 2, age: 2}

	var out bytes.Buffer
	if err := surveySeed(&out, nil, reporter, 1, 1, rc, quietLogger()); err == nil {
		t.Fatal("expected an error for a 2x2 board")
	}
	if n := reporter.Summary().Runs; n != 0 {
		t.Fatalf("invalid config should not count as a run, got %d", n)
	}
}

func TestSurveyVerdict(t *testing.T) {
	cases := []struct {
		name string
		in   game.SurveySummary
		want string
	}{
		{"empty", game.SurveySummary{}, ""},
		{"invalid", game.SurveySummary{Runs: 3, Invalid: 1, MinCoverage: 0.2}, "invalid_boards"},
		{"mostly failed", game.SurveySummary{Runs: 4, Failed: 3, MinCoverage: 0.2}, "mostly_failed"},
		{"blind", game.SurveySummary{Runs: 2, MinCoverage: 0}, "blind_antagonists"},
		{"ok", game.SurveySummary{Runs: 2, MinCoverage: 0.1}, "ok"},
	}
	for _, tc := range cases {
		if got := surveyVerdict(tc.in); got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}

func TestPrintAggregate_IncludesVerdict(t *testing.T) {
	var out bytes.Buffer
	printAggregate(&out, game.SurveySummary{Runs: 2, MinCoverage: 0.3, MaxCoverage: 0.5, AvgCoverage: 0.4})
	s := out.String()
	if !strings.Contains(s, "=== Aggregate ===") || !strings.Contains(s, "verdict=ok") {
		t.Fatalf("unexpected aggregate output:\n%s", s)
	}
}
