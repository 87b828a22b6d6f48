package game

import (
	"strings"
	"testing"
)

func TestGenLog_Queries(t *testing.T) {
	gl := NewGenLog()
	gl.Count(1, "expand", "neglect_claimed", 40)
	gl.Count(1, "expand", "thorough_claimed", 12)
	gl.Count(2, "expand", "neglect_claimed", 35)
	gl.Add(2, "distribute", "failed", "no square for the tower", 0)

	if n := gl.CountPhase("expand", "neglect_claimed"); n != 2 {
		t.Fatalf("expected 2 neglect entries, got %d", n)
	}
	if n := gl.CountPhase("expand", ""); n != 3 {
		t.Fatalf("expected 3 expand entries, got %d", n)
	}
	last, ok := gl.LastOf("expand", "neglect_claimed")
	if !ok || last.Seed != 2 || last.NumVal != 35 || last.Value != "35" {
		t.Fatalf("unexpected last entry %+v", last)
	}
	if _, ok := gl.LastOf("slope", "connections"); ok {
		t.Fatal("no slope entries were recorded")
	}
	if !gl.HasEntry("distribute", "", "tower") || gl.HasEntry("distribute", "failed", "robot") {
		t.Fatal("HasEntry mismatch")
	}
	if got := len(gl.FilterSeed(2)); got != 2 {
		t.Fatalf("expected 2 entries for seed 2, got %d", got)
	}
	if lines := strings.Count(gl.Format(), "\n"); lines != 4 {
		t.Fatalf("expected 4 formatted lines, got %d", lines)
	}
	if s := gl.Entries()[0].String(); !strings.HasPrefix(s, "[seed=1] expand") || !strings.HasSuffix(s, " 40") {
		t.Fatalf("unexpected entry line %q", s)
	}
}

func TestGenLog_NilIsSilent(t *testing.T) {
	var gl *GenLog
	gl.Add(1, "nuclei", "count", "3", 3)
	gl.Count(1, "nuclei", "count", 3)
}
