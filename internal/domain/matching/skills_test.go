package matching

import "testing"

func TestCalculate(t *testing.T) {
	res := Calculate(
		[]string{"Go", " postgresql ", "Node  JS"},
		[]string{"go", "PostgreSQL", "Kubernetes", "node js", "GO"},
	)
	if res.MatchScore != 75 {
		t.Fatalf("expected score 75, got %d", res.MatchScore)
	}
	if len(res.MatchedSkills) != 3 {
		t.Fatalf("expected 3 matched, got %v", res.MatchedSkills)
	}
	if len(res.MissingSkills) != 1 || res.MissingSkills[0] != "Kubernetes" {
		t.Fatalf("unexpected missing %v", res.MissingSkills)
	}
}

func TestCalculate_NoJobSkills(t *testing.T) {
	res := Calculate([]string{"Go"}, nil)
	if res.MatchScore != 0 || len(res.MatchedSkills) != 0 || len(res.MissingSkills) != 0 {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestNormalizeSkill(t *testing.T) {
	if got := NormalizeSkill("  Machine   Learning "); got != "machine learning" {
		t.Fatalf("unexpected %q", got)
	}
}
