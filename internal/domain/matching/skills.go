package matching

import (
	"math"
	"strings"
)

type Result struct {
	MatchScore    int
	MatchedSkills []string
	MissingSkills []string
}

// NormalizeSkill folds case and inner whitespace so "Node JS" and "node  js"
// compare equal.
func NormalizeSkill(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// Calculate scores a candidate's skills against a job's skill list. A job
// without skills matches nobody and scores 0.
func Calculate(candidateSkills []string, jobSkills []string) Result {
	have := make(map[string]struct{}, len(candidateSkills))
	for _, s := range candidateSkills {
		n := NormalizeSkill(s)
		if n == "" {
			continue
		}
		have[n] = struct{}{}
	}

	seen := make(map[string]struct{}, len(jobSkills))
	matched := make([]string, 0, len(jobSkills))
	missing := make([]string, 0)
	for _, s := range jobSkills {
		n := NormalizeSkill(s)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		if _, ok := have[n]; ok {
			matched = append(matched, strings.TrimSpace(s))
		} else {
			missing = append(missing, strings.TrimSpace(s))
		}
	}

	total := len(matched) + len(missing)
	if total == 0 {
		return Result{MatchedSkills: matched, MissingSkills: missing}
	}

	score := int(math.Round(float64(len(matched)) * 100 / float64(total)))
	return Result{MatchScore: score, MatchedSkills: matched, MissingSkills: missing}
}
