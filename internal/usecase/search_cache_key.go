package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"referhub/internal/search"

	"github.com/google/uuid"
)

const (
	jobsSearchPrefix  = "jobs:search:"
	jobsSearchPattern = jobsSearchPrefix + "*"
	adminStatsKey     = "admin:stats"
)

type jobSearchCacheKeyInput struct {
	Query    string `json:"q"`
	Company  string `json:"company"`
	Location string `json:"location"`
	Skill    string `json:"skill"`
	Limit    int    `json:"limit"`
	Offset   int    `json:"offset"`
}

func normalizeSearchValue(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	s = strings.Join(strings.Fields(s), " ")
	return s
}

// JobsSearchCacheKey hashes the normalised filter so equivalent queries
// share one entry.
func JobsSearchCacheKey(params JobListParams) string {
	in := jobSearchCacheKeyInput{
		Query:    search.Normalize(params.Query),
		Company:  normalizeSearchValue(params.Company),
		Location: normalizeSearchValue(params.Location),
		Skill:    normalizeSearchValue(params.Skill),
		Limit:    params.Limit,
		Offset:   params.Offset,
	}

	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return jobsSearchPrefix + hex.EncodeToString(sum[:])
}

func PitchThrottleKey(candidateID, jobID uuid.UUID) string {
	return "pitch:lock:" + candidateID.String() + ":" + jobID.String()
}
