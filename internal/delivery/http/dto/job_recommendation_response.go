package dto

import (
	"referhub/internal/usecase"
)

type JobRecommendationResponse struct {
	Job           JobResponse `json:"job"`
	MatchScore    int         `json:"match_score"`
	MatchedSkills []string    `json:"matched_skills"`
	MissingSkills []string    `json:"missing_skills"`
}

func NewRecommendationList(items []usecase.Recommendation) []JobRecommendationResponse {
	out := make([]JobRecommendationResponse, 0, len(items))
	for _, r := range items {
		matched := r.Match.MatchedSkills
		if matched == nil {
			matched = []string{}
		}
		missing := r.Match.MissingSkills
		if missing == nil {
			missing = []string{}
		}
		out = append(out, JobRecommendationResponse{
			Job:           NewJobResponse(r.Job),
			MatchScore:    r.Match.MatchScore,
			MatchedSkills: matched,
			MissingSkills: missing,
		})
	}
	return out
}
