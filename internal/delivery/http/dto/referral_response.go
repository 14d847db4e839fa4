package dto

import (
	"time"

	"referhub/internal/domain/referral"

	"github.com/google/uuid"
)

type ReferralResponse struct {
	ID          uuid.UUID       `json:"id"`
	JobID       uuid.UUID       `json:"job_id"`
	JobTitle    string          `json:"job_title"`
	CompanyName string          `json:"company_name"`
	Candidate   Participant     `json:"candidate"`
	Referrer    *Participant    `json:"referrer"`
	Pitch       string          `json:"pitch"`
	Status      referral.Status `json:"status"`
	ChatOpen    bool            `json:"chat_open"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type Participant struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"full_name"`
	Email    string    `json:"email"`
}

func NewReferralResponse(v referral.View) ReferralResponse {
	out := ReferralResponse{
		ID:          v.ID,
		JobID:       v.JobID,
		JobTitle:    v.JobTitle,
		CompanyName: v.CompanyName,
		Candidate: Participant{
			ID:       v.CandidateID,
			FullName: v.CandidateName,
			Email:    v.CandidateEmail,
		},
		Pitch:     v.Pitch,
		Status:    v.Status,
		ChatOpen:  v.Status.ChatOpen(),
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
	if v.ReferrerID != nil {
		p := Participant{ID: *v.ReferrerID}
		if v.ReferrerName != nil {
			p.FullName = *v.ReferrerName
		}
		if v.ReferrerEmail != nil {
			p.Email = *v.ReferrerEmail
		}
		out.Referrer = &p
	}
	return out
}

func NewReferralList(items []referral.View) []ReferralResponse {
	out := make([]ReferralResponse, 0, len(items))
	for _, v := range items {
		out = append(out, NewReferralResponse(v))
	}
	return out
}

type MessageResponse struct {
	ID         uuid.UUID `json:"id"`
	ReferralID uuid.UUID `json:"referral_id"`
	SenderID   uuid.UUID `json:"sender_id"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewMessageResponse(m referral.Message) MessageResponse {
	return MessageResponse{
		ID:         m.ID,
		ReferralID: m.ReferralID,
		SenderID:   m.SenderID,
		Body:       m.Body,
		CreatedAt:  m.CreatedAt,
	}
}

func NewMessageList(items []referral.Message) []MessageResponse {
	out := make([]MessageResponse, 0, len(items))
	for _, m := range items {
		out = append(out, NewMessageResponse(m))
	}
	return out
}
