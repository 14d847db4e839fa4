package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"referhub/internal/domain/referral"
	"referhub/internal/repository"

	"github.com/google/uuid"
)

const maxMessageLen = 2000

// Broadcaster fans a payload out to every socket joined to a topic.
type Broadcaster interface {
	Broadcast(topic string, payload []byte)
}

type ChatEvent struct {
	Type       string    `json:"type"`
	ID         uuid.UUID `json:"id"`
	ReferralID uuid.UUID `json:"referral_id"`
	SenderID   uuid.UUID `json:"sender_id"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
}

// StatusEvent tells both chat participants the referral moved.
type StatusEvent struct {
	Type       string          `json:"type"`
	ReferralID uuid.UUID       `json:"referral_id"`
	Status     referral.Status `json:"status"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

type ChatUsecase interface {
	Authorize(ctx context.Context, userID, referralID uuid.UUID) (referral.View, error)
	Messages(ctx context.Context, userID, referralID uuid.UUID, limit int, before *time.Time) ([]referral.Message, error)
	Post(ctx context.Context, userID, referralID uuid.UUID, body string) (referral.Message, error)
}

type Chat struct {
	referrals repository.ReferralRepository
	messages  repository.MessageRepository
	hub       Broadcaster
	logger    *log.Logger
}

func NewChatUsecase(referrals repository.ReferralRepository, messages repository.MessageRepository, hub Broadcaster, logger *log.Logger) *Chat {
	return &Chat{referrals: referrals, messages: messages, hub: hub, logger: logger}
}

func ChatTopic(referralID uuid.UUID) string {
	return "referral:" + referralID.String()
}

// Authorize returns the referral when userID is one of its two chat
// participants: the candidate or the claiming referrer.
func (u *Chat) Authorize(ctx context.Context, userID, referralID uuid.UUID) (referral.View, error) {
	v, err := u.referrals.GetView(ctx, referralID)
	if err != nil {
		if errors.Is(err, repository.ErrReferralNotFound) {
			return referral.View{}, ErrReferralNotFound
		}
		return referral.View{}, ErrInternal
	}
	if v.CandidateID == userID {
		return v, nil
	}
	if v.ReferrerID != nil && *v.ReferrerID == userID {
		return v, nil
	}
	return referral.View{}, ErrReferralNotFound
}

func (u *Chat) Messages(ctx context.Context, userID, referralID uuid.UUID, limit int, before *time.Time) ([]referral.Message, error) {
	if limit < 0 || limit > 100 {
		return nil, ErrInvalidInput
	}
	if _, err := u.Authorize(ctx, userID, referralID); err != nil {
		return nil, err
	}
	items, err := u.messages.List(ctx, referralID, limit, before)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Chat) Post(ctx context.Context, userID, referralID uuid.UUID, body string) (referral.Message, error) {
	body = strings.TrimSpace(body)
	if n := utf8.RuneCountInString(body); n == 0 || n > maxMessageLen {
		return referral.Message{}, ErrInvalidInput
	}

	v, err := u.Authorize(ctx, userID, referralID)
	if err != nil {
		return referral.Message{}, err
	}
	if !v.Status.ChatOpen() {
		return referral.Message{}, ErrChatClosed
	}

	m, err := u.messages.Create(ctx, referral.Message{
		ID:         uuid.New(),
		ReferralID: referralID,
		SenderID:   userID,
		Body:       body,
	})
	if err != nil {
		if u.logger != nil {
			u.logger.Printf("[Chat] store failed | referral_id=%s err=%v", referralID, err)
		}
		return referral.Message{}, ErrInternal
	}

	if u.hub != nil {
		payload, err := json.Marshal(ChatEvent{
			Type:       "message",
			ID:         m.ID,
			ReferralID: m.ReferralID,
			SenderID:   m.SenderID,
			Body:       m.Body,
			CreatedAt:  m.CreatedAt,
		})
		if err == nil {
			u.hub.Broadcast(ChatTopic(referralID), payload)
		}
	}
	return m, nil
}
