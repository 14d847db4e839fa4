package referral

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
	StatusReferred  Status = "referred"
	StatusWithdrawn Status = "withdrawn"
)

var ErrInvalidTransition = errors.New("invalid status transition")

// Actor is the side of a referral performing a transition.
type Actor int

const (
	ActorCandidate Actor = iota + 1
	ActorReferrer
)

var transitions = map[Status]map[Status]Actor{
	StatusPending: {
		StatusAccepted:  ActorReferrer,
		StatusRejected:  ActorReferrer,
		StatusWithdrawn: ActorCandidate,
	},
	StatusAccepted: {
		StatusReferred:  ActorReferrer,
		StatusRejected:  ActorReferrer,
		StatusWithdrawn: ActorCandidate,
	},
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected, StatusReferred, StatusWithdrawn:
		return true
	}
	return false
}

func (s Status) Terminal() bool {
	_, ok := transitions[s]
	return s.Valid() && !ok
}

// ChatOpen reports whether the candidate and the referrer may message.
func (s Status) ChatOpen() bool {
	return s == StatusAccepted || s == StatusReferred
}

func CanTransition(from, to Status, by Actor) error {
	next, ok := transitions[from]
	if !ok {
		return ErrInvalidTransition
	}
	actor, ok := next[to]
	if !ok || actor != by {
		return ErrInvalidTransition
	}
	return nil
}

type Request struct {
	ID          uuid.UUID
	JobID       uuid.UUID
	CandidateID uuid.UUID
	ReferrerID  *uuid.UUID
	Pitch       string
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// View is a referral joined with the job and the people around it.
type View struct {
	Request
	JobTitle       string
	CompanyName    string
	PosterID       uuid.UUID
	CandidateName  string
	CandidateEmail string
	ReferrerName   *string
	ReferrerEmail  *string
}

type Message struct {
	ID         uuid.UUID
	ReferralID uuid.UUID
	SenderID   uuid.UUID
	Body       string
	CreatedAt  time.Time
}
