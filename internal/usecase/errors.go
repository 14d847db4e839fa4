package usecase

import "errors"

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrForbidden      = errors.New("forbidden")
	ErrUserNotFound   = errors.New("user not found")
	ErrJobNotFound    = errors.New("job not found")
	ErrJobClosed      = errors.New("job is closed")
	ErrUnavailable    = errors.New("service unavailable")
	ErrThrottled      = errors.New("too many requests")

	ErrReferralNotFound    = errors.New("referral not found")
	ErrReferralExists      = errors.New("referral already requested")
	ErrInvalidTransition   = errors.New("invalid referral status transition")
	ErrReferrerNotVerified = errors.New("referrer not verified")
	ErrChatClosed          = errors.New("chat is not open for this referral")
	ErrReferralChanged     = errors.New("referral was updated by someone else")

	ErrProtectedAccount = errors.New("admin accounts cannot be banned")
)
