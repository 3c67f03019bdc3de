package entity

import (
	"time"

	"wishly/internal/domain/value"
)

// MaxClaimMessageLength максимальная длина записки хосту.
const MaxClaimMessageLength = 500

type Claim struct {
	ID        value.ClaimID `json:"id"`
	GiftID    value.GiftID  `json:"giftId"`
	UserID    value.UserID  `json:"userId"`
	Message   string        `json:"message,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
}

func NewClaim(giftID value.GiftID, userID value.UserID, message string, now time.Time) Claim {
	return Claim{
		ID:        value.NewClaimID(),
		GiftID:    giftID,
		UserID:    userID,
		Message:   message,
		CreatedAt: now,
	}
}
