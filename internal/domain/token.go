package domain

import "time"

// Token is a single-use QR credential. The payload is the redeemable
// secret: uniformly random, 256 bits, hex encoded. Tokens carry no
// signature; unguessability is the sole defense against forgery.
type Token struct {
	UserID    string    `json:"user_id"`
	Payload   string    `json:"payload"`
	MealType  MealType  `json:"meal_type"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the token's own lifetime has passed.
func (t *Token) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
