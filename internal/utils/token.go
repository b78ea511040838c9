package utils

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/yukikurage/freelance-tracker-api/internal/constants"
)

// TokenMinter issues opaque session tokens.
type TokenMinter interface {
	MintToken() string
}

// SessionTokens mints tokens of the form simulated_jwt_token_<unix-ms>_<uuid>.
// Tokens carry no claims and never expire.
type SessionTokens struct {
	now    func() time.Time
	random func() string
}

// NewSessionTokens creates a minter. Nil arguments use time.Now and random UUIDs.
func NewSessionTokens(now func() time.Time, random func() string) *SessionTokens {
	if now == nil {
		now = time.Now
	}
	if random == nil {
		random = uuid.NewString
	}
	return &SessionTokens{now: now, random: random}
}

func (m *SessionTokens) MintToken() string {
	return fmt.Sprintf("%s%d_%s", constants.TokenPrefix, m.now().UnixMilli(), m.random())
}
