package resettokengenerator

import (
	"crypto/rand"
	"encoding/base64"
	"userapi/internal/core/domain/user"
)

const TOKEN_BYTE_COUNT = 32

// Generator produces URL-safe reset tokens from a CSPRNG. 32 random bytes
// make the token space far too large to enumerate within any token lifetime.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) GenerateResetToken() user.PasswordResetToken {
	b := make([]byte, TOKEN_BYTE_COUNT)
	if _, err := rand.Read(b); err != nil {
		panic("could not read random bytes for reset token")
	}
	return user.PasswordResetToken(base64.RawURLEncoding.EncodeToString(b))
}
