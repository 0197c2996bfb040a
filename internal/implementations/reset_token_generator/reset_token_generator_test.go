package resettokengenerator

import (
	"testing"
	"userapi/internal/core/domain/user"

	"github.com/stretchr/testify/require"
)

func TestTokensAreUnique(t *testing.T) {
	g := NewGenerator()

	seen := make(map[user.PasswordResetToken]struct{})
	for i := 0; i < 1000; i++ {
		token := g.GenerateResetToken()
		_, ok := seen[token]
		require.False(t, ok)
		seen[token] = struct{}{}
	}
}

func TestTokenIsURLSafe(t *testing.T) {
	g := NewGenerator()

	token := string(g.GenerateResetToken())
	require.Len(t, token, 43)
	for _, r := range token {
		isAlphaNumeric := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		require.True(t, isAlphaNumeric || r == '-' || r == '_')
	}
}
