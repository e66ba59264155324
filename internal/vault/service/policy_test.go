package service

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/vault/internal/vault/kv"
	"github.com/stretchr/testify/require"
)

func TestValidatePassword(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		password string
		reason   string
	}{
		{"too short", "short1!", "Password must be at least 12 characters long"},
		{"no uppercase", "nouppercase123!", "Password must contain at least one uppercase letter"},
		{"no lowercase", "NOLOWERCASE123!", "Password must contain at least one lowercase letter"},
		{"no digit", "NoDigitsHere!!x", "Password must contain at least one number"},
		{"no special", "NoSpecial1234a", "Password must contain at least one special character"},
		{"repeated run", "Valid123!Paaass", "Password cannot contain repeated characters"},
		{"length checked first", "aaa", "Password must be at least 12 characters long"},
		{"valid", "Valid123!Pass", ""},
		{"pair is allowed", "Vaalid123!Pass", ""},
		{"astral characters count twice", "Va1!😀😁😂🤣", ""},
		{"bmp characters count once", "Va1!éèêëàâç", "Password must be at least 12 characters long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidatePassword(tt.password)
			require.Equal(t, tt.reason == "", res.OK)
			require.Equal(t, tt.reason, res.Reason)
		})
	}
}

func TestChallengeGenerator(t *testing.T) {
	t.Parallel()

	seen := map[string]string{}
	for i := range challengeTable {
		prompt, answer := ChallengeGenerator{Random: fixedRandom(i)}.Generate()
		seen[prompt] = answer
	}
	require.Len(t, seen, len(challengeTable))
	require.Equal(t, "91", seen["What is 7 × 13?"])
	require.Equal(t, "55", seen["What is 92 - 37?"])

	// Default source stays within the table.
	prompt, _ := ChallengeGenerator{}.Generate()
	require.Contains(t, seen, prompt)
}

func TestChallengeService(t *testing.T) {
	ctx := context.Background()
	svc := &ChallengeService{Generator: ChallengeGenerator{Random: fixedRandom(2)}, KV: kv.NewMemory()}

	t.Run("correct answer passes once", func(t *testing.T) {
		c, err := svc.Issue(ctx)
		require.NoError(t, err)
		require.Equal(t, "What is 23 + 47?", c.Prompt)

		ok, err := svc.Verify(ctx, c.ID, " 70 ")
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = svc.Verify(ctx, c.ID, "70")
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("wrong answer consumes the challenge", func(t *testing.T) {
		c, err := svc.Issue(ctx)
		require.NoError(t, err)

		ok, err := svc.Verify(ctx, c.ID, "71")
		require.NoError(t, err)
		require.False(t, ok)

		ok, err = svc.Verify(ctx, c.ID, "70")
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("unknown id", func(t *testing.T) {
		ok, err := svc.Verify(ctx, "", "70")
		require.NoError(t, err)
		require.False(t, ok)
		ok, err = svc.Verify(ctx, "01HZZZZZZZZZZZZZZZZZZZZZZZ", "70")
		require.NoError(t, err)
		require.False(t, ok)
	})
}
