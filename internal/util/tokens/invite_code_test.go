package tokens_utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_GenerateInviteCode_HasExpectedShape(t *testing.T) {
	code := GenerateInviteCode()

	assert.Len(t, code, 2*fragmentLength)

	for _, r := range code {
		assert.True(
			t,
			strings.ContainsRune(base36Alphabet, r),
			"unexpected character %q in invite code", r,
		)
	}
}

func Test_GenerateInviteCode_DoesNotRepeat(t *testing.T) {
	seen := make(map[string]bool)

	for range 1000 {
		code := GenerateInviteCode()

		assert.False(t, seen[code], "invite code %s generated twice", code)
		seen[code] = true
	}
}
