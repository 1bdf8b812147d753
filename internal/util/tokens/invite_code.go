package tokens_utils

import (
	"crypto/rand"
	"math/big"
)

const (
	base36Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	fragmentLength = 13
)

// GenerateInviteCode builds a workspace invite code from two random
// base-36 fragments. The fragments come from crypto/rand so the code is
// not guessable; global uniqueness is still enforced at the store level.
func GenerateInviteCode() string {
	return randomBase36Fragment() + randomBase36Fragment()
}

func randomBase36Fragment() string {
	alphabetSize := big.NewInt(int64(len(base36Alphabet)))

	fragment := make([]byte, fragmentLength)
	for i := range fragment {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			// crypto/rand only fails when the platform's entropy
			// source is broken
			panic("failed to read random bytes: " + err.Error())
		}

		fragment[i] = base36Alphabet[n.Int64()]
	}

	return string(fragment)
}
