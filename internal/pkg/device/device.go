package device

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
)

const tokenPrefix = "dev_"

// Identifier mints opaque device tokens. The token identifies a client
// storage profile, not hardware: a client that clears its storage gets a new
// token on the next visit. Callers treat tokens as opaque strings.
//
// Kept behind an interface so a hardware-backed identifier could replace the
// random scheme without touching the binding logic.
type Identifier interface {
	// GetOrCreate returns the presented token unchanged when it already looks
	// like one of ours, otherwise mints a fresh token.
	GetOrCreate(presented string) string
}

type tokenIdentifier struct {
	now func() time.Time
}

func NewIdentifier() Identifier {
	return &tokenIdentifier{now: time.Now}
}

func (t *tokenIdentifier) GetOrCreate(presented string) string {
	if IsToken(presented) {
		return presented
	}
	return t.mint()
}

// mint builds a token from a random component plus the current time in base
// 36. Collisions are possible but unlikely; uniqueness is a deterrent, not a
// guarantee.
func (t *tokenIdentifier) mint() string {
	random := strconv.FormatUint(rand.Uint64()%(36*36*36*36*36*36*36*36*36), 36)
	for len(random) < 9 {
		random = "0" + random
	}
	return tokenPrefix + random + strconv.FormatInt(t.now().UnixMilli(), 36)
}

// IsToken reports whether s has the shape of a minted device token.
func IsToken(s string) bool {
	return strings.HasPrefix(s, tokenPrefix) && len(s) > len(tokenPrefix)
}
