package device

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetOrCreate_MintsWhenAbsent(t *testing.T) {
	id := NewIdentifier()

	token := id.GetOrCreate("")
	assert.True(t, strings.HasPrefix(token, "dev_"))
	assert.Greater(t, len(token), len("dev_")+9)
}

func TestGetOrCreate_ReturnsPresentedToken(t *testing.T) {
	id := NewIdentifier()

	token := id.GetOrCreate("")
	again := id.GetOrCreate(token)
	assert.Equal(t, token, again)
}

func TestGetOrCreate_ReplacesForeignValues(t *testing.T) {
	id := NewIdentifier()

	minted := id.GetOrCreate("not-a-device-token")
	assert.NotEqual(t, "not-a-device-token", minted)
	assert.True(t, IsToken(minted))
}

func TestMint_TokensDiffer(t *testing.T) {
	id := NewIdentifier()

	seen := make(map[string]bool)
	for range 100 {
		token := id.GetOrCreate("")
		assert.False(t, seen[token], "duplicate token %s", token)
		seen[token] = true
	}
}
