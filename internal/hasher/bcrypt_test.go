package hasher

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcrypt_RoundTrip(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost)

	hash, err := h.Hash("secret")
	require.NoError(t, err)
	assert.NotEqual(t, "secret", hash)

	assert.True(t, h.Verify("secret", hash))
	assert.False(t, h.Verify("Secret", hash))
	assert.False(t, h.Verify("", hash))
}

func TestBcrypt_Salted(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost)

	first, err := h.Hash("secret")
	require.NoError(t, err)
	second, err := h.Hash("secret")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, h.Verify("secret", first))
	assert.True(t, h.Verify("secret", second))
}

func TestBcrypt_UsesCost(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost + 1)

	hash, err := h.Hash("secret")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost+1, cost)
}

func TestBcrypt_DefaultCost(t *testing.T) {
	h := NewBcrypt(0).(*Bcrypt)
	assert.Equal(t, DefaultCost, h.cost)
}

func TestBcrypt_MalformedHash(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost)

	assert.False(t, h.Verify("secret", ""))
	assert.False(t, h.Verify("secret", "not-a-hash"))
	assert.False(t, h.Verify("secret", "$2a$04$"+strings.Repeat("x", 10)))
}

func TestBcrypt_PasswordTooLong(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost)

	_, err := h.Hash(strings.Repeat("a", 73))
	require.Error(t, err)
}
