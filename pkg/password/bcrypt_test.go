package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHasher_HashYCompare(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	hash, err := h.Hash("pw123456")
	require.NoError(t, err)
	assert.NotEqual(t, "pw123456", hash)

	assert.True(t, h.Compare(hash, "pw123456"))
	assert.False(t, h.Compare(hash, "wrongpw"))
}

func TestHasher_HashVacioNoCoincide(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	assert.False(t, h.Compare("", "pw123456"))
	assert.False(t, h.Compare("no-es-bcrypt", "pw123456"))
}

func TestHasher_CostoInvalidoUsaDefault(t *testing.T) {
	h := NewHasher(99)
	assert.Equal(t, DefaultCost, h.cost)
}

func TestHasher_SalDistinta(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	a, err := h.Hash("igual")
	require.NoError(t, err)
	b, err := h.Hash("igual")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
