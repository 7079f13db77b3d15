package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashIsKeccak(t *testing.T) {
	// keccak256("")
	assert.Equal(t, "0xc5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470", Hash().Hex())
	assert.Equal(t, Hash([]byte("ab")), Hash([]byte("a"), []byte("b")))
}

func TestHashesSeparatesInputs(t *testing.T) {
	a := Hash([]byte("a"))
	b := Hash([]byte("b"))
	assert.NotEqual(t, Hashes(a, b), Hashes(b, a))
	assert.Equal(t, Hashes(a), Hash(a[:]))
}
