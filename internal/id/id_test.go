package id_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/remaimber-it/quizcore/internal/id"
)

func TestGenerateID_Unique(t *testing.T) {
	seen := make(map[string]bool, 1000)
	for i := 0; i < 1000; i++ {
		v := id.GenerateID()
		assert.False(t, seen[v], "duplicate id %s", v)
		seen[v] = true
		assert.True(t, id.Valid(v))
	}
}

func TestValid(t *testing.T) {
	assert.False(t, id.Valid(""))
	assert.False(t, id.Valid("not-a-uuid"))
	assert.True(t, id.Valid("6ba7b810-9dad-11d1-80b4-00c04fd430c8"))
}
