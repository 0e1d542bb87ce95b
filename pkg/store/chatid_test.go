package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChatID_OrderIndependent(t *testing.T) {
	assert.Equal(t, ChatID("a", "b"), ChatID("b", "a"))
	assert.Equal(t, "a:b", ChatID("b", "a"))
	assert.NotEqual(t, ChatID("a", "b"), ChatID("a", "c"))
}
