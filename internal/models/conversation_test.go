package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalPairOrdersIDs(t *testing.T) {
	a, b := CanonicalPair(7, 3)
	assert.Equal(t, uint(3), a)
	assert.Equal(t, uint(7), b)

	a, b = CanonicalPair(3, 7)
	assert.Equal(t, uint(3), a)
	assert.Equal(t, uint(7), b)
}

func TestConversationParticipants(t *testing.T) {
	c := Conversation{UserAID: 3, UserBID: 7}

	assert.Equal(t, uint(7), c.OtherParticipant(3))
	assert.Equal(t, uint(3), c.OtherParticipant(7))
	assert.True(t, c.HasParticipant(3))
	assert.True(t, c.HasParticipant(7))
	assert.False(t, c.HasParticipant(9))
}
