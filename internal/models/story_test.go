package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStoryVisibleAtWindowEdges(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	story := Story{CreatedAt: created, ExpiresAt: created.Add(StoryTTL)}

	assert.True(t, story.Visible(created.Add(23*time.Hour+59*time.Minute)))
	assert.False(t, story.Visible(created.Add(24*time.Hour+time.Minute)))
	assert.False(t, story.Visible(story.ExpiresAt), "expiry instant is already invisible")
}
