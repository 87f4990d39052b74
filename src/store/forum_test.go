package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alby-numerique/participation/src/seed"
	"github.com/alby-numerique/participation/src/types"
)

func TestForumAddPrepends(t *testing.T) {
	s := NewForum(seed.ForumTopics())
	before := len(s.List())

	s.Add(types.ForumTopic{
		ID:      "new",
		Title:   "Éclairage rue de la Plaine",
		Replies: []types.ForumReply{{ID: "r0", Content: "Plusieurs lampadaires sont éteints."}},
	})

	got := s.List()
	require.Len(t, got, before+1)
	assert.Equal(t, "new", got[0].ID)
	// The opening post travels with the topic.
	require.Len(t, got[0].Replies, 1)
	assert.Equal(t, "Plusieurs lampadaires sont éteints.", got[0].Replies[0].Content)
}

func TestForumReplyAppendsAtEnd(t *testing.T) {
	s := NewForum(seed.ForumTopics())
	topic, ok := s.Get("2")
	require.True(t, ok)
	before := len(topic.Replies)

	updated, ok := s.Reply("2", types.ForumReply{ID: "rX", Content: "Merci pour la mise à jour"})
	require.True(t, ok)
	require.Len(t, updated.Replies, before+1)
	assert.Equal(t, "Merci pour la mise à jour", updated.Replies[before].Content)

	// The store's copy reflects it too.
	again, ok := s.Get("2")
	require.True(t, ok)
	assert.Equal(t, updated.Replies, again.Replies)
}

func TestForumReplyUnknownTopic(t *testing.T) {
	s := NewForum(seed.ForumTopics())

	_, ok := s.Reply("nope", types.ForumReply{ID: "r"})
	assert.False(t, ok)
	assert.Len(t, s.List(), len(seed.ForumTopics()))
}

func TestForumGetReturnsACopy(t *testing.T) {
	s := NewForum(seed.ForumTopics())
	topic, ok := s.Get("1")
	require.True(t, ok)
	topic.Replies[0].Content = "vandalisé"

	fresh, _ := s.Get("1")
	assert.NotEqual(t, "vandalisé", fresh.Replies[0].Content)
}
