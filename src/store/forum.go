package store

import (
	"sync"

	"github.com/alby-numerique/participation/src/types"
)

// Forum keeps discussion topics newest-first. Each topic owns its reply
// sequence; replies[0] is the topic's opening post.
type Forum struct {
	mu     sync.Mutex
	topics []types.ForumTopic
}

func NewForum(seed []types.ForumTopic) *Forum {
	topics := make([]types.ForumTopic, len(seed))
	copy(topics, seed)
	return &Forum{topics: topics}
}

// List returns a copy of the topics, newest first. Reply slices are copied
// too so callers cannot mutate store state.
func (s *Forum) List() []types.ForumTopic {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.ForumTopic, len(s.topics))
	for i, t := range s.topics {
		out[i] = copyTopic(t)
	}
	return out
}

// Get returns one topic by id.
func (s *Forum) Get(id string) (types.ForumTopic, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.topics {
		if t.ID == id {
			return copyTopic(t), true
		}
	}
	return types.ForumTopic{}, false
}

// Add prepends a topic (newest first).
func (s *Forum) Add(t types.ForumTopic) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.topics = append([]types.ForumTopic{copyTopic(t)}, s.topics...)
}

// Reply appends a reply to the end of the topic's sequence. Returns the
// updated topic, or false when the topic id is unknown.
func (s *Forum) Reply(topicID string, r types.ForumReply) (types.ForumTopic, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.topics {
		if s.topics[i].ID == topicID {
			s.topics[i].Replies = append(s.topics[i].Replies, r)
			return copyTopic(s.topics[i]), true
		}
	}
	return types.ForumTopic{}, false
}

func copyTopic(t types.ForumTopic) types.ForumTopic {
	replies := make([]types.ForumReply, len(t.Replies))
	copy(replies, t.Replies)
	t.Replies = replies
	return t
}
