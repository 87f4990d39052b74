package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alby-numerique/participation/src/ai/core"
	"github.com/alby-numerique/participation/src/gateway"
	"github.com/alby-numerique/participation/src/types"
)

// scriptedClient emits fragments then optionally fails. It records the
// conversation it was given so tests can check context replay.
type scriptedClient struct {
	fragments []string
	err       error
	lastMsgs  []core.Message
	block     chan struct{}
}

func (f *scriptedClient) Complete(ctx context.Context, msgs []core.Message, opts core.Options) (string, error) {
	return "", errors.New("not used")
}

func (f *scriptedClient) Stream(ctx context.Context, msgs []core.Message, opts core.Options, fn core.StreamFunc) error {
	f.lastMsgs = msgs
	for _, fr := range f.fragments {
		fn(fr)
	}
	if f.block != nil {
		<-f.block
	}
	return f.err
}

func newSession(client core.Client) *Session {
	return NewManager(gateway.New(client, true)).Create()
}

func TestSendStreamsOneAssistantMessage(t *testing.T) {
	fc := &scriptedClient{fragments: []string{"Bonjour", ", comment", " puis-je aider ?"}}
	s := newSession(fc)

	var streamed string
	final, err := s.Send(context.Background(), "Bonjour AlbyBot", func(fr string) { streamed += fr })
	require.NoError(t, err)

	assert.Equal(t, "Bonjour, comment puis-je aider ?", streamed)
	assert.Equal(t, types.RoleModel, final.Role)
	assert.Equal(t, streamed, final.Text)
	assert.False(t, final.IsTyping)

	msgs := s.Transcript()
	require.Len(t, msgs, 2)
	assert.Equal(t, types.RoleUser, msgs[0].Role)
	assert.Equal(t, "Bonjour AlbyBot", msgs[0].Text)
	assert.Equal(t, final.Text, msgs[1].Text)
}

func TestSendReplaysConversationContext(t *testing.T) {
	fc := &scriptedClient{fragments: []string{"Réponse 1"}}
	s := newSession(fc)

	_, err := s.Send(context.Background(), "Question 1", nil)
	require.NoError(t, err)

	fc.fragments = []string{"Réponse 2"}
	_, err = s.Send(context.Background(), "Question 2", nil)
	require.NoError(t, err)

	// The provider sees every prior successful turn, user turn last.
	require.Len(t, fc.lastMsgs, 3)
	assert.Equal(t, "Question 1", fc.lastMsgs[0].Content)
	assert.Equal(t, "Réponse 1", fc.lastMsgs[1].Content)
	assert.Equal(t, core.RoleAssistant, fc.lastMsgs[1].Role)
	assert.Equal(t, "Question 2", fc.lastMsgs[2].Content)
}

func TestSendFailureAppendsApology(t *testing.T) {
	fc := &scriptedClient{err: errors.New("network down")}
	s := newSession(fc)

	final, err := s.Send(context.Background(), "Allô ?", nil)
	require.NoError(t, err)
	assert.Equal(t, gateway.FallbackChatMessage, final.Text)

	msgs := s.Transcript()
	require.Len(t, msgs, 2)
	assert.Equal(t, gateway.FallbackChatMessage, msgs[1].Text)
}

func TestSendFailureKeepsPartialText(t *testing.T) {
	fc := &scriptedClient{fragments: []string{"Début de rép"}, err: errors.New("stream cut")}
	s := newSession(fc)

	final, err := s.Send(context.Background(), "Allô ?", nil)
	require.NoError(t, err)
	assert.Equal(t, gateway.FallbackChatMessage, final.Text)

	// user message, partial assistant text, then the apology.
	msgs := s.Transcript()
	require.Len(t, msgs, 3)
	assert.Equal(t, "Début de rép", msgs[1].Text)
	assert.False(t, msgs[1].IsTyping)
	assert.Equal(t, gateway.FallbackChatMessage, msgs[2].Text)
}

func TestFailedTurnNotReplayed(t *testing.T) {
	fc := &scriptedClient{err: errors.New("network down")}
	s := newSession(fc)

	_, err := s.Send(context.Background(), "Question perdue", nil)
	require.NoError(t, err)

	// The next send replays neither the failed question nor the apology.
	fc.err = nil
	fc.fragments = []string{"Réponse"}
	_, err = s.Send(context.Background(), "Nouvelle question", nil)
	require.NoError(t, err)

	require.Len(t, fc.lastMsgs, 1)
	assert.Equal(t, "Nouvelle question", fc.lastMsgs[0].Content)
}

func TestSendEmptyMessage(t *testing.T) {
	s := newSession(&scriptedClient{})

	_, err := s.Send(context.Background(), "   ", nil)
	assert.ErrorIs(t, err, ErrEmptyMessage)
	assert.Empty(t, s.Transcript())
}

func TestSendWhileBusy(t *testing.T) {
	fc := &scriptedClient{fragments: []string{"..."}, block: make(chan struct{})}
	s := newSession(fc)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = s.Send(context.Background(), "première", nil)
	}()

	// Wait for the first send to reach the provider.
	require.Eventually(t, func() bool {
		return len(s.Transcript()) >= 1
	}, time.Second, 5*time.Millisecond)

	_, err := s.Send(context.Background(), "deuxième", nil)
	assert.ErrorIs(t, err, ErrBusy)

	close(fc.block)
	<-done
}

func TestOneTerminalMessagePerSend(t *testing.T) {
	fc := &scriptedClient{fragments: []string{"ok"}}
	s := newSession(fc)

	for i := 0; i < 3; i++ {
		_, err := s.Send(context.Background(), "question", nil)
		require.NoError(t, err)
	}

	var users, models int
	for _, m := range s.Transcript() {
		switch m.Role {
		case types.RoleUser:
			users++
		case types.RoleModel:
			models++
		}
	}
	assert.Equal(t, 3, users)
	assert.Equal(t, 3, models)
}

func TestManagerSessions(t *testing.T) {
	m := NewManager(gateway.New(&scriptedClient{}, true))

	s := m.Create()
	got, ok := m.Get(s.ID())
	require.True(t, ok)
	assert.Same(t, s, got)

	_, ok = m.Get("unknown")
	assert.False(t, ok)
}
