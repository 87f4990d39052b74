// Package chat manages assistant conversations. A session is created lazily
// on first use and kept for the process lifetime; prior turns are replayed
// to the model on every send so the conversation has context.
package chat

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/alby-numerique/participation/src/ai/core"
	"github.com/alby-numerique/participation/src/gateway"
	"github.com/alby-numerique/participation/src/types"
)

// ErrBusy is returned when a send is issued while a previous one is still
// streaming. There is no user-facing abort; the caller just retries later.
var ErrBusy = errors.New("chat: session busy")

// ErrEmptyMessage is returned for blank input; nothing is recorded.
var ErrEmptyMessage = errors.New("chat: empty message")

// Manager owns every chat session, keyed by session id.
type Manager struct {
	mu       sync.Mutex
	gw       *gateway.Gateway
	sessions map[string]*Session
}

func NewManager(gw *gateway.Gateway) *Manager {
	return &Manager{gw: gw, sessions: make(map[string]*Session)}
}

// Create opens a new session and returns it.
func (m *Manager) Create() *Session {
	s := &Session{id: uuid.NewString(), gw: m.gw}
	m.mu.Lock()
	m.sessions[s.id] = s
	m.mu.Unlock()
	return s
}

// Get returns an existing session.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Session is one continuing conversation. The transcript is what a reader
// sees; history is the provider-facing turn list (successful turns only).
type Session struct {
	id string
	gw *gateway.Gateway

	mu         sync.Mutex
	busy       bool
	transcript []types.ChatMessage
	history    []core.Message
}

func (s *Session) ID() string { return s.id }

// Transcript returns a copy of the messages exchanged so far.
func (s *Session) Transcript() []types.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.ChatMessage, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// Send records the user message, streams the assistant's reply and returns
// the terminal assistant message. fn (optional) receives each fragment as it
// arrives. Model failures do not surface as errors: the fixed apology is
// appended instead, and any partially streamed text is kept. The only errors
// are ErrBusy and ErrEmptyMessage, both of which leave the transcript
// untouched.
func (s *Session) Send(ctx context.Context, text string, fn core.StreamFunc) (types.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return types.ChatMessage{}, ErrEmptyMessage
	}

	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return types.ChatMessage{}, ErrBusy
	}
	s.busy = true
	s.transcript = append(s.transcript, types.ChatMessage{
		ID:   uuid.NewString(),
		Role: types.RoleUser,
		Text: text,
	})
	s.history = append(s.history, core.Message{Role: core.RoleUser, Content: text})
	history := make([]core.Message, len(s.history))
	copy(history, s.history)
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.busy = false
		s.mu.Unlock()
	}()

	botID := uuid.NewString()
	started := false

	err := s.gw.StreamChat(ctx, history, func(fragment string) {
		s.mu.Lock()
		if !started {
			// First fragment: insert the in-progress assistant message.
			started = true
			s.transcript = append(s.transcript, types.ChatMessage{
				ID:       botID,
				Role:     types.RoleModel,
				IsTyping: true,
			})
		}
		s.appendFragmentLocked(botID, fragment)
		s.mu.Unlock()
		if fn != nil {
			fn(fragment)
		}
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		// Keep whatever streamed before the failure, then answer with the
		// canned apology as the turn's terminal message. The failed turn is
		// dropped from history so it is never replayed as context.
		s.history = s.history[:len(s.history)-1]
		s.finalizeLocked(botID)
		apology := types.ChatMessage{
			ID:   uuid.NewString(),
			Role: types.RoleModel,
			Text: gateway.FallbackChatMessage,
		}
		s.transcript = append(s.transcript, apology)
		return apology, nil
	}

	if !started {
		// Stream ended without a single fragment; treat as an empty answer.
		s.transcript = append(s.transcript, types.ChatMessage{
			ID:   botID,
			Role: types.RoleModel,
		})
	}
	final := s.finalizeLocked(botID)
	s.history = append(s.history, core.Message{Role: core.RoleAssistant, Content: final.Text})
	return final, nil
}

// appendFragmentLocked concatenates a fragment onto the in-progress message.
func (s *Session) appendFragmentLocked(id, fragment string) {
	for i := range s.transcript {
		if s.transcript[i].ID == id {
			s.transcript[i].Text += fragment
			return
		}
	}
}

// finalizeLocked clears the in-progress flag and returns the message.
func (s *Session) finalizeLocked(id string) types.ChatMessage {
	for i := range s.transcript {
		if s.transcript[i].ID == id {
			s.transcript[i].IsTyping = false
			return s.transcript[i]
		}
	}
	return types.ChatMessage{}
}
