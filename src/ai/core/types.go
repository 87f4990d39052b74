package core

import "context"

// Message represents a single chat turn.
type Message struct {
	Role    string
	Content string
}

// Chat turn roles understood by every provider.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Schema is a minimal JSON schema used to constrain model output.
type Schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Enum        []string           `json:"enum,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

// Options controls model behavior; fields are optional per provider.
type Options struct {
	Model           string
	Temperature     float64
	MaxOutputTokens int
	SystemPrompt    string
	// ResponseSchema, when set, requests a strict JSON response
	// matching the schema.
	ResponseSchema *Schema
}

// StreamFunc receives one text fragment per call, in arrival order.
type StreamFunc func(fragment string)

// Client is a provider-agnostic interface for the model operations we need.
type Client interface {
	// Complete runs a full conversation and returns the model's reply.
	Complete(ctx context.Context, msgs []Message, opts Options) (string, error)
	// Stream runs a conversation and delivers the reply incrementally.
	// The callback is invoked once per fragment until the stream ends.
	Stream(ctx context.Context, msgs []Message, opts Options, fn StreamFunc) error
}
