// Package openai is the alternate model provider, for deployments that
// cannot reach the Gemini API.
package openai

import (
	"context"
	"errors"
	"fmt"
	"io"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/alby-numerique/participation/src/ai/core"
)

func init() {
	core.RegisterProvider("openai", newClient, "gpt")
}

type client struct {
	api      *goopenai.Client
	defaults core.Options
}

func newClient(cfg core.FactoryConfig) (core.Client, error) {
	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("openai: API key not configured")
	}
	conf := goopenai.DefaultConfig(cfg.OpenAIKey)
	if cfg.BaseURL != "" {
		conf.BaseURL = cfg.BaseURL
	}
	return &client{
		api: goopenai.NewClientWithConfig(conf),
		defaults: core.Options{
			Model:       core.ResolveModelName("openai", cfg.Model),
			Temperature: cfg.Temperature,
		},
	}, nil
}

func (c *client) buildRequest(msgs []core.Message, opts core.Options) goopenai.ChatCompletionRequest {
	merged := c.merge(opts)

	req := goopenai.ChatCompletionRequest{
		Model:       merged.Model,
		Temperature: float32(merged.Temperature),
	}
	if merged.MaxOutputTokens != 0 {
		req.MaxCompletionTokens = merged.MaxOutputTokens
	}

	system := merged.SystemPrompt
	if merged.ResponseSchema != nil {
		// No first-class schema parameter on chat completions; ask for
		// JSON mode and describe the shape in the system prompt.
		req.ResponseFormat = &goopenai.ChatCompletionResponseFormat{
			Type: goopenai.ChatCompletionResponseFormatTypeJSONObject,
		}
		system += "\n\nRéponds uniquement avec un objet JSON de la forme: " + describeSchema(merged.ResponseSchema)
	}
	if system != "" {
		req.Messages = append(req.Messages, goopenai.ChatCompletionMessage{
			Role:    goopenai.ChatMessageRoleSystem,
			Content: system,
		})
	}
	for _, m := range msgs {
		role := goopenai.ChatMessageRoleUser
		if m.Role == core.RoleAssistant {
			role = goopenai.ChatMessageRoleAssistant
		}
		req.Messages = append(req.Messages, goopenai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	return req
}

func (c *client) Complete(ctx context.Context, msgs []core.Message, opts core.Options) (string, error) {
	req := c.buildRequest(msgs, opts)
	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *client) Stream(ctx context.Context, msgs []core.Message, opts core.Options, fn core.StreamFunc) error {
	req := c.buildRequest(msgs, opts)
	req.Stream = true

	stream, err := c.api.CreateChatCompletionStream(ctx, req)
	if err != nil {
		return err
	}
	defer stream.Close()

	for {
		chunk, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if len(chunk.Choices) == 0 {
			continue
		}
		if delta := chunk.Choices[0].Delta.Content; delta != "" {
			fn(delta)
		}
	}
}

// describeSchema renders a schema as a compact JSON example for the prompt.
func describeSchema(s *core.Schema) string {
	switch s.Type {
	case "OBJECT", "object":
		out := "{"
		first := true
		for name, prop := range s.Properties {
			if !first {
				out += ", "
			}
			first = false
			out += fmt.Sprintf("%q: %s", name, describeSchema(prop))
		}
		return out + "}"
	case "ARRAY", "array":
		return "[" + describeSchema(s.Items) + "]"
	case "BOOLEAN", "boolean":
		return "true|false"
	default:
		if s.Description != "" {
			return fmt.Sprintf("%q", s.Description)
		}
		return `"..."`
	}
}

func (c *client) merge(opts core.Options) core.Options {
	out := c.defaults
	if opts.Model != "" {
		out.Model = opts.Model
	}
	if opts.Temperature != 0 {
		out.Temperature = opts.Temperature
	}
	if opts.MaxOutputTokens != 0 {
		out.MaxOutputTokens = opts.MaxOutputTokens
	}
	if opts.SystemPrompt != "" {
		out.SystemPrompt = opts.SystemPrompt
	}
	if opts.ResponseSchema != nil {
		out.ResponseSchema = opts.ResponseSchema
	}
	return out
}
