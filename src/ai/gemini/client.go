package gemini

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/alby-numerique/participation/src/ai/core"
	"github.com/alby-numerique/participation/src/webclient"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

func init() {
	core.RegisterProvider("gemini", newClient, "google")
}

type client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	defaults   core.Options
}

func newClient(cfg core.FactoryConfig) (core.Client, error) {
	if cfg.GeminiKey == "" {
		return nil, fmt.Errorf("gemini: API key not configured")
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &client{
		apiKey:     cfg.GeminiKey,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: webclient.NewDefault(120 * time.Second),
		defaults: core.Options{
			Model:       core.ResolveModelName("gemini", cfg.Model),
			Temperature: cfg.Temperature,
		},
	}, nil
}

// Wire types for the generateContent endpoint.
type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature      float64      `json:"temperature,omitempty"`
	MaxOutputTokens  int          `json:"maxOutputTokens,omitempty"`
	ResponseMimeType string       `json:"responseMimeType,omitempty"`
	ResponseSchema   *core.Schema `json:"responseSchema,omitempty"`
}

type generateRequest struct {
	SystemInstruction *content         `json:"systemInstruction,omitempty"`
	Contents          []content        `json:"contents"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (c *client) buildRequest(msgs []core.Message, opts core.Options) generateRequest {
	merged := c.merge(opts)

	req := generateRequest{
		GenerationConfig: generationConfig{
			Temperature:     merged.Temperature,
			MaxOutputTokens: merged.MaxOutputTokens,
		},
	}
	if merged.SystemPrompt != "" {
		req.SystemInstruction = &content{Parts: []part{{Text: merged.SystemPrompt}}}
	}
	if merged.ResponseSchema != nil {
		req.GenerationConfig.ResponseMimeType = "application/json"
		req.GenerationConfig.ResponseSchema = merged.ResponseSchema
	}
	for _, m := range msgs {
		role := "user"
		if m.Role == core.RoleAssistant {
			role = "model"
		}
		req.Contents = append(req.Contents, content{Role: role, Parts: []part{{Text: m.Content}}})
	}
	return req
}

func (c *client) Complete(ctx context.Context, msgs []core.Message, opts core.Options) (string, error) {
	merged := c.merge(opts)
	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, merged.Model)

	b, err := json.Marshal(c.buildRequest(msgs, opts))
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini API error: %s", string(body))
	}

	var result generateResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}
	text := joinParts(result)
	if text == "" {
		return "", fmt.Errorf("no response from Gemini")
	}
	return text, nil
}

// Stream consumes the streamGenerateContent SSE endpoint and invokes fn for
// every text fragment in arrival order.
func (c *client) Stream(ctx context.Context, msgs []core.Message, opts core.Options, fn core.StreamFunc) error {
	merged := c.merge(opts)
	url := fmt.Sprintf("%s/models/%s:streamGenerateContent?alt=sse", c.baseURL, merged.Model)

	b, err := json.Marshal(c.buildRequest(msgs, opts))
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("gemini API error: %s", string(body))
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if payload == "" || payload == "[DONE]" {
			continue
		}
		var chunk generateResponse
		if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
			return fmt.Errorf("gemini stream: bad chunk: %w", err)
		}
		if text := joinParts(chunk); text != "" {
			fn(text)
		}
	}
	return scanner.Err()
}

func joinParts(r generateResponse) string {
	var sb strings.Builder
	for _, cand := range r.Candidates {
		for _, p := range cand.Content.Parts {
			sb.WriteString(p.Text)
		}
	}
	return sb.String()
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
