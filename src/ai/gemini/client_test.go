package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alby-numerique/participation/src/ai/core"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) core.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := newClient(core.FactoryConfig{GeminiKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)
	return c
}

func TestComplete(t *testing.T) {
	var gotPath string
	var gotBody generateRequest

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		resp := map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]string{{"text": "Bonjour !"}}}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	})

	got, err := c.Complete(context.Background(), []core.Message{
		{Role: core.RoleUser, Content: "salut"},
	}, core.Options{SystemPrompt: "persona", Temperature: 0.7})

	require.NoError(t, err)
	assert.Equal(t, "Bonjour !", got)
	assert.Equal(t, "/models/gemini-2.5-flash:generateContent", gotPath)
	require.NotNil(t, gotBody.SystemInstruction)
	assert.Equal(t, "persona", gotBody.SystemInstruction.Parts[0].Text)
	require.Len(t, gotBody.Contents, 1)
	assert.Equal(t, "user", gotBody.Contents[0].Role)
	assert.InDelta(t, 0.7, gotBody.GenerationConfig.Temperature, 0.001)
}

func TestCompleteWithSchema(t *testing.T) {
	var gotBody generateRequest

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		resp := map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]string{{"text": `{"safe":true}`}}}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	})

	schema := &core.Schema{Type: "OBJECT", Properties: map[string]*core.Schema{
		"safe": {Type: "BOOLEAN"},
	}}
	got, err := c.Complete(context.Background(), []core.Message{
		{Role: core.RoleUser, Content: "modère ça"},
	}, core.Options{ResponseSchema: schema})

	require.NoError(t, err)
	assert.Equal(t, `{"safe":true}`, got)
	assert.Equal(t, "application/json", gotBody.GenerationConfig.ResponseMimeType)
	require.NotNil(t, gotBody.GenerationConfig.ResponseSchema)
	assert.Equal(t, "OBJECT", gotBody.GenerationConfig.ResponseSchema.Type)
}

func TestTemperatureOmittedWhenUnset(t *testing.T) {
	var rawBody []byte
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		rawBody, _ = io.ReadAll(r.Body)
		resp := map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]string{{"text": "ok"}}}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	})

	// No temperature anywhere: the model's own default applies.
	_, err := c.Complete(context.Background(), []core.Message{
		{Role: core.RoleUser, Content: "modère ça"},
	}, core.Options{})

	require.NoError(t, err)
	assert.NotContains(t, string(rawBody), `"temperature"`)
}

func TestCompleteAPIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"API key not valid"}}`, http.StatusBadRequest)
	})

	_, err := c.Complete(context.Background(), []core.Message{{Role: core.RoleUser, Content: "x"}}, core.Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gemini API error")
}

func TestStream(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "sse", r.URL.Query().Get("alt"))
		w.Header().Set("Content-Type", "text/event-stream")
		for _, text := range []string{"Bon", "jour", " !"} {
			chunk := map[string]any{
				"candidates": []map[string]any{
					{"content": map[string]any{"parts": []map[string]string{{"text": text}}}},
				},
			}
			b, _ := json.Marshal(chunk)
			fmt.Fprintf(w, "data: %s\r\n\r\n", b)
		}
	})

	var got string
	err := c.Stream(context.Background(), []core.Message{
		{Role: core.RoleUser, Content: "salut"},
	}, core.Options{}, func(fr string) { got += fr })

	require.NoError(t, err)
	assert.Equal(t, "Bonjour !", got)
}

func TestStreamMapsAssistantRole(t *testing.T) {
	var gotBody generateRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		fmt.Fprint(w, "data: {\"candidates\":[]}\n\n")
	})

	err := c.Stream(context.Background(), []core.Message{
		{Role: core.RoleUser, Content: "q1"},
		{Role: core.RoleAssistant, Content: "a1"},
		{Role: core.RoleUser, Content: "q2"},
	}, core.Options{}, func(string) {})

	require.NoError(t, err)
	require.Len(t, gotBody.Contents, 3)
	assert.Equal(t, "model", gotBody.Contents[1].Role)
}

func TestNewClientRequiresKey(t *testing.T) {
	_, err := newClient(core.FactoryConfig{})
	assert.Error(t, err)
}
