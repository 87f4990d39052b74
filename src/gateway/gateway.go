// Package gateway is the only boundary between the portal and the external
// language model. Every operation has a total contract: provider failures
// never escape as errors, they become deterministic fallback values.
package gateway

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/alby-numerique/participation/src/ai/core"
	"github.com/alby-numerique/participation/src/types"
)

const (
	analysisTemperature = 0.3
	chatTemperature     = 0.7
)

// ProposalAnalysis is the AnalyzeProposal result: the analysis record plus
// the category the model picked.
type ProposalAnalysis struct {
	types.AIAnalysis
	Category string `json:"category"`
}

// Moderation is the safety judgment for a piece of forum content.
type Moderation struct {
	Safe   bool   `json:"safe"`
	Reason string `json:"reason,omitempty"`
}

// Gateway wraps a provider client with the portal's prompts and fallback
// policy.
type Gateway struct {
	client core.Client
	// failOpen controls what ModerateContent returns when the model is
	// unreachable: publish anyway (true) or reject (false).
	failOpen bool
}

func New(client core.Client, failOpen bool) *Gateway {
	return &Gateway{client: client, failOpen: failOpen}
}

// AnalyzeProposal categorizes a submitted proposal and estimates its impact
// and cost. It never fails: when the model is unreachable or returns
// garbage, the proposal is still created with a placeholder analysis.
func (g *Gateway) AnalyzeProposal(ctx context.Context, title, description string) ProposalAnalysis {
	opts := core.Options{
		Temperature:    analysisTemperature,
		ResponseSchema: analysisSchema(),
	}
	msgs := []core.Message{{Role: core.RoleUser, Content: analysisPrompt(title, description)}}

	raw, err := g.client.Complete(ctx, msgs, opts)
	if err != nil {
		log.Printf("gateway: proposal analysis failed: %v", err)
		return fallbackAnalysis()
	}

	var out ProposalAnalysis
	if err := json.Unmarshal([]byte(stripFences(raw)), &out); err != nil {
		log.Printf("gateway: proposal analysis unparseable: %v", err)
		return fallbackAnalysis()
	}
	if !types.ValidCategory(out.Category) {
		// Providers without schema enforcement can invent labels.
		out.Category = types.CategoryOther
	}
	return out
}

// ModerateContent asks the model whether text is publishable on a public
// municipal forum. On model failure the configured policy decides.
func (g *Gateway) ModerateContent(ctx context.Context, text string) Moderation {
	opts := core.Options{
		ResponseSchema: moderationSchema(),
	}
	msgs := []core.Message{{Role: core.RoleUser, Content: moderationPrompt(text)}}

	raw, err := g.client.Complete(ctx, msgs, opts)
	if err != nil {
		log.Printf("gateway: moderation failed: %v", err)
		return g.moderationFallback()
	}

	var out Moderation
	if err := json.Unmarshal([]byte(stripFences(raw)), &out); err != nil {
		log.Printf("gateway: moderation unparseable: %v", err)
		return g.moderationFallback()
	}
	return out
}

// StreamChat sends the conversation so far, user turn last, and delivers the
// assistant's reply fragment by fragment. Unlike the other operations this
// one surfaces the error: the caller owns the transcript and decides what a
// failed turn looks like.
func (g *Gateway) StreamChat(ctx context.Context, history []core.Message, fn core.StreamFunc) error {
	opts := core.Options{
		Temperature:  chatTemperature,
		SystemPrompt: ChatSystemPrompt,
	}
	return g.client.Stream(ctx, history, opts, fn)
}

func fallbackAnalysis() ProposalAnalysis {
	return ProposalAnalysis{
		AIAnalysis: types.AIAnalysis{
			Impact:        "Analyse indisponible pour le moment.",
			Feasibility:   "Inconnue",
			EstimatedCost: "?",
			Tags:          []string{"N/A"},
		},
		Category: types.CategoryOther,
	}
}

func (g *Gateway) moderationFallback() Moderation {
	if g.failOpen {
		return Moderation{Safe: true}
	}
	return Moderation{Safe: false, Reason: "modération indisponible"}
}

// stripFences removes a markdown code fence around a JSON payload. Some
// providers wrap JSON-mode output even when told not to.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
