// ai-smoketest exercises the configured model provider with the portal's
// three gateway operations: proposal analysis, moderation and a streamed
// chat turn. Useful to validate credentials before a deploy.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	aicore "github.com/alby-numerique/participation/src/ai/core"
	_ "github.com/alby-numerique/participation/src/ai/providers"
	"github.com/alby-numerique/participation/src/config"
	"github.com/alby-numerique/participation/src/gateway"
)

var (
	providerFlag = flag.String("provider", "", "Provider to test (default: PORTAL_AI_PROVIDER)")
	modelFlag    = flag.String("model", "", "Override model name")
	timeoutFlag  = flag.Duration("timeout", 45*time.Second, "Per-operation timeout")
	maxLenFlag   = flag.Int("max-bytes", 1200, "Maximum bytes of output to print per response (0=unlimited)")
)

const (
	testTitle       = "Compost collectif au marché"
	testDescription = "Installer des bacs à compost partagés près de la halle du marché hebdomadaire."
	testModeration  = "Merci à la mairie pour la réunion publique de jeudi."
	testChatPrompt  = "Quels sont les horaires de la mairie ?"
)

func main() {
	log.SetFlags(0)
	flag.Parse()

	cfg := config.Load()
	provider := *providerFlag
	if provider == "" {
		provider = cfg.AIProvider
	}
	model := *modelFlag
	if model == "" {
		model = cfg.AIModel
	}

	client, err := aicore.NewClient(aicore.FactoryConfig{
		Provider:    provider,
		Model:       model,
		Temperature: cfg.AITemperature,
		GeminiKey:   cfg.GeminiAPIKey,
		OpenAIKey:   cfg.OpenAIAPIKey,
		BaseURL:     cfg.AIBaseURL,
	})
	if err != nil {
		log.Fatalf("client init: %v", err)
	}

	gw := gateway.New(client, cfg.ModerationFailOpen)
	fmt.Printf("=== %s (%s) ===\n", provider, aicore.ResolveModelName(provider, model))

	ok := runAnalysis(gw)
	ok = runModeration(gw) && ok
	ok = runChat(gw) && ok

	if !ok {
		os.Exit(1)
	}
}

func runAnalysis(gw *gateway.Gateway) bool {
	ctx, cancel := context.WithTimeout(context.Background(), *timeoutFlag)
	defer cancel()

	start := time.Now()
	analysis := gw.AnalyzeProposal(ctx, testTitle, testDescription)
	// The gateway never errors; the fallback record signals failure.
	if analysis.EstimatedCost == "?" {
		fmt.Println("analyze: FAIL (fallback analysis returned)")
		return false
	}
	fmt.Printf("analyze: ok (%.1fs) category=%s feasibility=%s cost=%s tags=%v\n",
		time.Since(start).Seconds(), analysis.Category, analysis.Feasibility, analysis.EstimatedCost, analysis.Tags)
	return true
}

func runModeration(gw *gateway.Gateway) bool {
	ctx, cancel := context.WithTimeout(context.Background(), *timeoutFlag)
	defer cancel()

	start := time.Now()
	mod := gw.ModerateContent(ctx, testModeration)
	if !mod.Safe {
		fmt.Printf("moderate: FAIL (benign message rejected: %s)\n", mod.Reason)
		return false
	}
	fmt.Printf("moderate: ok (%.1fs)\n", time.Since(start).Seconds())
	return true
}

func runChat(gw *gateway.Gateway) bool {
	ctx, cancel := context.WithTimeout(context.Background(), *timeoutFlag)
	defer cancel()

	start := time.Now()
	var reply string
	err := gw.StreamChat(ctx, []aicore.Message{
		{Role: aicore.RoleUser, Content: testChatPrompt},
	}, func(fragment string) {
		reply += fragment
	})
	if err != nil {
		fmt.Printf("chat: FAIL (%v)\n", err)
		return false
	}
	fmt.Printf("chat: ok (%.1fs)\n%s\n", time.Since(start).Seconds(), truncate(reply, *maxLenFlag))
	return true
}

func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max] + "…"
}
