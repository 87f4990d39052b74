// Citizen participation portal for Alby-sur-Chéran: proposals with AI
// analysis, a moderated forum, the municipal agenda and the AlbyBot chat
// assistant.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alby-numerique/participation/src/ai/core"
	_ "github.com/alby-numerique/participation/src/ai/providers"
	"github.com/alby-numerique/participation/src/chat"
	"github.com/alby-numerique/participation/src/config"
	"github.com/alby-numerique/participation/src/gateway"
	"github.com/alby-numerique/participation/src/seed"
	"github.com/alby-numerique/participation/src/store"
	"github.com/alby-numerique/participation/src/webserver"
)

func main() {
	cfg := config.Load()

	client, err := core.NewClient(core.FactoryConfig{
		Provider:    cfg.AIProvider,
		Model:       cfg.AIModel,
		Temperature: cfg.AITemperature,
		GeminiKey:   cfg.GeminiAPIKey,
		OpenAIKey:   cfg.OpenAIAPIKey,
		BaseURL:     cfg.AIBaseURL,
	})
	if err != nil {
		// Without a working provider every AI call takes the fallback
		// path; the portal still serves proposals, forum and agenda.
		log.Printf("ai provider unavailable: %v", err)
		client = core.Unavailable(err)
	}

	gw := gateway.New(client, cfg.ModerationFailOpen)
	sessions := chat.NewManager(gw)

	st := webserver.Stores{
		Proposals: store.NewProposals(seed.Proposals()),
		Forum:     store.NewForum(seed.ForumTopics()),
		Events:    store.NewEvents(seed.Events()),
	}

	router := webserver.New(cfg, st, gw, sessions)

	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute, // chat responses stream for a while
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("participation portal listening on %s", cfg.Port)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpSrv.Shutdown(shutCtx)
}
