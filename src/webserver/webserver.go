package webserver

import (
	"html"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"

	"github.com/alby-numerique/participation/src/chat"
	"github.com/alby-numerique/participation/src/config"
	"github.com/alby-numerique/participation/src/gateway"
	"github.com/alby-numerique/participation/src/store"
)

// Stores groups the portal's in-memory state for injection into handlers.
type Stores struct {
	Proposals *store.Proposals
	Forum     *store.Forum
	Events    *store.Events
}

func New(cfg config.Config, st Stores, gw *gateway.Gateway, sessions *chat.Manager) *gin.Engine {
	g := gin.New()
	g.Use(gin.Logger(), gin.Recovery())
	attachRoutes(g, cfg, st, gw, sessions)
	return g
}

// cleanText strips markup from user input and keeps the rest as plain text.
// The sanitizer entity-escapes what it keeps, which would mangle apostrophes
// and ampersands in French text, so its output is unescaped again.
func cleanText(p *bluemonday.Policy, s string) string {
	return strings.TrimSpace(html.UnescapeString(p.Sanitize(s)))
}
