package webserver

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/alby-numerique/participation/src/chat"
	"github.com/alby-numerique/participation/src/config"
	"github.com/alby-numerique/participation/src/gateway"
)

func attachRoutes(r *gin.Engine, cfg config.Config, st Stores, gw *gateway.Gateway, sessions *chat.Manager) {
	// The SPA frontend runs on its own origin.
	r.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.AllowOrigins,
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	propH := NewProposals(st.Proposals, gw)
	forumH := NewForum(st.Forum, gw)
	eventH := NewEvents(st.Events)
	chatH := NewChat(sessions)

	v1 := r.Group("/v1")
	{
		v1.GET("/proposals", propH.List)
		v1.POST("/proposals", propH.Create)
		v1.POST("/proposals/:id/vote", propH.Vote)

		v1.GET("/forum/topics", forumH.ListTopics)
		v1.POST("/forum/topics", forumH.CreateTopic)
		v1.GET("/forum/topics/:id", forumH.GetTopic)
		v1.POST("/forum/topics/:id/replies", forumH.Reply)
		v1.POST("/forum/replies/:id/report", forumH.ReportReply)

		v1.GET("/events", eventH.List)

		v1.POST("/chat/sessions", chatH.CreateSession)
		v1.GET("/chat/sessions/:id", chatH.Transcript)
		v1.POST("/chat/sessions/:id/messages", chatH.Send)
	}
}
