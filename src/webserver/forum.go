package webserver

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/alby-numerique/participation/src/gateway"
	"github.com/alby-numerique/participation/src/store"
	"github.com/alby-numerique/participation/src/types"
)

const (
	forumAuthor = "Citoyen d'Alby"
	justNow     = "À l'instant"
)

type Forum struct {
	store     *store.Forum
	gw        *gateway.Gateway
	sanitizer *bluemonday.Policy
}

func NewForum(st *store.Forum, gw *gateway.Gateway) Forum {
	return Forum{store: st, gw: gw, sanitizer: bluemonday.StrictPolicy()}
}

func (h Forum) ListTopics(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"topics": h.store.List()})
}

func (h Forum) GetTopic(c *gin.Context) {
	topic, ok := h.store.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"err": "topic not found"})
		return
	}
	c.JSON(http.StatusOK, topic)
}

func (h Forum) CreateTopic(c *gin.Context) {
	var req struct {
		Title    string `json:"title" binding:"required,max=255"`
		Content  string `json:"content" binding:"required,max=5000"`
		Category string `json:"category" binding:"max=64"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	title := cleanText(h.sanitizer, req.Title)
	body := cleanText(h.sanitizer, req.Content)
	if title == "" || body == "" {
		c.JSON(http.StatusBadRequest, gin.H{"err": "title and content are required"})
		return
	}
	if !utf8.ValidString(title) || !utf8.ValidString(body) {
		c.JSON(http.StatusBadRequest, gin.H{"err": "invalid characters in input"})
		return
	}
	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = "Général"
	}

	// Title and opening post are moderated together, as one message.
	mod := h.gw.ModerateContent(c.Request.Context(), title+" "+body)
	if !mod.Safe {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"err": "Contenu refusé : " + mod.Reason})
		return
	}

	topic := types.ForumTopic{
		ID:       uuid.NewString(),
		Title:    title,
		Author:   forumAuthor,
		Date:     justNow,
		Category: category,
		Views:    0,
		// The opening post is stored as the first reply.
		Replies: []types.ForumReply{{
			ID:      uuid.NewString(),
			Author:  forumAuthor,
			Content: body,
			Date:    justNow,
		}},
	}
	h.store.Add(topic)

	c.JSON(http.StatusCreated, topic)
}

func (h Forum) Reply(c *gin.Context) {
	var req struct {
		Content string `json:"content" binding:"required,max=5000"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	content := cleanText(h.sanitizer, req.Content)
	if content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"err": "content is required"})
		return
	}
	if !utf8.ValidString(content) {
		c.JSON(http.StatusBadRequest, gin.H{"err": "invalid characters in input"})
		return
	}

	topicID := c.Param("id")
	if _, ok := h.store.Get(topicID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"err": "topic not found"})
		return
	}

	mod := h.gw.ModerateContent(c.Request.Context(), content)
	if !mod.Safe {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"err": "Message refusé : " + mod.Reason})
		return
	}

	reply := types.ForumReply{
		ID:      uuid.NewString(),
		Author:  forumAuthor,
		Content: content,
		Date:    justNow,
	}
	topic, ok := h.store.Reply(topicID, reply)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"err": "topic not found"})
		return
	}

	c.JSON(http.StatusCreated, topic)
}

// ReportReply acknowledges a report. There is no moderation queue; the
// entity itself is never mutated.
func (h Forum) ReportReply(c *gin.Context) {
	c.JSON(http.StatusAccepted, gin.H{
		"message": "Le message a été signalé aux modérateurs pour examen.",
	})
}
