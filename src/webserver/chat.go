package webserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alby-numerique/participation/src/chat"
)

type Chat struct {
	sessions *chat.Manager
}

func NewChat(sessions *chat.Manager) Chat {
	return Chat{sessions: sessions}
}

func (h Chat) CreateSession(c *gin.Context) {
	s := h.sessions.Create()
	c.JSON(http.StatusCreated, gin.H{"sessionId": s.ID()})
}

func (h Chat) Transcript(c *gin.Context) {
	s, ok := h.sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"err": "session not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": s.Transcript()})
}

// Send streams the assistant's reply as server-sent events: one "data" event
// per text fragment, then a terminal "done" event carrying the complete
// assistant message. When the model fails the done event carries the canned
// apology; the HTTP exchange itself still succeeds.
func (h Chat) Send(c *gin.Context) {
	var req struct {
		Message string `json:"message" binding:"required,max=2000"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	s, ok := h.sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"err": "session not found"})
		return
	}

	w := c.Writer
	headersSent := false
	sendHeaders := func() {
		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no")
		w.WriteHeader(http.StatusOK)
		headersSent = true
	}

	final, err := s.Send(c.Request.Context(), req.Message, func(fragment string) {
		if !headersSent {
			sendHeaders()
		}
		payload, _ := json.Marshal(gin.H{"text": fragment})
		fmt.Fprintf(w, "data: %s\n\n", payload)
		w.Flush()
	})
	if err != nil {
		// Nothing streamed yet for these; a plain JSON error is fine.
		switch {
		case errors.Is(err, chat.ErrBusy):
			c.JSON(http.StatusConflict, gin.H{"err": "a response is already streaming"})
		case errors.Is(err, chat.ErrEmptyMessage):
			c.JSON(http.StatusBadRequest, gin.H{"err": "message is empty"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		}
		return
	}

	if !headersSent {
		sendHeaders()
	}
	payload, _ := json.Marshal(final)
	fmt.Fprintf(w, "event: done\ndata: %s\n\n", payload)
	w.Flush()
}
