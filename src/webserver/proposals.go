package webserver

import (
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/alby-numerique/participation/src/gateway"
	"github.com/alby-numerique/participation/src/store"
	"github.com/alby-numerique/participation/src/types"
)

// No authentication in the portal; submissions carry a placeholder identity.
const proposalAuthor = "Citoyen Connecté"

type Proposals struct {
	store     *store.Proposals
	gw        *gateway.Gateway
	sanitizer *bluemonday.Policy
}

func NewProposals(st *store.Proposals, gw *gateway.Gateway) Proposals {
	return Proposals{store: st, gw: gw, sanitizer: bluemonday.StrictPolicy()}
}

func (h Proposals) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"proposals": h.store.List()})
}

func (h Proposals) Create(c *gin.Context) {
	var req struct {
		Title       string `json:"title" binding:"required,max=255"`
		Description string `json:"description" binding:"required,max=5000"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	title := cleanText(h.sanitizer, req.Title)
	description := cleanText(h.sanitizer, req.Description)
	if title == "" || description == "" {
		c.JSON(http.StatusBadRequest, gin.H{"err": "title and description are required"})
		return
	}
	if !utf8.ValidString(title) || !utf8.ValidString(description) {
		c.JSON(http.StatusBadRequest, gin.H{"err": "invalid characters in input"})
		return
	}

	// Blocking analysis call; the gateway always answers, with a
	// placeholder analysis when the model is unreachable.
	analysis := h.gw.AnalyzeProposal(c.Request.Context(), title, description)

	p := types.Proposal{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Author:      proposalAuthor,
		Date:        time.Now().Format("2006-01-02"),
		Votes:       0,
		Category:    analysis.Category,
		AIAnalysis:  &analysis.AIAnalysis,
	}
	h.store.Add(p)

	c.JSON(http.StatusCreated, p)
}

func (h Proposals) Vote(c *gin.Context) {
	if !h.store.Vote(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"err": "proposal not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
