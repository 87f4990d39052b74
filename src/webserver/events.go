package webserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alby-numerique/participation/src/store"
)

type Events struct {
	store *store.Events
}

func NewEvents(st *store.Events) Events {
	return Events{store: st}
}

func (h Events) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"events": h.store.List()})
}
