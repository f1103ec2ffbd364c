package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type handlers struct {
	categories []string
	body       []byte
}

func (h *handlers) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{"categories": h.categories})
}

// data returns the whole store exactly as persisted.
func (h *handlers) data(c *gin.Context) {
	c.Data(http.StatusOK, "application/json; charset=utf-8", h.body)
}

func (h *handlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "categories": len(h.categories)})
}
