// Package server exposes the nesting engine over HTTP. It accepts the
// same JSON request document as the CLI and returns the result document,
// so a driver can POST a cut list instead of shelling out.
package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nestcut/nestcut/internal/engine"
	"github.com/nestcut/nestcut/internal/export"
	"github.com/nestcut/nestcut/internal/model"
)

// NewRouter builds the gin engine with all routes registered.
func NewRouter() *gin.Engine {
	r := gin.Default()
	r.GET("/healthz", handleHealth)
	r.POST("/api/nest", handleNest)
	return r
}

// Run starts the HTTP server on the given address, e.g. ":8080".
func Run(addr string) error {
	return NewRouter().Run(addr)
}

func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleNest runs a full nest for the posted request document and returns
// the result document. Validation failures are 400s; an unplaceable part
// is not an error, it is reported in the response's unplaced block.
func handleNest(c *gin.Context) {
	var req model.NestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settings := req.Settings.ToSettings()
	parts := req.BuildParts(settings)
	if len(parts) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no parts in request"})
		return
	}

	start := time.Now()
	nester := engine.New(settings)
	result := nester.NestAll(parts, req.BoardSizes())

	c.JSON(http.StatusOK, export.BuildResponse(result, time.Since(start)))
}
