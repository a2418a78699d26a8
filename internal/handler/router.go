package handler

import (
	"net/http"

	"jira_mcp/internal/logger"

	"github.com/gin-gonic/gin"
)

// MCPPath is where the streamable-HTTP MCP endpoint is mounted
const MCPPath = "/mcp"

// NewRouter builds the gin engine serving mcpHandler at MCPPath and a
// health check at /healthz.
func NewRouter(mcpHandler http.Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), logger.GinLogMiddleware())

	r.GET("/healthz", HandleHealth)
	r.Any(MCPPath, gin.WrapH(mcpHandler))

	return r
}

// HandleHealth reports liveness; it does not call Jira.
func HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
