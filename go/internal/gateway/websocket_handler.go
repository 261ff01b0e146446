package gateway

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pgdem/desporto/go/internal/store"
	"github.com/rs/zerolog/log"
)

// WebSocketHandler handles websocket upgrade requests for the change feed
type WebSocketHandler struct {
	connectionManager *ConnectionManager
}

// NewWebSocketHandler creates a new websocket handler
func NewWebSocketHandler(cm *ConnectionManager) *WebSocketHandler {
	return &WebSocketHandler{connectionManager: cm}
}

// RegisterRoutes mounts the change feed and its stats on r
func (h *WebSocketHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/ws/changes", h.HandleChanges)
	r.GET("/ws/stats", h.HandleConnectionStats)
}

// HandleChanges upgrades GET /ws/changes?collections=games,athletes&user=<id>.
// Omitting collections follows all of them.
func (h *WebSocketHandler) HandleChanges(c *gin.Context) {
	collections, err := parseCollections(c.Query("collections"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.Query("user")
	if userID == "" {
		userID = "anonymous"
	}

	if err := h.connectionManager.UpgradeConnection(c.Writer, c.Request, userID, collections); err != nil {
		// the upgrader has already written the HTTP error response
		log.Error().Err(err).Str("user_id", userID).Msg("failed to upgrade websocket connection")
	}
}

// HandleConnectionStats returns statistics about active connections
func (h *WebSocketHandler) HandleConnectionStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.connectionManager.GetConnectionStats())
}

type unknownCollectionError string

func (e unknownCollectionError) Error() string {
	return "unknown collection " + string(e)
}

func parseCollections(raw string) ([]string, error) {
	known := make(map[string]bool, len(store.AllCollections))
	for _, c := range store.AllCollections {
		known[c] = true
	}

	var out []string
	for _, part := range strings.Split(raw, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		if !known[name] {
			return nil, unknownCollectionError(name)
		}
		out = append(out, name)
	}
	return out, nil
}
