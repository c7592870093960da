package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ergeargwer/investment-competition-platform-v2/controllers"
	"github.com/ergeargwer/investment-competition-platform-v2/ledger"
	"github.com/ergeargwer/investment-competition-platform-v2/quotes"
	"github.com/ergeargwer/investment-competition-platform-v2/session"
	"github.com/ergeargwer/investment-competition-platform-v2/websocket"
)

// WebSocketRoutes mounts the event connection and a liveness probe. The
// websocket is the only data surface; everything else rides on it.
func WebSocketRoutes(r *gin.Engine, hub *websocket.Hub, store *ledger.Store, registry *session.Registry, quoteSvc quotes.Service, allowedOrigin string, log zerolog.Logger) {
	r.GET("/ws", controllers.ServeWS(hub, store, registry, quoteSvc, allowedOrigin, log))
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
