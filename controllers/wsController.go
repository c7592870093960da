package controllers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	gorilla "github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/ergeargwer/investment-competition-platform-v2/ledger"
	"github.com/ergeargwer/investment-competition-platform-v2/models"
	"github.com/ergeargwer/investment-competition-platform-v2/quotes"
	"github.com/ergeargwer/investment-competition-platform-v2/session"
	"github.com/ergeargwer/investment-competition-platform-v2/websocket"
)

// ServeWS upgrades the connection, sends the full ledger snapshot and then
// dispatches inbound events until the observer disconnects. Each connection
// runs this loop in its own goroutine; the ledger store serializes the
// actual mutations.
func ServeWS(hub *websocket.Hub, store *ledger.Store, registry *session.Registry, quoteSvc quotes.Service, allowedOrigin string, log zerolog.Logger) gin.HandlerFunc {
	log = log.With().Str("component", "ws").Logger()
	upgrader := gorilla.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(allowedOrigin),
	}

	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Warn().Err(err).Msg("upgrade failed")
			return
		}

		client := websocket.NewClient(conn, log)
		hub.Register(client)
		go client.WritePump()

		// New observers get the current state, never a history replay.
		client.Enqueue(models.WSMessage{Event: models.EventInitialState, Data: store.Snapshot()})

		currentUser := ""
		defer func() {
			hub.Unregister(client)
			conn.Close()
			if currentUser != "" && registry.Leave(currentUser) {
				hub.Broadcast(models.WSMessage{Event: models.EventActiveUsers, Data: registry.Members()})
			}
		}()

		for {
			var req models.WSRequest
			if err := conn.ReadJSON(&req); err != nil {
				if gorilla.IsUnexpectedCloseError(err, gorilla.CloseGoingAway, gorilla.CloseNormalClosure, gorilla.CloseAbnormalClosure) {
					log.Warn().Str("client", client.ID).Err(err).Msg("read failed")
				}
				return
			}

			switch req.Event {
			case models.EventSetUser:
				var user string
				if err := json.Unmarshal(req.Data, &user); err != nil || user == "" {
					continue
				}
				if currentUser != "" && currentUser != user {
					// Re-identifying swaps this connection to the new name.
					changed := registry.Leave(currentUser)
					changed = registry.Join(user) || changed
					currentUser = user
					if changed {
						hub.Broadcast(models.WSMessage{Event: models.EventActiveUsers, Data: registry.Members()})
					}
					continue
				}
				if currentUser == user {
					continue
				}
				currentUser = user
				if registry.Join(user) {
					hub.Broadcast(models.WSMessage{Event: models.EventActiveUsers, Data: registry.Members()})
				}

			case models.EventSearchStock:
				var query string
				if err := json.Unmarshal(req.Data, &query); err != nil {
					continue
				}
				user := currentUser
				// The lookup suspends on its simulated delay; it must not
				// hold anything up, so it completes off the read loop.
				go func() {
					quote, err := quoteSvc.Lookup(context.Background(), query)
					if err != nil {
						return
					}
					client.Enqueue(models.WSMessage{Event: models.EventSearchResult, Data: quote})
					activity := store.RecordSearch(user, query)
					hub.Broadcast(models.WSMessage{Event: models.EventNewActivity, Data: activity})
				}()

			case models.EventMakeTrade:
				var order models.TradeOrder
				if err := json.Unmarshal(req.Data, &order); err != nil {
					client.Enqueue(models.WSMessage{Event: models.EventTradeError, Data: gin.H{"message": ledger.ErrInvalidOrder.Error()}})
					continue
				}
				activity, err := store.ExecuteTrade(order)
				if err != nil {
					client.Enqueue(models.WSMessage{Event: models.EventTradeError, Data: gin.H{"message": err.Error()}})
					continue
				}
				hub.Broadcast(models.WSMessage{Event: models.EventNewActivity, Data: activity})

			default:
				log.Debug().Str("event", req.Event).Msg("unknown event ignored")
			}
		}
	}
}

func originChecker(allowedOrigin string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		if allowedOrigin == "" || allowedOrigin == "*" {
			return true
		}
		origin := r.Header.Get("Origin")
		return origin == "" || origin == allowedOrigin
	}
}
