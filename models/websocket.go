package models

import "encoding/json"

// Event names carried on the websocket envelope.
const (
	// client -> server
	EventSetUser     = "set_user"
	EventSearchStock = "search_stock"
	EventMakeTrade   = "make_trade"

	// server -> client
	EventInitialState = "initial_state"
	EventActiveUsers  = "active_users"
	EventSearchResult = "search_result"
	EventNewActivity  = "new_activity"
	EventTradeError   = "trade_error"
)

// WSMessage is the envelope for every event in either direction.
type WSMessage struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// WSRequest is an inbound envelope with the payload left raw so the
// dispatcher can decode it per event.
type WSRequest struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}
