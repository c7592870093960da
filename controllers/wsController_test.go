package controllers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	gorilla "github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ergeargwer/investment-competition-platform-v2/ledger"
	"github.com/ergeargwer/investment-competition-platform-v2/models"
	"github.com/ergeargwer/investment-competition-platform-v2/quotes"
	"github.com/ergeargwer/investment-competition-platform-v2/session"
	"github.com/ergeargwer/investment-competition-platform-v2/websocket"
)

type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := websocket.NewHub(zerolog.Nop())
	go hub.Run()
	store := ledger.NewStore(zerolog.Nop())
	registry := session.NewRegistry(zerolog.Nop())
	quoteSvc := quotes.NewSimulated(time.Millisecond, zerolog.Nop())

	r := gin.New()
	r.GET("/ws", ServeWS(hub, store, registry, quoteSvc, "*", zerolog.Nop()))

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server) *gorilla.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := gorilla.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func send(t *testing.T, conn *gorilla.Conn, event string, data interface{}) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(models.WSMessage{Event: event, Data: data}))
}

// readEvent reads until the wanted event arrives, skipping interleaved
// broadcasts meant for everyone.
func readEvent(t *testing.T, conn *gorilla.Conn, want string) json.RawMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	for {
		var env envelope
		require.NoError(t, conn.ReadJSON(&env))
		if env.Event == want {
			return env.Data
		}
	}
}

func TestConnectReceivesFullSnapshot(t *testing.T) {
	srv := newTestServer(t)
	conn := dial(t, srv)

	var state models.LedgerState
	require.NoError(t, json.Unmarshal(readEvent(t, conn, models.EventInitialState), &state))

	assert.Equal(t, 10500000.0, state.UserFunds["復忠"].Available)
	assert.Equal(t, 15000000.0, state.UserFunds["信全"].Available)
	assert.Len(t, state.Holdings, 2)
	assert.Len(t, state.Warnings, 1)
	assert.Equal(t, 100000000.0, state.TeamStats.InitialAssets)
}

func TestIdentifyBroadcastsMembershipOnce(t *testing.T) {
	srv := newTestServer(t)

	conn1 := dial(t, srv)
	readEvent(t, conn1, models.EventInitialState)
	send(t, conn1, models.EventSetUser, "復忠")

	var members []string
	require.NoError(t, json.Unmarshal(readEvent(t, conn1, models.EventActiveUsers), &members))
	assert.Equal(t, []string{"復忠"}, members)

	conn2 := dial(t, srv)
	readEvent(t, conn2, models.EventInitialState)

	// A repeated identify must not change or re-announce membership, so the
	// next announcement either observer sees is the one for 信全 joining.
	send(t, conn1, models.EventSetUser, "復忠")
	send(t, conn2, models.EventSetUser, "信全")

	require.NoError(t, json.Unmarshal(readEvent(t, conn1, models.EventActiveUsers), &members))
	assert.Equal(t, []string{"信全", "復忠"}, members)
}

func TestTradeBroadcastsActivity(t *testing.T) {
	srv := newTestServer(t)

	conn1 := dial(t, srv)
	readEvent(t, conn1, models.EventInitialState)
	send(t, conn1, models.EventSetUser, "復忠")
	readEvent(t, conn1, models.EventActiveUsers)

	conn2 := dial(t, srv)
	readEvent(t, conn2, models.EventInitialState)

	send(t, conn1, models.EventMakeTrade, models.TradeOrder{
		Type: models.TradeBuy, Code: "2330", Name: "台積電",
		Quantity: 1, Price: 550, Owner: "復忠",
	})

	var activity models.Activity
	require.NoError(t, json.Unmarshal(readEvent(t, conn2, models.EventNewActivity), &activity))
	assert.Equal(t, "復忠", activity.User)
	assert.Contains(t, activity.Action, "買入台積電(2330)")

	require.NoError(t, json.Unmarshal(readEvent(t, conn1, models.EventNewActivity), &activity))
	assert.Contains(t, activity.Action, "買入")
}

func TestTradeErrorIsUnicast(t *testing.T) {
	srv := newTestServer(t)

	conn1 := dial(t, srv)
	readEvent(t, conn1, models.EventInitialState)
	send(t, conn1, models.EventSetUser, "復忠")
	readEvent(t, conn1, models.EventActiveUsers)

	conn2 := dial(t, srv)
	readEvent(t, conn2, models.EventInitialState)

	// Oversell: rejected, only the submitter hears about it.
	send(t, conn1, models.EventMakeTrade, models.TradeOrder{
		Type: models.TradeSell, Code: "2330", Name: "台積電",
		Quantity: 99, Price: 580, Owner: "復忠",
	})

	var payload struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(readEvent(t, conn1, models.EventTradeError), &payload))
	assert.Equal(t, ledger.ErrInsufficientHoldings.Error(), payload.Message)

	// The observer's next message is the activity for a later valid trade,
	// proving the rejection never reached it.
	send(t, conn1, models.EventMakeTrade, models.TradeOrder{
		Type: models.TradeBuy, Code: "2330", Name: "台積電",
		Quantity: 1, Price: 550, Owner: "復忠",
	})
	var env envelope
	require.NoError(t, conn2.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn2.ReadJSON(&env))
	assert.Equal(t, models.EventNewActivity, env.Event)
}

func TestSearchReturnsQuoteAndLogsActivity(t *testing.T) {
	srv := newTestServer(t)

	conn := dial(t, srv)
	readEvent(t, conn, models.EventInitialState)
	send(t, conn, models.EventSetUser, "信全")
	readEvent(t, conn, models.EventActiveUsers)

	send(t, conn, models.EventSearchStock, "台積電")

	var quote models.Quote
	require.NoError(t, json.Unmarshal(readEvent(t, conn, models.EventSearchResult), &quote))
	assert.Equal(t, "2330", quote.Code)
	assert.Equal(t, 580.0, quote.Price)

	var activity models.Activity
	require.NoError(t, json.Unmarshal(readEvent(t, conn, models.EventNewActivity), &activity))
	assert.Equal(t, "信全", activity.User)
	assert.Equal(t, "搜尋股票: 台積電", activity.Action)
}

func TestDisconnectPrunesMembership(t *testing.T) {
	srv := newTestServer(t)

	conn1 := dial(t, srv)
	readEvent(t, conn1, models.EventInitialState)
	send(t, conn1, models.EventSetUser, "復忠")
	readEvent(t, conn1, models.EventActiveUsers)

	conn2 := dial(t, srv)
	readEvent(t, conn2, models.EventInitialState)
	send(t, conn2, models.EventSetUser, "信全")

	var members []string
	require.NoError(t, json.Unmarshal(readEvent(t, conn2, models.EventActiveUsers), &members))
	assert.Equal(t, []string{"信全", "復忠"}, members)

	conn1.Close()

	require.NoError(t, json.Unmarshal(readEvent(t, conn2, models.EventActiveUsers), &members))
	assert.Equal(t, []string{"信全"}, members)
}
