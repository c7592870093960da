package main

import (
	"os"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/ergeargwer/investment-competition-platform-v2/ledger"
	"github.com/ergeargwer/investment-competition-platform-v2/quotes"
	"github.com/ergeargwer/investment-competition-platform-v2/routes"
	"github.com/ergeargwer/investment-competition-platform-v2/session"
	"github.com/ergeargwer/investment-competition-platform-v2/websocket"
)

func main() {
	godotenv.Load()

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}
	allowedOrigin := os.Getenv("ALLOWED_ORIGIN")
	if allowedOrigin == "" {
		allowedOrigin = "*"
	}
	quoteDelay := quotes.DefaultDelay
	if ms := os.Getenv("QUOTE_DELAY_MS"); ms != "" {
		if parsed, err := strconv.Atoi(ms); err == nil && parsed > 0 {
			quoteDelay = time.Duration(parsed) * time.Millisecond
		}
	}

	store := ledger.NewStore(logger)
	registry := session.NewRegistry(logger)
	quoteSvc := quotes.NewSimulated(quoteDelay, logger)

	hub := websocket.NewHub(logger)
	go hub.Run()

	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	if allowedOrigin == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = []string{allowedOrigin}
	}
	r.Use(cors.New(corsConfig))

	routes.WebSocketRoutes(r, hub, store, registry, quoteSvc, allowedOrigin, logger)

	logger.Info().Str("port", port).Str("origin", allowedOrigin).Msg("server starting")
	if err := r.Run(":" + port); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
