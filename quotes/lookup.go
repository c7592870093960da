// Package quotes answers free-text instrument searches. The real system
// would call out to a market-data provider; this implementation stands in
// for it with a deterministic classifier behind a simulated network delay.
package quotes

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ergeargwer/investment-competition-platform-v2/models"
)

// Service is the contract the rest of the system depends on: a query goes
// in, a best-effort quote comes back some bounded time later. The lookup
// never touches the ledger.
type Service interface {
	Lookup(ctx context.Context, query string) (models.Quote, error)
}

// DefaultDelay models provider latency when none is configured.
const DefaultDelay = 500 * time.Millisecond

// Simulated recognizes the two seed instruments and falls back to 聯發科
// for anything else, mirroring the classifier the frontend was built
// against.
type Simulated struct {
	delay time.Duration
	log   zerolog.Logger
}

func NewSimulated(delay time.Duration, log zerolog.Logger) *Simulated {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Simulated{
		delay: delay,
		log:   log.With().Str("component", "quotes").Logger(),
	}
}

func (s *Simulated) Lookup(ctx context.Context, query string) (models.Quote, error) {
	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return models.Quote{}, ctx.Err()
	case <-timer.C:
	}

	quote := classify(query)
	s.log.Debug().Str("query", query).Str("code", quote.Code).Msg("quote resolved")
	return quote, nil
}

func classify(query string) models.Quote {
	if strings.Contains(query, "台積") || query == "2330" {
		return models.Quote{Code: "2330", Name: "台積電", Price: 580.0, Volume: 15000}
	}
	return models.Quote{Code: "2454", Name: "聯發科", Price: 1100.0, Volume: 8500}
}
