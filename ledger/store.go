package ledger

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/ergeargwer/investment-competition-platform-v2/models"
)

// maxActivities bounds the in-memory activity log; the oldest entries are
// dropped once the cap is reached.
const maxActivities = 200

const timeLayout = "2006-01-02 15:04"

// Store owns the shared ledger. It is the only mutable shared resource in
// the process: every mutation goes through ExecuteTrade or RecordSearch
// under one mutex, so trades are serialized and always commit atomically.
type Store struct {
	mu      sync.Mutex
	state   models.LedgerState
	entropy io.Reader
	now     func() time.Time
	log     zerolog.Logger
}

// NewStore builds a store seeded with the opening ledger.
func NewStore(log zerolog.Logger) *Store {
	var seed int64
	_ = binary.Read(cryptoRand.Reader, binary.LittleEndian, &seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Store{
		state: SeedState(),
		// Monotonic entropy keeps activity ids lexicographically increasing
		// even within the same millisecond.
		entropy: ulid.Monotonic(rand.New(rand.NewSource(seed)), 0),
		now:     time.Now,
		log:     log.With().Str("component", "ledger").Logger(),
	}
}

// newID must be called with the mutex held.
func (s *Store) newID() string {
	id, err := ulid.New(ulid.Timestamp(s.now().UTC()), s.entropy)
	if err != nil {
		panic(err)
	}
	return id.String()
}

// prependActivity must be called with the mutex held.
func (s *Store) prependActivity(user, action string) models.Activity {
	activity := models.Activity{
		ID:     s.newID(),
		Time:   s.now().Format(timeLayout),
		User:   user,
		Action: action,
	}
	s.state.Activities = append([]models.Activity{activity}, s.state.Activities...)
	if len(s.state.Activities) > maxActivities {
		s.state.Activities = s.state.Activities[:maxActivities]
	}
	return activity
}

// Snapshot returns a deep copy of the full ledger state.
func (s *Store) Snapshot() models.LedgerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyState(s.state)
}

// ExecuteTrade validates and commits one buy or sell order. On success the
// whole mutation is visible at once and the returned activity describes it;
// on failure the ledger is untouched.
func (s *Store) ExecuteTrade(order models.TradeOrder) (models.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := validateOrder(&s.state, order); err != nil {
		s.log.Warn().Str("owner", order.Owner).Str("code", order.Code).
			Err(err).Msg("trade rejected")
		return models.Activity{}, err
	}

	var action string
	switch order.Type {
	case models.TradeBuy:
		if err := applyBuy(&s.state, order, s.newID); err != nil {
			s.log.Warn().Str("owner", order.Owner).Str("code", order.Code).
				Err(err).Msg("trade rejected")
			return models.Activity{}, err
		}
		action = fmt.Sprintf("買入%s(%s) %d張，價格%v元", order.Name, order.Code, order.Quantity, order.Price)
	case models.TradeSell:
		if _, err := applySell(&s.state, order); err != nil {
			s.log.Warn().Str("owner", order.Owner).Str("code", order.Code).
				Err(err).Msg("trade rejected")
			return models.Activity{}, err
		}
		action = fmt.Sprintf("賣出%s(%s) %d張，價格%v元", order.Name, order.Code, order.Quantity, order.Price)
	}

	activity := s.prependActivity(order.Owner, action)
	s.log.Info().Str("owner", order.Owner).Str("code", order.Code).
		Str("type", order.Type).Int("quantity", order.Quantity).
		Msg("trade committed")
	return activity, nil
}

// RecordSearch appends an activity for a completed quote search. Searches
// never mutate funds or holdings.
func (s *Store) RecordSearch(user, query string) models.Activity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prependActivity(user, fmt.Sprintf("搜尋股票: %s", query))
}

func copyState(state models.LedgerState) models.LedgerState {
	out := state
	out.UserFunds = make(map[string]models.Funds, len(state.UserFunds))
	for user, funds := range state.UserFunds {
		out.UserFunds[user] = funds
	}
	out.Holdings = append([]models.Holding(nil), state.Holdings...)
	out.Activities = append([]models.Activity(nil), state.Activities...)
	out.Warnings = append([]models.Warning(nil), state.Warnings...)
	return out
}
