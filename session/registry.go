// Package session tracks which participants currently have an identified
// connection. Membership is a set: identifying twice changes nothing, and a
// participant leaves the set only when their last connection goes away.
package session

import (
	"sort"
	"sync"

	"github.com/rs/zerolog"
)

type Registry struct {
	mu   sync.Mutex
	refs map[string]int
	log  zerolog.Logger
}

func NewRegistry(log zerolog.Logger) *Registry {
	return &Registry{
		refs: make(map[string]int),
		log:  log.With().Str("component", "session").Logger(),
	}
}

// Join adds one connection for the participant and reports whether the set
// composition changed.
func (r *Registry) Join(user string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.refs[user]++
	if r.refs[user] == 1 {
		r.log.Info().Str("user", user).Msg("participant joined")
		return true
	}
	return false
}

// Leave drops one connection for the participant, pruning them from the set
// once no connections remain. Reports whether the set composition changed.
func (r *Registry) Leave(user string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.refs[user] == 0 {
		return false
	}
	r.refs[user]--
	if r.refs[user] == 0 {
		delete(r.refs, user)
		r.log.Info().Str("user", user).Msg("participant left")
		return true
	}
	return false
}

// Members returns the current participant set in a stable order.
func (r *Registry) Members() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	members := make([]string, 0, len(r.refs))
	for user := range r.refs {
		members = append(members, user)
	}
	sort.Strings(members)
	return members
}
