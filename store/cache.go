package store

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_cache_hits_total",
			Help: "Number of store cache hits",
		},
		[]string{"collection"},
	)

	cacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_cache_misses_total",
			Help: "Number of store cache misses",
		},
		[]string{"collection"},
	)
)

// Collection names a cached document collection for Invalidate.
type Collection string

const (
	Users   Collection = "users"
	Teams   Collection = "teams"
	Dailies Collection = "dailys"
)

// CachedStore is a read-through, write-through cache in front of
// another Store. Every Save/Update lands in both the backing store and
// the cache; reads are served from the cache and fall through on a
// miss. Safe for concurrent request handlers.
type CachedStore struct {
	backing Store

	mu      sync.RWMutex
	users   map[string]*User
	teams   map[string]*Team
	dailies map[string]*Daily
}

// NewCachedStore wraps a backing store. Call Warm after Connect to
// preload the collections.
func NewCachedStore(backing Store) *CachedStore {
	return &CachedStore{
		backing: backing,
		users:   map[string]*User{},
		teams:   map[string]*Team{},
		dailies: map[string]*Daily{},
	}
}

func (s *CachedStore) Connect(ctx context.Context) error { return s.backing.Connect(ctx) }
func (s *CachedStore) Close(ctx context.Context) error   { return s.backing.Close(ctx) }

// Warm preloads every collection from the backing store.
func (s *CachedStore) Warm(ctx context.Context) error {
	users, err := s.backing.ListUsers(ctx)
	if err != nil {
		return errors.Wrap(err, "warm users")
	}
	teams, err := s.backing.ListTeams(ctx)
	if err != nil {
		return errors.Wrap(err, "warm teams")
	}
	dailies, err := s.backing.ListDailies(ctx, "")
	if err != nil {
		return errors.Wrap(err, "warm dailies")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range users {
		s.users[u.ID] = u
	}
	for _, t := range teams {
		s.teams[t.ID] = t
	}
	for _, d := range dailies {
		s.dailies[d.ID] = d
	}
	return nil
}

// Invalidate drops one collection from the cache. The next read falls
// through to the backing store.
func (s *CachedStore) Invalidate(collection Collection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch collection {
	case Users:
		s.users = map[string]*User{}
	case Teams:
		s.teams = map[string]*Team{}
	case Dailies:
		s.dailies = map[string]*Daily{}
	}
}

func (s *CachedStore) SaveUser(ctx context.Context, user *User) error {
	if err := s.backing.SaveUser(ctx, user); err != nil {
		return err
	}
	s.mu.Lock()
	s.users[user.ID] = user
	s.mu.Unlock()
	return nil
}

func (s *CachedStore) GetUser(ctx context.Context, userID string) (*User, error) {
	s.mu.RLock()
	user, ok := s.users[userID]
	s.mu.RUnlock()
	if ok {
		cacheHits.WithLabelValues(string(Users)).Inc()
		return user, nil
	}
	cacheMisses.WithLabelValues(string(Users)).Inc()

	user, err := s.backing.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.users[user.ID] = user
	s.mu.Unlock()
	return user, nil
}

func (s *CachedStore) ListUsers(ctx context.Context) ([]*User, error) {
	return s.backing.ListUsers(ctx)
}

func (s *CachedStore) UpdateUserJiraKeys(ctx context.Context, userID string, jiraKeys []string) error {
	if err := s.backing.UpdateUserJiraKeys(ctx, userID, jiraKeys); err != nil {
		return err
	}
	s.mu.Lock()
	if user, ok := s.users[userID]; ok {
		updated := *user
		updated.JiraKeys = jiraKeys
		s.users[userID] = &updated
	}
	s.mu.Unlock()
	return nil
}

func (s *CachedStore) SaveTeam(ctx context.Context, team *Team) error {
	if err := s.backing.SaveTeam(ctx, team); err != nil {
		return err
	}
	s.mu.Lock()
	s.teams[team.ID] = team
	s.mu.Unlock()
	return nil
}

func (s *CachedStore) GetTeam(ctx context.Context, name string) (*Team, error) {
	s.mu.RLock()
	team, ok := s.teams[name]
	s.mu.RUnlock()
	if ok {
		cacheHits.WithLabelValues(string(Teams)).Inc()
		return team, nil
	}
	cacheMisses.WithLabelValues(string(Teams)).Inc()

	team, err := s.backing.GetTeam(ctx, name)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.teams[team.ID] = team
	s.mu.Unlock()
	return team, nil
}

func (s *CachedStore) ListTeams(ctx context.Context) ([]*Team, error) {
	return s.backing.ListTeams(ctx)
}

// Dailies are mutated by handlers (SetReport) before being saved back,
// so the cache stores and serves deep copies. A caller's mutation can
// then never reach the cache except through a successful SaveDaily.
func (s *CachedStore) SaveDaily(ctx context.Context, daily *Daily) error {
	if err := s.backing.SaveDaily(ctx, daily); err != nil {
		return err
	}
	s.mu.Lock()
	s.dailies[daily.ID] = daily.Clone()
	s.mu.Unlock()
	return nil
}

func (s *CachedStore) GetDaily(ctx context.Context, team, date string) (*Daily, error) {
	if date == "" {
		date = Today()
	}
	s.mu.RLock()
	daily, ok := s.dailies[DailyID(date, team)]
	s.mu.RUnlock()
	if ok {
		cacheHits.WithLabelValues(string(Dailies)).Inc()
		return daily.Clone(), nil
	}
	cacheMisses.WithLabelValues(string(Dailies)).Inc()

	// GetDaily never misses in the backing store: it synthesizes an
	// empty daily. Only a stored one is worth caching.
	daily, err := s.backing.GetDaily(ctx, team, date)
	if err != nil {
		return nil, err
	}
	if len(daily.Reports) > 0 {
		s.mu.Lock()
		s.dailies[daily.ID] = daily.Clone()
		s.mu.Unlock()
	}
	return daily, nil
}

func (s *CachedStore) ListDailies(ctx context.Context, date string) ([]*Daily, error) {
	return s.backing.ListDailies(ctx, date)
}
