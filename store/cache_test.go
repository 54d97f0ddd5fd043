package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore counts calls so tests can tell cache hits from fall-throughs.
type fakeStore struct {
	users   map[string]*User
	teams   map[string]*Team
	dailies map[string]*Daily

	getUserCalls  int
	getTeamCalls  int
	getDailyCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:   map[string]*User{},
		teams:   map[string]*Team{},
		dailies: map[string]*Daily{},
	}
}

func (f *fakeStore) Connect(ctx context.Context) error { return nil }
func (f *fakeStore) Close(ctx context.Context) error   { return nil }

func (f *fakeStore) SaveUser(ctx context.Context, user *User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeStore) GetUser(ctx context.Context, userID string) (*User, error) {
	f.getUserCalls++
	user, ok := f.users[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return user, nil
}

func (f *fakeStore) ListUsers(ctx context.Context) ([]*User, error) {
	var out []*User
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeStore) UpdateUserJiraKeys(ctx context.Context, userID string, jiraKeys []string) error {
	user, ok := f.users[userID]
	if !ok {
		return ErrNotFound
	}
	user.JiraKeys = jiraKeys
	return nil
}

func (f *fakeStore) SaveTeam(ctx context.Context, team *Team) error {
	f.teams[team.ID] = team
	return nil
}

func (f *fakeStore) GetTeam(ctx context.Context, name string) (*Team, error) {
	f.getTeamCalls++
	team, ok := f.teams[name]
	if !ok {
		return nil, ErrNotFound
	}
	return team, nil
}

func (f *fakeStore) ListTeams(ctx context.Context) ([]*Team, error) {
	var out []*Team
	for _, t := range f.teams {
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeStore) SaveDaily(ctx context.Context, daily *Daily) error {
	f.dailies[daily.ID] = daily
	return nil
}

func (f *fakeStore) GetDaily(ctx context.Context, team, date string) (*Daily, error) {
	f.getDailyCalls++
	if date == "" {
		date = Today()
	}
	daily, ok := f.dailies[DailyID(date, team)]
	if !ok {
		return NewDaily(team, date), nil
	}
	return daily, nil
}

func (f *fakeStore) ListDailies(ctx context.Context, date string) ([]*Daily, error) {
	var out []*Daily
	for _, d := range f.dailies {
		if date == "" || d.Date == date {
			out = append(out, d)
		}
	}
	return out, nil
}

func TestCachedStoreWriteThrough(t *testing.T) {
	ctx := context.Background()
	backing := newFakeStore()
	cached := NewCachedStore(backing)

	user := NewUser("platform", "https://acme.atlassian.net", "token", "dev@acme.io",
		JiraHostCloud, SlackUserData{UserID: "U123", UserName: "dev"})
	require.NoError(t, cached.SaveUser(ctx, user))

	// Write landed in the backing store.
	assert.Contains(t, backing.users, "U123")

	// Read is served from the cache.
	got, err := cached.GetUser(ctx, "U123")
	require.NoError(t, err)
	assert.Equal(t, user, got)
	assert.Zero(t, backing.getUserCalls)
}

func TestCachedStoreReadThrough(t *testing.T) {
	ctx := context.Background()
	backing := newFakeStore()
	backing.teams["platform"] = NewTeam("platform", "C123")
	cached := NewCachedStore(backing)

	// First read misses and falls through.
	got, err := cached.GetTeam(ctx, "platform")
	require.NoError(t, err)
	assert.Equal(t, "C123", got.DailyChannel)
	assert.Equal(t, 1, backing.getTeamCalls)

	// Second read hits.
	_, err = cached.GetTeam(ctx, "platform")
	require.NoError(t, err)
	assert.Equal(t, 1, backing.getTeamCalls)
}

func TestCachedStoreMissPropagates(t *testing.T) {
	cached := NewCachedStore(newFakeStore())
	_, err := cached.GetUser(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCachedStoreWarm(t *testing.T) {
	ctx := context.Background()
	backing := newFakeStore()
	backing.users["U1"] = &User{ID: "U1", Team: "platform"}
	backing.teams["platform"] = NewTeam("platform", "C123")
	cached := NewCachedStore(backing)

	require.NoError(t, cached.Warm(ctx))

	_, err := cached.GetUser(ctx, "U1")
	require.NoError(t, err)
	_, err = cached.GetTeam(ctx, "platform")
	require.NoError(t, err)
	assert.Zero(t, backing.getUserCalls)
	assert.Zero(t, backing.getTeamCalls)
}

func TestCachedStoreInvalidate(t *testing.T) {
	ctx := context.Background()
	backing := newFakeStore()
	backing.teams["platform"] = NewTeam("platform", "C123")
	cached := NewCachedStore(backing)
	require.NoError(t, cached.Warm(ctx))

	cached.Invalidate(Teams)

	_, err := cached.GetTeam(ctx, "platform")
	require.NoError(t, err)
	assert.Equal(t, 1, backing.getTeamCalls)
}

func TestCachedStoreUpdateJiraKeys(t *testing.T) {
	ctx := context.Background()
	backing := newFakeStore()
	cached := NewCachedStore(backing)

	user := &User{ID: "U1", Team: "platform"}
	require.NoError(t, cached.SaveUser(ctx, user))
	require.NoError(t, cached.UpdateUserJiraKeys(ctx, "U1", []string{"EDGE", "ULT"}))

	got, err := cached.GetUser(ctx, "U1")
	require.NoError(t, err)
	assert.Equal(t, []string{"EDGE", "ULT"}, got.JiraKeys)
	assert.Zero(t, backing.getUserCalls)
}

// failingStore rejects every daily write, like a Mongo write concern
// failure would.
type failingStore struct {
	*fakeStore
}

func (f *failingStore) SaveDaily(ctx context.Context, daily *Daily) error {
	return errors.New("write concern failed")
}

func TestFailedSaveDailyDoesNotReachCache(t *testing.T) {
	ctx := context.Background()
	backing := newFakeStore()
	stored := NewDaily("platform", "2024-05-01")
	stored.SetReport("U999", DailyReport{GeneralComments: "earlier"})
	backing.dailies[stored.ID] = stored
	cached := NewCachedStore(&failingStore{fakeStore: backing})

	daily, err := cached.GetDaily(ctx, "platform", "2024-05-01")
	require.NoError(t, err)
	daily.SetReport("U123", DailyReport{GeneralComments: "rejected by the database"})
	require.Error(t, cached.SaveDaily(ctx, daily))

	again, err := cached.GetDaily(ctx, "platform", "2024-05-01")
	require.NoError(t, err)
	assert.NotContains(t, again.Reports, "U123")
	assert.Contains(t, again.Reports, "U999")
}

func TestGetDailyReturnsDetachedCopy(t *testing.T) {
	ctx := context.Background()
	cached := NewCachedStore(newFakeStore())

	daily := NewDaily("platform", "2024-05-01")
	daily.SetReport("U1", DailyReport{
		IssueReports: []DailyIssueReport{{Key: "EDGE-1", Status: "In Progress"}},
	})
	require.NoError(t, cached.SaveDaily(ctx, daily))

	first, err := cached.GetDaily(ctx, "platform", "2024-05-01")
	require.NoError(t, err)
	first.SetReport("U2", DailyReport{GeneralComments: "never saved"})
	first.Reports["U1"].IssueReports[0] = DailyIssueReport{Key: "MUTATED"}

	second, err := cached.GetDaily(ctx, "platform", "2024-05-01")
	require.NoError(t, err)
	assert.NotContains(t, second.Reports, "U2")
	assert.Equal(t, "EDGE-1", second.Reports["U1"].IssueReports[0].Key)
}

func TestGetDailySynthesizesEmpty(t *testing.T) {
	ctx := context.Background()
	cached := NewCachedStore(newFakeStore())

	daily, err := cached.GetDaily(ctx, "platform", "2024-05-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01|platform", daily.ID)
	assert.Empty(t, daily.Reports)
}

func TestDailyID(t *testing.T) {
	assert.Equal(t, "2024-05-01|platform", DailyID("2024-05-01", "platform"))
	d := NewDaily("platform", "")
	assert.Equal(t, DailyID(Today(), "platform"), d.ID)
}
