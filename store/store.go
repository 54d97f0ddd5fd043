package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get* operations when no document matches.
var ErrNotFound = errors.New("store: not found")

// Store persists users, teams and dailies.
type Store interface {
	Connect(ctx context.Context) error
	Close(ctx context.Context) error

	SaveUser(ctx context.Context, user *User) error
	GetUser(ctx context.Context, userID string) (*User, error)
	ListUsers(ctx context.Context) ([]*User, error)
	UpdateUserJiraKeys(ctx context.Context, userID string, jiraKeys []string) error

	SaveTeam(ctx context.Context, team *Team) error
	GetTeam(ctx context.Context, name string) (*Team, error)
	ListTeams(ctx context.Context) ([]*Team, error)

	SaveDaily(ctx context.Context, daily *Daily) error
	// GetDaily returns the stored daily for the team and date, or a fresh
	// empty one when nothing was stored yet. An empty date means today.
	GetDaily(ctx context.Context, team, date string) (*Daily, error)
	ListDailies(ctx context.Context, date string) ([]*Daily, error)
}
