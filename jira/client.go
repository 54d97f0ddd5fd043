package jira

import (
	"context"
	"fmt"
	"strings"
	"time"

	v2 "github.com/ctreminiom/go-atlassian/jira/v2"
	"github.com/ctreminiom/go-atlassian/pkg/infra/models"
	"github.com/pkg/errors"

	"github.com/IamTugy/DailyBot/store"
)

const callTimeout = 4 * time.Second

// Issue is the slice of a Jira issue the bot works with.
type Issue struct {
	Key     string
	Summary string
	Status  string
	Link    string
	// Description is the issue description converted to markdown. May be
	// empty; callers display it truncated.
	Description string
}

// Project is a Jira project the user can pick as a board.
type Project struct {
	Key  string
	Name string
}

// Client is a per-user Jira client. Credentials live on the stored
// user, so every user talks to their own site with their own token.
type Client struct {
	api    *v2.Client
	server string
	keys   []string
}

// NewClient builds a client from the user's stored credentials.
func NewClient(user *store.User) (*Client, error) {
	if user.JiraServerURL == "" || user.JiraEmail == "" || user.JiraAPIToken == "" {
		return nil, errors.New("user has no jira credentials configured")
	}
	api, err := v2.New(nil, user.JiraServerURL)
	if err != nil {
		return nil, errors.Wrap(err, "create jira client")
	}
	api.Auth.SetBasicAuth(user.JiraEmail, user.JiraAPIToken)
	return &Client{
		api:    api,
		server: strings.TrimRight(user.JiraServerURL, "/"),
		keys:   user.JiraKeys,
	}, nil
}

// Permalink is the browse URL of an issue.
func (c *Client) Permalink(issueKey string) string {
	return fmt.Sprintf("%s/browse/%s", c.server, issueKey)
}

// assignedJQL selects the user's open issues across their boards, most
// recently updated first.
func assignedJQL(keys []string) string {
	jql := "assignee = currentUser() AND statusCategory != Done"
	if len(keys) > 0 {
		jql = fmt.Sprintf("assignee = currentUser() AND project IN (%s) AND statusCategory != Done",
			strings.Join(keys, ","))
	}
	return jql + " ORDER BY updated DESC"
}

// AssignedIssues returns the user's open issues on their boards.
func (c *Client) AssignedIssues(ctx context.Context) ([]Issue, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	result, response, err := c.api.Issue.Search.Get(ctx, assignedJQL(c.keys),
		[]string{"summary", "status", "description"}, []string{"renderedFields"}, 0, 50, "")
	if err != nil {
		if response != nil {
			return nil, errors.Wrapf(err, "search issues: %s (endpoint: %s)",
				response.Bytes.String(), response.Endpoint)
		}
		return nil, errors.Wrap(err, "search issues")
	}

	issues := make([]Issue, 0, len(result.Issues))
	for _, raw := range result.Issues {
		issue := Issue{
			Key:     raw.Key,
			Summary: raw.Fields.Summary,
			Link:    c.Permalink(raw.Key),
		}
		if raw.Fields.Status != nil {
			issue.Status = raw.Fields.Status.Name
		}
		issue.Description = DescriptionMarkdown(renderedDescription(response, raw.Key), raw.Fields.Description)
		issues = append(issues, issue)
	}
	return issues, nil
}

// Projects lists the projects visible to the user, for board selection.
func (c *Client) Projects(ctx context.Context) ([]Project, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	result, response, err := c.api.Project.Search(ctx, &models.ProjectSearchOptionsScheme{}, 0, 100)
	if err != nil {
		if response != nil {
			return nil, errors.Wrapf(err, "search projects: %s (endpoint: %s)",
				response.Bytes.String(), response.Endpoint)
		}
		return nil, errors.Wrap(err, "search projects")
	}

	projects := make([]Project, 0, len(result.Values))
	for _, p := range result.Values {
		projects = append(projects, Project{Key: p.Key, Name: p.Name})
	}
	return projects, nil
}

// AvailableStatuses returns the status names the issue can move to.
func (c *Client) AvailableStatuses(ctx context.Context, issueKey string) ([]string, error) {
	transitions, err := c.transitions(ctx, issueKey)
	if err != nil {
		return nil, err
	}
	statuses := make([]string, 0, len(transitions))
	for _, t := range transitions {
		if t.To != nil {
			statuses = append(statuses, t.To.Name)
		}
	}
	return statuses, nil
}

// TransitionTo moves the issue to the transition whose target status
// matches, ignoring case.
func (c *Client) TransitionTo(ctx context.Context, issueKey, statusName string) error {
	transitions, err := c.transitions(ctx, issueKey)
	if err != nil {
		return err
	}
	for _, t := range transitions {
		if t.To != nil && strings.EqualFold(t.To.Name, statusName) {
			ctx, cancel := context.WithTimeout(ctx, callTimeout)
			defer cancel()
			response, err := c.api.Issue.Move(ctx, issueKey, t.ID, nil)
			if err != nil {
				if response != nil {
					return errors.Wrapf(err, "transition %s: %s (endpoint: %s)",
						issueKey, response.Bytes.String(), response.Endpoint)
				}
				return errors.Wrapf(err, "transition %s", issueKey)
			}
			return nil
		}
	}
	return errors.Errorf("issue %s has no transition to status %q", issueKey, statusName)
}

func (c *Client) transitions(ctx context.Context, issueKey string) ([]*models.IssueTransitionScheme, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	issue, response, err := c.api.Issue.Get(ctx, issueKey, []string{"status"}, []string{"transitions"})
	if err != nil {
		if response != nil {
			return nil, errors.Wrapf(err, "get issue %s: %s (endpoint: %s)",
				issueKey, response.Bytes.String(), response.Endpoint)
		}
		return nil, errors.Wrapf(err, "get issue %s", issueKey)
	}
	return issue.Transitions, nil
}
