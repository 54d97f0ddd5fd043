package store

import (
	"fmt"
	"time"
)

// JiraHostType distinguishes Atlassian cloud sites from self-hosted
// servers.
type JiraHostType string

const (
	JiraHostCloud JiraHostType = "Cloud"
	JiraHostLocal JiraHostType = "Local"
)

// SlackUserData is the Slack identity captured when a user saves their
// configuration.
type SlackUserData struct {
	TeamID     string `bson:"team_id"`
	TeamDomain string `bson:"team_domain"`
	UserID     string `bson:"user_id"`
	UserName   string `bson:"user_name"`
}

// User is a configured bot user: their Slack identity, team membership
// and Jira credentials. The document id is the Slack user id.
type User struct {
	ID            string        `bson:"_id"`
	Team          string        `bson:"team"`
	JiraServerURL string        `bson:"jira_server_url"`
	JiraAPIToken  string        `bson:"jira_api_token"`
	JiraEmail     string        `bson:"jira_email"`
	JiraHostType  JiraHostType  `bson:"jira_host_type"`
	JiraKeys      []string      `bson:"jira_keys"`
	SlackData     SlackUserData `bson:"slack_data"`
}

// NewUser builds a user keyed by their Slack user id.
func NewUser(team, serverURL, apiToken, email string, hostType JiraHostType, slackData SlackUserData) *User {
	return &User{
		ID:            slackData.UserID,
		Team:          team,
		JiraServerURL: serverURL,
		JiraAPIToken:  apiToken,
		JiraEmail:     email,
		JiraHostType:  hostType,
		SlackData:     slackData,
	}
}

// Team is a reporting group with the channel its digests are posted to.
// The document id is the team name.
type Team struct {
	ID           string `bson:"_id"`
	Name         string `bson:"name"`
	DailyChannel string `bson:"daily_channel"`
}

// NewTeam builds a team keyed by its name.
func NewTeam(name, dailyChannel string) *Team {
	return &Team{ID: name, Name: name, DailyChannel: dailyChannel}
}

// DailyIssueReport is one issue's line in a user's daily report.
type DailyIssueReport struct {
	Key     string `bson:"key"`
	Status  string `bson:"status"`
	Details string `bson:"details"`
	Link    string `bson:"link"`
	Summary string `bson:"summary"`
}

// DailyReport is one user's submission for a day.
type DailyReport struct {
	IssueReports    []DailyIssueReport `bson:"issue_reports"`
	GeneralComments string             `bson:"general_comments"`
}

// Daily collects every user's report for one team and date. The
// document id is "<date>|<team>".
type Daily struct {
	ID      string                 `bson:"_id"`
	Team    string                 `bson:"team"`
	Date    string                 `bson:"date"`
	Reports map[string]DailyReport `bson:"reports"`
}

// DailyID formats the document id of a daily.
func DailyID(date, team string) string {
	return fmt.Sprintf("%s|%s", date, team)
}

// Today is the date key used for dailies, in UTC.
func Today() string {
	return time.Now().UTC().Format("2006-01-02")
}

// NewDaily builds an empty daily for a team and date. An empty date
// means today.
func NewDaily(team, date string) *Daily {
	if date == "" {
		date = Today()
	}
	return &Daily{
		ID:      DailyID(date, team),
		Team:    team,
		Date:    date,
		Reports: map[string]DailyReport{},
	}
}

// SetReport replaces one user's report in the daily.
func (d *Daily) SetReport(userID string, report DailyReport) {
	if d.Reports == nil {
		d.Reports = map[string]DailyReport{}
	}
	d.Reports[userID] = report
}

// Clone returns a deep copy. Handlers mutate dailies before saving them
// back, so anything held by a cache must not alias the caller's copy.
func (d *Daily) Clone() *Daily {
	out := &Daily{
		ID:      d.ID,
		Team:    d.Team,
		Date:    d.Date,
		Reports: make(map[string]DailyReport, len(d.Reports)),
	}
	for id, report := range d.Reports {
		report.IssueReports = append([]DailyIssueReport(nil), report.IssueReports...)
		out.Reports[id] = report
	}
	return out
}
