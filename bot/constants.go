package bot

import "strings"

// Slash commands handled by the bot.
const (
	DailyCommand     = "/daily"
	AddTeamCommand   = "/add-team"
	PostDailyCommand = "/post-daily"
)

// Callback ids of the documents the bot opens.
const (
	DailyModalSubmission = "daily-modal-submission"
)

// Action and block identifiers. Interaction payloads arrive keyed by
// these, so they must match between the builders and the submission
// parsing.
const (
	ActionsIssueDailyForm      = "actions-issue-daily-form"
	IgnoreIssueInDailyForm     = "ignore-issue-in-daily-form"
	SelectStatusIssueDailyForm = "select-status-issue-daily-form"
	IssueLinkAction            = "issue-link"
	IssueSummaryAction         = "issue-summary"
	GeneralCommentsAction      = "general-comments"
	OpenInJiraAction           = "open-in-jira"

	SaveUserConfigurations = "save-user-configurations"
	SelectUserTeam         = "select-user-team"
	JiraServerAction       = "jira-server-url"
	JiraEmailAction        = "jira-email"
	JiraAPITokenAction     = "jira-api-token"
	JiraHostTypeAction     = "jira-host-type"

	SelectUserBoard       = "select-user-board"
	TypeUserBoard         = "type-user-board"
	TypeOrSelectUserBoard = "type-or-select-user-board"
	SaveUserBoard         = "save-user-board"
)

// maxSelectorOptions is the platform cap on options in one select menu.
// Sites with more projects than this get a typed input instead.
const maxSelectorOptions = 100

// maxModalIssues caps how many issues fit a daily modal, so the block
// count stays inside the 100 block document limit.
const maxModalIssues = 15

const bulkIDSeparator = "|"

// bulkID builds the per-issue block identifier "<issue key>|<action>"
// used to route submitted values back to their issue.
func bulkID(key, action string) string {
	return key + bulkIDSeparator + action
}

// splitBulkID is the inverse of bulkID. ok is false for plain block ids.
func splitBulkID(blockID string) (key, action string, ok bool) {
	key, action, ok = strings.Cut(blockID, bulkIDSeparator)
	return key, action, ok
}
