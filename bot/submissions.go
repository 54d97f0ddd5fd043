package bot

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"

	"github.com/IamTugy/DailyBot/store"
)

// This file extracts submitted form values from raw interaction
// payloads. The payloads are nested mappings keyed by the block and
// action identifiers the builders put into the documents; the document
// model itself never parses them.

// stateValue reads one input's value from view.state.values, which is
// keyed first by block id, then by action id.
func stateValue(payload []byte, blockID, actionID, leaf string) gjson.Result {
	path := fmt.Sprintf("view.state.values.%s.%s.%s", blockID, actionID, leaf)
	return gjson.GetBytes(payload, path)
}

// UserFromConfigPayload builds a User from the home tab configuration
// form plus the Slack identity carried on the payload envelope.
func UserFromConfigPayload(payload []byte) (*store.User, error) {
	team := stateValue(payload, SelectUserTeam, SelectUserTeam, "selected_option.value")
	server := stateValue(payload, JiraServerAction, JiraServerAction, "value")
	token := stateValue(payload, JiraAPITokenAction, JiraAPITokenAction, "value")
	email := stateValue(payload, JiraEmailAction, JiraEmailAction, "value")
	hostType := stateValue(payload, JiraHostTypeAction, JiraHostTypeAction, "selected_option.value")

	for name, value := range map[string]gjson.Result{
		"team":           team,
		"jira server":    server,
		"jira api token": token,
		"jira email":     email,
	} {
		if value.String() == "" {
			return nil, errors.Errorf("configuration form is missing %s", name)
		}
	}

	host := store.JiraHostType(hostType.String())
	if host == "" {
		host = store.JiraHostCloud
	}

	return store.NewUser(
		team.String(),
		server.String(),
		token.String(),
		email.String(),
		host,
		store.SlackUserData{
			TeamID:     gjson.GetBytes(payload, "team.id").String(),
			TeamDomain: gjson.GetBytes(payload, "team.domain").String(),
			UserID:     gjson.GetBytes(payload, "user.id").String(),
			UserName:   gjson.GetBytes(payload, "user.name").String(),
		},
	), nil
}

// SelectedBoardKeys reads the keys chosen in the board multi-select
// from a block_actions payload.
func SelectedBoardKeys(payload []byte) []string {
	query := fmt.Sprintf(`actions.#(action_id=="%s").selected_options.#.value`, SelectUserBoard)
	var keys []string
	for _, value := range gjson.GetBytes(payload, query).Array() {
		keys = append(keys, value.String())
	}
	return keys
}

// TypedBoardKeys reads the comma separated key list typed into the
// board input, for sites with too many projects for a select menu.
func TypedBoardKeys(payload []byte) []string {
	raw := stateValue(payload, TypeOrSelectUserBoard, TypeUserBoard, "value").String()
	var keys []string
	for _, key := range strings.Split(raw, ",") {
		if key = strings.TrimSpace(key); key != "" {
			keys = append(keys, strings.ToUpper(key))
		}
	}
	return keys
}

// IssueSubmission is what the user submitted for one issue of the
// daily form.
type IssueSubmission struct {
	Key     string
	Status  string
	Details string
	Ignored bool
}

// Submission is a parsed daily modal submission.
type Submission struct {
	// Issues is keyed by issue key, pulled out of the bulk block ids.
	Issues          map[string]*IssueSubmission
	GeneralComments string
}

// ParseSubmission walks view.state.values of a daily modal submission.
// Per-issue blocks carry bulk ids of the form "<issue key>|<action>";
// everything else is addressed by its plain action id.
func ParseSubmission(payload []byte) Submission {
	submission := Submission{Issues: map[string]*IssueSubmission{}}

	issue := func(key string) *IssueSubmission {
		if s, ok := submission.Issues[key]; ok {
			return s
		}
		s := &IssueSubmission{Key: key}
		submission.Issues[key] = s
		return s
	}

	values := gjson.GetBytes(payload, "view.state.values")
	values.ForEach(func(blockID, actions gjson.Result) bool {
		key, action, ok := splitBulkID(blockID.String())
		if !ok {
			if blockID.String() == GeneralCommentsAction {
				submission.GeneralComments = actions.Get(GeneralCommentsAction + ".value").String()
			}
			return true
		}

		switch action {
		case IssueSummaryAction:
			issue(key).Details = actions.Get(IssueSummaryAction + ".value").String()
		case ActionsIssueDailyForm:
			issue(key).Status = actions.Get(SelectStatusIssueDailyForm + ".selected_option.value").String()
			ignored := actions.Get(IgnoreIssueInDailyForm + ".selected_options")
			issue(key).Ignored = ignored.IsArray() && len(ignored.Array()) > 0
		}
		return true
	})

	return submission
}
