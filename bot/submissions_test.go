package bot

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IamTugy/DailyBot/store"
)

const configPayload = `{
	"team": {"id": "T1", "domain": "acme"},
	"user": {"id": "U123", "name": "dev"},
	"view": {
		"state": {
			"values": {
				"select-user-team": {"select-user-team": {"selected_option": {"value": "platform"}}},
				"jira-server-url": {"jira-server-url": {"value": "https://acme.atlassian.net"}},
				"jira-email": {"jira-email": {"value": "dev@acme.io"}},
				"jira-api-token": {"jira-api-token": {"value": "secret"}},
				"jira-host-type": {"jira-host-type": {"selected_option": {"value": "%s"}}}
			}
		}
	}
}`

func TestUserFromConfigPayload(t *testing.T) {
	user, err := UserFromConfigPayload([]byte(fmt.Sprintf(configPayload, store.JiraHostLocal)))
	require.NoError(t, err)

	assert.Equal(t, "U123", user.ID)
	assert.Equal(t, "platform", user.Team)
	assert.Equal(t, "https://acme.atlassian.net", user.JiraServerURL)
	assert.Equal(t, "dev@acme.io", user.JiraEmail)
	assert.Equal(t, "secret", user.JiraAPIToken)
	assert.Equal(t, store.JiraHostLocal, user.JiraHostType)
	assert.Equal(t, store.SlackUserData{
		TeamID:     "T1",
		TeamDomain: "acme",
		UserID:     "U123",
		UserName:   "dev",
	}, user.SlackData)
}

func TestUserFromConfigPayloadDefaultsHostType(t *testing.T) {
	user, err := UserFromConfigPayload([]byte(fmt.Sprintf(configPayload, "")))
	require.NoError(t, err)
	assert.Equal(t, store.JiraHostCloud, user.JiraHostType)
}

func TestUserFromConfigPayloadMissingField(t *testing.T) {
	payload := `{
		"user": {"id": "U123"},
		"view": {
			"state": {
				"values": {
					"select-user-team": {"select-user-team": {"selected_option": {"value": "platform"}}},
					"jira-email": {"jira-email": {"value": "dev@acme.io"}},
					"jira-api-token": {"jira-api-token": {"value": "secret"}}
				}
			}
		}
	}`
	_, err := UserFromConfigPayload([]byte(payload))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jira server")
}

func TestSelectedBoardKeys(t *testing.T) {
	payload := `{
		"actions": [
			{"action_id": "something-else", "selected_options": [{"value": "NOPE"}]},
			{"action_id": "select-user-board", "selected_options": [{"value": "EDGE"}, {"value": "ULT"}]}
		]
	}`
	assert.Equal(t, []string{"EDGE", "ULT"}, SelectedBoardKeys([]byte(payload)))
	assert.Nil(t, SelectedBoardKeys([]byte(`{"actions": []}`)))
}

func TestTypedBoardKeys(t *testing.T) {
	payload := `{
		"view": {
			"state": {
				"values": {
					"type-or-select-user-board": {"type-user-board": {"value": "edge, ULT ,,tools"}}
				}
			}
		}
	}`
	assert.Equal(t, []string{"EDGE", "ULT", "TOOLS"}, TypedBoardKeys([]byte(payload)))
	assert.Nil(t, TypedBoardKeys([]byte(`{}`)))
}

func TestParseSubmission(t *testing.T) {
	payload := `{
		"view": {
			"state": {
				"values": {
					"EDGE-1|actions-issue-daily-form": {
						"select-status-issue-daily-form": {"selected_option": {"value": "In Review"}},
						"ignore-issue-in-daily-form": {"selected_options": []}
					},
					"EDGE-1|issue-summary": {"issue-summary": {"value": "almost done"}},
					"EDGE-2|actions-issue-daily-form": {
						"select-status-issue-daily-form": {"selected_option": {"value": "To Do"}},
						"ignore-issue-in-daily-form": {"selected_options": [{"value": "ignore-issue"}]}
					},
					"EDGE-2|issue-summary": {"issue-summary": {"value": ""}},
					"general-comments": {"general-comments": {"value": "blocked on infra"}}
				}
			}
		}
	}`

	submission := ParseSubmission([]byte(payload))

	assert.Equal(t, "blocked on infra", submission.GeneralComments)
	require.Len(t, submission.Issues, 2)

	first := submission.Issues["EDGE-1"]
	require.NotNil(t, first)
	assert.Equal(t, "In Review", first.Status)
	assert.Equal(t, "almost done", first.Details)
	assert.False(t, first.Ignored)

	second := submission.Issues["EDGE-2"]
	require.NotNil(t, second)
	assert.Equal(t, "To Do", second.Status)
	assert.Empty(t, second.Details)
	assert.True(t, second.Ignored)
}

func TestParseSubmissionEmpty(t *testing.T) {
	submission := ParseSubmission([]byte(`{"view": {"state": {"values": {}}}}`))
	assert.Empty(t, submission.Issues)
	assert.Empty(t, submission.GeneralComments)
}
