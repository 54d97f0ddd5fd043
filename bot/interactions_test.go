package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IamTugy/DailyBot/jira"
	"github.com/IamTugy/DailyBot/store"
)

func TestReportFromSubmission(t *testing.T) {
	byKey := map[string]jira.Issue{
		"EDGE-1": {
			Key:     "EDGE-1",
			Summary: "Fix the flaky test",
			Status:  "In Progress",
			Link:    "https://acme.atlassian.net/browse/EDGE-1",
		},
		"EDGE-2": {
			Key:     "EDGE-2",
			Summary: "Upgrade the driver",
			Status:  "To Do",
			Link:    "https://acme.atlassian.net/browse/EDGE-2",
		},
	}
	submission := Submission{
		GeneralComments: "blocked on infra",
		Issues: map[string]*IssueSubmission{
			"EDGE-1": {Key: "EDGE-1", Status: "In Review", Details: "almost there"},
			"EDGE-2": {Key: "EDGE-2", Ignored: true},
		},
	}

	report, changes, vanished := reportFromSubmission(submission, byKey)

	assert.Equal(t, "blocked on infra", report.GeneralComments)
	assert.Empty(t, vanished)
	require.Len(t, report.IssueReports, 1)
	assert.Equal(t, store.DailyIssueReport{
		Key:     "EDGE-1",
		Status:  "In Review",
		Details: "almost there",
		Link:    "https://acme.atlassian.net/browse/EDGE-1",
		Summary: "Fix the flaky test",
	}, report.IssueReports[0])
	assert.Equal(t, []statusChange{{key: "EDGE-1", status: "In Review"}}, changes)
}

func TestReportFromSubmissionKeepsCurrentStatus(t *testing.T) {
	byKey := map[string]jira.Issue{
		"EDGE-1": {Key: "EDGE-1", Summary: "Fix the flaky test", Status: "In Progress"},
	}
	submission := Submission{Issues: map[string]*IssueSubmission{
		"EDGE-1": {Key: "EDGE-1", Details: "still at it"},
	}}

	report, changes, _ := reportFromSubmission(submission, byKey)

	require.Len(t, report.IssueReports, 1)
	assert.Equal(t, "In Progress", report.IssueReports[0].Status)
	assert.Empty(t, changes, "unchanged status must not trigger a transition")
}

func TestReportFromSubmissionDropsVanishedIssues(t *testing.T) {
	byKey := map[string]jira.Issue{
		"EDGE-1": {Key: "EDGE-1", Summary: "Fix the flaky test", Status: "In Progress"},
	}
	submission := Submission{Issues: map[string]*IssueSubmission{
		"EDGE-1": {Key: "EDGE-1", Status: "In Review"},
		// Closed or reassigned between opening the modal and submitting.
		"EDGE-9": {Key: "EDGE-9", Status: "Done", Details: "was finished"},
	}}

	report, changes, vanished := reportFromSubmission(submission, byKey)

	assert.Equal(t, []string{"EDGE-9"}, vanished)
	require.Len(t, report.IssueReports, 1)
	assert.Equal(t, "EDGE-1", report.IssueReports[0].Key)
	assert.Equal(t, []statusChange{{key: "EDGE-1", status: "In Review"}}, changes)

	// Every stored line carries tracker data, so the rich digest builds.
	daily := store.NewDaily("platform", "2024-05-01")
	daily.SetReport("U123", report)
	_, err := DailyDigestMessage(daily, true)
	assert.NoError(t, err)
}
