package bot

import (
	"context"
	"sort"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/slack-go/slack"

	"github.com/IamTugy/DailyBot/jira"
	"github.com/IamTugy/DailyBot/store"
)

func (b *Bot) handleInteraction(ctx context.Context, callback slack.InteractionCallback, payload []byte) error {
	switch callback.Type {
	case slack.InteractionTypeBlockActions:
		return b.handleBlockActions(ctx, callback, payload)
	case slack.InteractionTypeViewSubmission:
		if callback.View.CallbackID == DailyModalSubmission {
			return b.handleDailySubmission(ctx, callback, payload)
		}
	}
	return nil
}

func (b *Bot) handleBlockActions(ctx context.Context, callback slack.InteractionCallback, payload []byte) error {
	for _, action := range callback.ActionCallback.BlockActions {
		switch action.ActionID {
		case SaveUserConfigurations:
			user, err := UserFromConfigPayload(payload)
			if err != nil {
				return err
			}
			if err := b.store.SaveUser(ctx, user); err != nil {
				return err
			}
			b.log.WithField("user", user.ID).Info("user configuration saved")
			return b.publishHome(ctx, callback.User.ID)

		case SelectUserBoard:
			return b.saveBoards(ctx, callback.User.ID, SelectedBoardKeys(payload))

		case SaveUserBoard:
			return b.saveBoards(ctx, callback.User.ID, TypedBoardKeys(payload))
		}
		// Link buttons and in-form selects only need the ack; their state
		// is read on save or submit.
	}
	return nil
}

func (b *Bot) saveBoards(ctx context.Context, userID string, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := b.store.UpdateUserJiraKeys(ctx, userID, keys); err != nil {
		return err
	}
	b.log.WithFields(logrus.Fields{"user": userID, "boards": keys}).Info("jira boards saved")
	return b.publishHome(ctx, userID)
}

// statusChange is one issue transition requested by a submission.
type statusChange struct {
	key    string
	status string
}

// reportFromSubmission builds the stored report from a parsed submission
// and the freshly fetched issues. A submitted key no longer among the
// fetched issues means the issue was closed or reassigned between
// opening the modal and submitting it; its line is dropped, since a
// report line without tracker data cannot be rendered into the digest.
func reportFromSubmission(submission Submission, byKey map[string]jira.Issue) (store.DailyReport, []statusChange, []string) {
	keys := make([]string, 0, len(submission.Issues))
	for key := range submission.Issues {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	report := store.DailyReport{GeneralComments: submission.GeneralComments}
	var changes []statusChange
	var vanished []string

	for _, key := range keys {
		submitted := submission.Issues[key]
		if submitted.Ignored {
			continue
		}
		issue, ok := byKey[key]
		if !ok {
			vanished = append(vanished, key)
			continue
		}

		status := submitted.Status
		if status == "" {
			status = issue.Status
		}
		report.IssueReports = append(report.IssueReports, store.DailyIssueReport{
			Key:     key,
			Status:  status,
			Details: submitted.Details,
			Link:    issue.Link,
			Summary: issue.Summary,
		})
		if submitted.Status != "" && submitted.Status != issue.Status {
			changes = append(changes, statusChange{key: key, status: submitted.Status})
		}
	}
	return report, changes, vanished
}

// handleDailySubmission turns a submitted daily modal into a stored
// report, transitions the issues whose status changed and posts the
// team digest.
func (b *Bot) handleDailySubmission(ctx context.Context, callback slack.InteractionCallback, payload []byte) error {
	submission := ParseSubmission(payload)

	user, err := b.store.GetUser(ctx, callback.User.ID)
	if err != nil {
		return errors.Wrapf(err, "submitting user %s", callback.User.ID)
	}
	client, err := jira.NewClient(user)
	if err != nil {
		return err
	}
	issues, err := client.AssignedIssues(ctx)
	if err != nil {
		return err
	}
	byKey := map[string]jira.Issue{}
	for _, issue := range issues {
		byKey[issue.Key] = issue
	}

	report, changes, vanished := reportFromSubmission(submission, byKey)
	if len(vanished) > 0 {
		b.log.WithFields(logrus.Fields{
			"user":   user.ID,
			"issues": vanished,
		}).Warn("submitted issues are no longer assigned, dropped from the report")
	}

	// A failed transition must not lose the report, so it only logs.
	for _, change := range changes {
		if err := client.TransitionTo(ctx, change.key, change.status); err != nil {
			b.log.WithFields(logrus.Fields{
				"issue":  change.key,
				"status": change.status,
			}).WithError(err).Warn("issue transition failed")
		}
	}

	daily, err := b.store.GetDaily(ctx, user.Team, "")
	if err != nil {
		return err
	}
	daily.SetReport(user.SlackData.UserID, report)
	if err := b.store.SaveDaily(ctx, daily); err != nil {
		return err
	}

	return b.postDigest(ctx, user.Team)
}
