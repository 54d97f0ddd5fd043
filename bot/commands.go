package bot

import (
	"context"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/slack-go/slack"

	"github.com/IamTugy/DailyBot/jira"
	"github.com/IamTugy/DailyBot/pkg/gui"
	"github.com/IamTugy/DailyBot/store"
)

func (b *Bot) handleCommand(ctx context.Context, cmd slack.SlashCommand) error {
	switch cmd.Command {
	case DailyCommand:
		return b.handleDaily(ctx, cmd)
	case AddTeamCommand:
		return b.handleAddTeam(ctx, cmd)
	case PostDailyCommand:
		return b.handlePostDaily(ctx, cmd)
	}
	return errors.Errorf("unknown command %q", cmd.Command)
}

// handleDaily opens the daily report modal for the invoking user, or a
// "configure me first" modal when they are unknown.
func (b *Bot) handleDaily(ctx context.Context, cmd slack.SlashCommand) error {
	user, err := b.store.GetUser(ctx, cmd.UserID)
	if errors.Is(err, store.ErrNotFound) {
		modal, err := UserNotExistsModal()
		if err != nil {
			return err
		}
		return b.openModal(ctx, cmd.TriggerID, modal)
	}
	if err != nil {
		return err
	}

	client, err := jira.NewClient(user)
	if err != nil {
		return err
	}
	issues, err := client.AssignedIssues(ctx)
	if err != nil {
		return err
	}
	if len(issues) > maxModalIssues {
		b.log.WithFields(logrus.Fields{
			"user":   user.ID,
			"issues": len(issues),
		}).Warnf("truncating daily form to %d issues", maxModalIssues)
		issues = issues[:maxModalIssues]
	}

	forms := make([]IssueForm, 0, len(issues))
	for _, issue := range issues {
		statuses, err := client.AvailableStatuses(ctx, issue.Key)
		if err != nil {
			return err
		}
		forms = append(forms, IssueForm{Issue: issue, Statuses: statuses})
	}

	daily, err := b.store.GetDaily(ctx, user.Team, "")
	if err != nil {
		return err
	}

	modal, err := DailyModal(user, forms, daily)
	if err != nil {
		return err
	}
	return b.openModal(ctx, cmd.TriggerID, modal)
}

// channelRef matches the escaped channel mention Slack substitutes into
// command text, e.g. "<#C0123ABCD|general>".
var channelRef = regexp.MustCompile(`<#([A-Z0-9]+)(?:\|[^>]*)?>`)

// handleAddTeam persists a team from "/add-team <name> <#channel>".
func (b *Bot) handleAddTeam(ctx context.Context, cmd slack.SlashCommand) error {
	fields := strings.Fields(cmd.Text)
	if len(fields) != 2 {
		return b.ephemeral(ctx, cmd, "Usage: "+AddTeamCommand+" <name> <#channel>")
	}
	name := fields[0]
	match := channelRef.FindStringSubmatch(fields[1])
	if match == nil {
		return b.ephemeral(ctx, cmd, "The second argument must be a #channel reference.")
	}

	if err := b.store.SaveTeam(ctx, store.NewTeam(name, match[1])); err != nil {
		return err
	}
	return b.ephemeral(ctx, cmd, "Team *"+name+"* saved. Daily digests will go to "+fields[1]+".")
}

// handlePostDaily posts the invoking user's team digest to the team's
// daily channel.
func (b *Bot) handlePostDaily(ctx context.Context, cmd slack.SlashCommand) error {
	user, err := b.store.GetUser(ctx, cmd.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return b.ephemeral(ctx, cmd, "You are not configured yet, open the DailyBot home tab first.")
	}
	if err != nil {
		return err
	}
	return b.postDigest(ctx, user.Team)
}

// postDigest builds and posts the digest for one team. The rich block
// variant is used while it fits the message block limit; bigger teams
// get the compact text digest.
func (b *Bot) postDigest(ctx context.Context, teamName string) error {
	team, err := b.store.GetTeam(ctx, teamName)
	if err != nil {
		return errors.Wrapf(err, "team %s", teamName)
	}
	daily, err := b.store.GetDaily(ctx, teamName, "")
	if err != nil {
		return err
	}

	msg, err := DailyDigestMessage(daily, digestFitsBlocks(daily))
	if err != nil {
		return err
	}
	_, _, err = b.api.PostMessageContext(ctx, team.DailyChannel,
		slack.MsgOptionBlocks(MessageBlocks(msg)...),
		slack.MsgOptionText("Daily Report for "+daily.Date, false),
	)
	return errors.Wrapf(err, "post digest to %s", team.DailyChannel)
}

// digestFitsBlocks estimates whether the rich digest stays inside the
// 50 block message limit: at most 4 blocks per issue plus 4 per
// commenting user, under the 2 block preamble.
func digestFitsBlocks(daily *store.Daily) bool {
	blocks := 2
	for _, report := range daily.Reports {
		blocks += 4 * len(report.IssueReports)
		if report.GeneralComments != "" {
			blocks += 4
		}
	}
	return blocks <= 50
}

func (b *Bot) openModal(ctx context.Context, triggerID string, modal gui.Modal) error {
	req, err := ModalRequest(modal)
	if err != nil {
		return err
	}
	_, err = b.api.OpenViewContext(ctx, triggerID, req)
	return errors.Wrap(err, "open view")
}

func (b *Bot) ephemeral(ctx context.Context, cmd slack.SlashCommand, text string) error {
	_, err := b.api.PostEphemeralContext(ctx, cmd.ChannelID, cmd.UserID,
		slack.MsgOptionText(text, false))
	return errors.Wrap(err, "post ephemeral")
}
