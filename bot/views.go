package bot

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/IamTugy/DailyBot/jira"
	"github.com/IamTugy/DailyBot/pkg/gui"
	"github.com/IamTugy/DailyBot/store"
)

// IssueForm is one issue ready to be rendered into the daily modal: the
// issue itself plus the statuses it can move to.
type IssueForm struct {
	Issue    jira.Issue
	Statuses []string
}

// issueReportBlocks builds the per-issue slice of the daily modal:
// header, ignore/status/link action row, progress input, previously
// stored data and the issue description as context.
func issueReportBlocks(form IssueForm, stored *store.DailyIssueReport) ([]gui.Block, error) {
	issue := form.Issue

	header, err := gui.NewHeaderBlock(gui.Plain(fmt.Sprintf("%s: %s", issue.Key, issue.Summary)).Truncated())
	if err != nil {
		return nil, errors.Wrapf(err, "issue %s header", issue.Key)
	}

	ignoreOption, err := gui.NewOption(gui.Mrkdwn("Ignore this issue"), "ignore-issue", nil)
	if err != nil {
		return nil, err
	}
	ignore, err := gui.NewSelector(gui.Checkboxes, IgnoreIssueInDailyForm, []gui.Option{ignoreOption})
	if err != nil {
		return nil, err
	}

	statusSelect, err := statusSelectMenu(issue.Status, form.Statuses)
	if err != nil {
		return nil, errors.Wrapf(err, "issue %s status select", issue.Key)
	}

	link, err := gui.NewButton(IssueLinkAction, gui.Plain("Open in Jira"), &gui.ButtonOpts{
		Value: "link-issue-" + issue.Key,
		URL:   issue.Link,
	})
	if err != nil {
		return nil, err
	}

	actions, err := gui.NewActionsBlock(bulkID(issue.Key, ActionsIssueDailyForm), ignore, statusSelect, link)
	if err != nil {
		return nil, err
	}

	progress, err := gui.NewTextInput(IssueSummaryAction, nil)
	if err != nil {
		return nil, err
	}
	input, err := gui.NewInputBlock(bulkID(issue.Key, IssueSummaryAction),
		gui.Plain("Progress details"), progress, &gui.InputOpts{Optional: true})
	if err != nil {
		return nil, err
	}

	blocks := []gui.Block{header, actions, input}

	if stored != nil && stored.Details != "" {
		context, err := gui.NewContextBlock(gui.Plain("Stored data: " + stored.Details).Truncated())
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, context)
	}
	if issue.Description != "" {
		context, err := gui.NewContextBlock(gui.Mrkdwn(issue.Description).Truncated())
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, context)
	}

	return append(blocks, gui.NewDividerBlock()), nil
}

// statusSelectMenu builds the status select with the current status
// pre-selected and the reachable statuses after it.
func statusSelectMenu(current string, available []string) (gui.SelectMenu, error) {
	initial, err := gui.NewOption(gui.Plain(current).Truncated(), current, nil)
	if err != nil {
		return gui.SelectMenu{}, err
	}
	options := []gui.Option{initial}
	for _, status := range available {
		if status == current {
			continue
		}
		option, err := gui.NewOption(gui.Plain(status).Truncated(), status, nil)
		if err != nil {
			return gui.SelectMenu{}, err
		}
		options = append(options, option)
	}
	return gui.NewSelectMenu(SelectStatusIssueDailyForm, gui.Plain("Select current status"), gui.SelectOpts{
		Options:       options,
		InitialOption: &initial,
	})
}

// DailyModal builds the daily report form for a user: one component per
// issue plus the general comments input, pre-seeded with whatever the
// user stored earlier today.
func DailyModal(user *store.User, forms []IssueForm, daily *store.Daily) (gui.Modal, error) {
	report, hasReport := daily.Reports[user.SlackData.UserID]
	storedByKey := map[string]*store.DailyIssueReport{}
	if hasReport {
		for i := range report.IssueReports {
			storedByKey[report.IssueReports[i].Key] = &report.IssueReports[i]
		}
	}

	greeting, err := gui.NewSectionBlock("", gui.SectionOpts{Text: mrkdwnPtr(fmt.Sprintf(
		"*Hi <@%s>!* Please change the statuses of the following issues to the updated status, "+
			"and add comments of the progress of the issues. If you re-fill this form, copy "+
			"the stored data to the input box", user.SlackData.UserID))})
	if err != nil {
		return gui.Modal{}, err
	}
	blocks := []gui.Block{greeting}

	for _, form := range forms {
		component, err := issueReportBlocks(form, storedByKey[form.Issue.Key])
		if err != nil {
			return gui.Modal{}, err
		}
		blocks = append(blocks, component...)
	}

	comments, err := gui.NewTextInput(GeneralCommentsAction, &gui.TextInputOpts{Multiline: true})
	if err != nil {
		return gui.Modal{}, err
	}
	commentsInput, err := gui.NewInputBlock(GeneralCommentsAction,
		gui.Plain("Other comments / blockers"), comments, &gui.InputOpts{Optional: true})
	if err != nil {
		return gui.Modal{}, err
	}
	blocks = append(blocks, commentsInput)

	if hasReport && report.GeneralComments != "" {
		context, err := gui.NewContextBlock(gui.Plain("Stored data: " + report.GeneralComments).Truncated())
		if err != nil {
			return gui.Modal{}, err
		}
		blocks = append(blocks, context)
	}

	modal, err := gui.NewModal(DailyModalSubmission, gui.Plain("Daily Report"), &gui.ModalOpts{
		Submit: plainPtr("Submit"),
		Close:  plainPtr("Cancel"),
	}, blocks...)
	if err != nil {
		return gui.Modal{}, err
	}
	documentBuilds.WithLabelValues("daily_modal").Inc()
	return modal, nil
}

// HomeConfigView is the home tab shown to an unconfigured user: the
// Jira credential form and the team picker.
func HomeConfigView(teams []*store.Team) (gui.HomeTab, error) {
	var blocks []gui.Block

	for _, text := range []string{
		"*Hey there! I'm DailyBot :smile:*",
		"I was created to bring happiness to the agile world by skipping dailys and not " +
			"wasting time each day, and just move the dailys into writing.",
		"Lets configure your profile :gear:",
	} {
		section, err := gui.NewSectionBlock("", gui.SectionOpts{Text: mrkdwnPtr(text)})
		if err != nil {
			return gui.HomeTab{}, err
		}
		blocks = append(blocks, section)
		if len(blocks) == 1 {
			blocks = append(blocks, gui.NewDividerBlock())
		}
	}
	blocks = append(blocks, gui.NewDividerBlock())

	serverHint := gui.PlainEmoji("https://<your-domain>.atlassian.net/ (if using cloud)  <!> Dont forget the 'https://'", false)
	serverInput, err := textInputBlock(JiraServerAction, "Jira server url", &serverHint)
	if err != nil {
		return gui.HomeTab{}, err
	}
	blocks = append(blocks, serverInput)

	hostType, err := hostTypeSelectBlock()
	if err != nil {
		return gui.HomeTab{}, err
	}
	blocks = append(blocks, hostType)

	emailInput, err := textInputBlock(JiraEmailAction, "Jira E-Mail", nil)
	if err != nil {
		return gui.HomeTab{}, err
	}
	blocks = append(blocks, emailInput, gui.NewDividerBlock())

	tokenInput, err := textInputBlock(JiraAPITokenAction, "Jira API Token", nil)
	if err != nil {
		return gui.HomeTab{}, err
	}
	tokenHint, err := gui.NewContextBlock(gui.Mrkdwn(
		"To generate a Jira API Token go to https://id.atlassian.com/manage-profile/security/api-tokens"))
	if err != nil {
		return gui.HomeTab{}, err
	}
	blocks = append(blocks, tokenInput, tokenHint, gui.NewDividerBlock())

	teamBlock, err := teamSelectBlock(teams)
	if err != nil {
		return gui.HomeTab{}, err
	}
	blocks = append(blocks, teamBlock)

	save, err := gui.NewButton(SaveUserConfigurations, gui.Plain("Save"), &gui.ButtonOpts{
		Value: SaveUserConfigurations,
		Style: gui.StylePrimary,
	})
	if err != nil {
		return gui.HomeTab{}, err
	}
	saveRow, err := gui.NewActionsBlock("", save)
	if err != nil {
		return gui.HomeTab{}, err
	}
	blocks = append(blocks, saveRow)

	home, err := gui.NewHomeTab("", blocks...)
	if err != nil {
		return gui.HomeTab{}, err
	}
	documentBuilds.WithLabelValues("home_config").Inc()
	return home, nil
}

func textInputBlock(action, label string, hint *gui.Text) (gui.InputBlock, error) {
	input, err := gui.NewTextInput(action, nil)
	if err != nil {
		return gui.InputBlock{}, err
	}
	var opts *gui.InputOpts
	if hint != nil {
		opts = &gui.InputOpts{Hint: hint}
	}
	return gui.NewInputBlock(action, gui.Plain(label), input, opts)
}

func hostTypeSelectBlock() (gui.Block, error) {
	cloud, err := gui.NewOption(gui.Plain(string(store.JiraHostCloud)), string(store.JiraHostCloud), nil)
	if err != nil {
		return nil, err
	}
	local, err := gui.NewOption(gui.Plain(string(store.JiraHostLocal)), string(store.JiraHostLocal), nil)
	if err != nil {
		return nil, err
	}
	menu, err := gui.NewSelectMenu(JiraHostTypeAction, gui.Plain("Select options"), gui.SelectOpts{
		Options:       []gui.Option{cloud, local},
		InitialOption: &cloud,
	})
	if err != nil {
		return nil, err
	}
	return gui.NewInputBlock(JiraHostTypeAction, gui.Plain("Select your Jira host type"), menu, nil)
}

func teamSelectBlock(teams []*store.Team) (gui.Block, error) {
	if len(teams) == 0 {
		return gui.NewSectionBlock("", gui.SectionOpts{Text: mrkdwnPtr(fmt.Sprintf(
			"*No teams available, use `%s` command to create one*", AddTeamCommand))})
	}
	options := make([]gui.Option, 0, len(teams))
	for _, team := range teams {
		option, err := gui.NewOption(gui.Plain(team.Name).Truncated(), team.Name, nil)
		if err != nil {
			return nil, err
		}
		options = append(options, option)
	}
	menu, err := gui.NewSelectMenu(SelectUserTeam, gui.Plain("Teams"), gui.SelectOpts{Options: options})
	if err != nil {
		return nil, err
	}
	return gui.NewSectionBlock(SelectUserTeam, gui.SectionOpts{
		Text:      mrkdwnPtr("*Select your team*"),
		Accessory: menu,
	})
}

// HomeBoardsView is the home tab shown once credentials are saved but
// no boards are chosen yet. Small sites get a multi-select of their
// projects; sites with more projects than a select menu can carry get a
// typed key list instead.
func HomeBoardsView(projects []jira.Project) (gui.HomeTab, error) {
	header, err := gui.NewHeaderBlock(gui.Plain("Configurations are set"))
	if err != nil {
		return gui.HomeTab{}, err
	}
	blocks := []gui.Block{header}

	switch {
	case len(projects) == 0:
		section, err := gui.NewSectionBlock("", gui.SectionOpts{Text: mrkdwnPtr("*No Jira projects available*")})
		if err != nil {
			return gui.HomeTab{}, err
		}
		blocks = append(blocks, section)

	case len(projects) < maxSelectorOptions:
		options := make([]gui.Option, 0, len(projects))
		for _, project := range projects {
			option, err := gui.NewOption(gui.Plain(project.Key).Truncated(), project.Key, nil)
			if err != nil {
				return gui.HomeTab{}, err
			}
			options = append(options, option)
		}
		menu, err := gui.NewMultiSelectMenu(SelectUserBoard, gui.Plain("Select options"),
			gui.SelectOpts{Options: options}, 0)
		if err != nil {
			return gui.HomeTab{}, err
		}
		section, err := gui.NewSectionBlock(TypeOrSelectUserBoard, gui.SectionOpts{
			Text:      mrkdwnPtr("*Select your Jira boards from the select options*"),
			Accessory: menu,
		})
		if err != nil {
			return gui.HomeTab{}, err
		}
		blocks = append(blocks, section)

	default:
		input, err := gui.NewTextInput(TypeUserBoard, nil)
		if err != nil {
			return gui.HomeTab{}, err
		}
		inputBlock, err := gui.NewInputBlock(TypeOrSelectUserBoard,
			gui.Plain("Please write your issue keys:"), input, nil)
		if err != nil {
			return gui.HomeTab{}, err
		}
		hint, err := gui.NewContextBlock(gui.Plain("Please write the keys in a list like so: `EDGE,ULT` with , and no spaces"))
		if err != nil {
			return gui.HomeTab{}, err
		}
		submit, err := gui.NewButton(SaveUserBoard, gui.Plain("Submit"), &gui.ButtonOpts{Value: SaveUserBoard})
		if err != nil {
			return gui.HomeTab{}, err
		}
		submitRow, err := gui.NewActionsBlock("", submit)
		if err != nil {
			return gui.HomeTab{}, err
		}
		blocks = append(blocks, inputBlock, hint, submitRow)
	}

	home, err := gui.NewHomeTab("", blocks...)
	if err != nil {
		return gui.HomeTab{}, err
	}
	documentBuilds.WithLabelValues("home_boards").Inc()
	return home, nil
}

// HomeConfiguredView is the home tab shown to a fully configured user.
func HomeConfiguredView() (gui.HomeTab, error) {
	header, err := gui.NewHeaderBlock(gui.Plain("Well done! Everything is configured!"))
	if err != nil {
		return gui.HomeTab{}, err
	}
	section, err := gui.NewSectionBlock("", gui.SectionOpts{Text: mrkdwnPtr(
		fmt.Sprintf("Run `%s` to fill out your daily form.", DailyCommand))})
	if err != nil {
		return gui.HomeTab{}, err
	}
	context, err := gui.NewContextBlock(gui.Plain("Other capabilities will come soon.."))
	if err != nil {
		return gui.HomeTab{}, err
	}
	home, err := gui.NewHomeTab("", header, section, context)
	if err != nil {
		return gui.HomeTab{}, err
	}
	documentBuilds.WithLabelValues("home_configured").Inc()
	return home, nil
}

// UserNotExistsModal tells a user invoking /daily that they have no
// saved configuration yet.
func UserNotExistsModal() (gui.Modal, error) {
	header, err := gui.NewHeaderBlock(gui.Plain("Your user is not defined!"))
	if err != nil {
		return gui.Modal{}, err
	}
	section, err := gui.NewSectionBlock("", gui.SectionOpts{Text: mrkdwnPtr(
		"Open the *DailyBot* app home tab to fill in your configuration, then run `" +
			DailyCommand + "` again.")})
	if err != nil {
		return gui.Modal{}, err
	}
	modal, err := gui.NewModal("user-not-exists", gui.Plain("Daily Report"), &gui.ModalOpts{
		Close: plainPtr("Close"),
	}, header, section)
	if err != nil {
		return gui.Modal{}, err
	}
	documentBuilds.WithLabelValues("user_not_exists_modal").Inc()
	return modal, nil
}

// DailyDigestMessage builds the digest posted to the team channel. The
// gui variant renders every report as rich blocks; the compact variant
// squeezes everything into one markdown section, for teams whose
// reports would not fit the block limit of a message.
func DailyDigestMessage(daily *store.Daily, withGUI bool) (gui.Message, error) {
	header, err := gui.NewHeaderBlock(gui.Plain("Daily Report for " + daily.Date))
	if err != nil {
		return gui.Message{}, err
	}
	context, err := gui.NewContextBlock(gui.Plain("Feel free to extend and comment in the thread."))
	if err != nil {
		return gui.Message{}, err
	}
	blocks := []gui.Block{header, context}

	if withGUI {
		for _, userID := range sortedReportUsers(daily) {
			component, err := userReportBlocks(userID, daily.Reports[userID])
			if err != nil {
				return gui.Message{}, err
			}
			blocks = append(blocks, component...)
		}
	} else if text := compactDigestText(daily); text != "" {
		section, err := gui.NewSectionBlock("", gui.SectionOpts{Text: textPtr(gui.Mrkdwn(text).Truncated())})
		if err != nil {
			return gui.Message{}, err
		}
		blocks = append(blocks, section)
	}

	msg, err := gui.NewMessage(blocks...)
	if err != nil {
		return gui.Message{}, err
	}
	documentBuilds.WithLabelValues("daily_digest").Inc()
	return msg, nil
}

func userReportBlocks(userID string, report store.DailyReport) ([]gui.Block, error) {
	var blocks []gui.Block

	for _, issue := range report.IssueReports {
		title, err := gui.NewSectionBlock("", gui.SectionOpts{
			Text: textPtr(gui.Plain(fmt.Sprintf("%s - %s", issue.Key, issue.Summary)).Truncated()),
		})
		if err != nil {
			return nil, err
		}

		open, err := gui.NewButton(OpenInJiraAction, gui.Plain("Open in Jira"), &gui.ButtonOpts{
			Value: OpenInJiraAction,
			URL:   issue.Link,
		})
		if err != nil {
			return nil, err
		}
		status, err := gui.NewSectionBlock("", gui.SectionOpts{
			Fields: []gui.Text{
				gui.Plain(issue.Status).Truncated(),
				gui.Mrkdwn(fmt.Sprintf("*<@%s>*", userID)),
			},
			Accessory: open,
		})
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, title, status)

		if issue.Details != "" {
			details, err := gui.NewSectionBlock("", gui.SectionOpts{
				Text: textPtr(gui.PlainEmoji(":speech_balloon: "+issue.Details, true).Truncated()),
			})
			if err != nil {
				return nil, err
			}
			blocks = append(blocks, details)
		}
		blocks = append(blocks, gui.NewDividerBlock())
	}

	if report.GeneralComments != "" {
		header, err := gui.NewHeaderBlock(gui.Plain("General Comments"))
		if err != nil {
			return nil, err
		}
		author, err := gui.NewContextBlock(gui.Mrkdwn(fmt.Sprintf("<@%s>", userID)))
		if err != nil {
			return nil, err
		}
		comments, err := gui.NewSectionBlock("", gui.SectionOpts{
			Text: textPtr(gui.Mrkdwn(report.GeneralComments).Truncated()),
		})
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, header, author, comments, gui.NewDividerBlock())
	}

	return blocks, nil
}

// sortedReportUsers orders the report map so digests render the same
// way on every run.
func sortedReportUsers(daily *store.Daily) []string {
	users := make([]string, 0, len(daily.Reports))
	for id := range daily.Reports {
		users = append(users, id)
	}
	sort.Strings(users)
	return users
}

func compactDigestText(daily *store.Daily) string {
	var lines []string
	for _, userID := range sortedReportUsers(daily) {
		report := daily.Reports[userID]
		lines = append(lines, fmt.Sprintf("<@%s>:", userID))
		for _, issue := range report.IssueReports {
			line := fmt.Sprintf(" - <%s|%s> - %s", issue.Link, issue.Summary, issue.Status)
			if issue.Details != "" {
				line += " - " + issue.Details
			}
			lines = append(lines, line)
		}
		if report.GeneralComments != "" {
			lines = append(lines, " - "+report.GeneralComments)
		}
	}
	return strings.Join(lines, "\n")
}

func mrkdwnPtr(text string) *gui.Text { return textPtr(gui.Mrkdwn(text)) }
func plainPtr(text string) *gui.Text  { return textPtr(gui.Plain(text)) }
func textPtr(t gui.Text) *gui.Text    { return &t }
