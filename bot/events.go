package bot

import (
	"context"

	"github.com/pkg/errors"

	"github.com/IamTugy/DailyBot/jira"
	"github.com/IamTugy/DailyBot/pkg/gui"
	"github.com/IamTugy/DailyBot/store"
)

// publishHome renders the home tab matching the user's configuration
// progress: the credential form, then board selection, then "all set".
func (b *Bot) publishHome(ctx context.Context, userID string) error {
	home, err := b.homeView(ctx, userID)
	if err != nil {
		return err
	}
	req, err := HomeTabRequest(home)
	if err != nil {
		return err
	}
	_, err = b.api.PublishViewContext(ctx, userID, req, "")
	return errors.Wrap(err, "publish home tab")
}

func (b *Bot) homeView(ctx context.Context, userID string) (gui.HomeTab, error) {
	user, err := b.store.GetUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		teams, err := b.store.ListTeams(ctx)
		if err != nil {
			return gui.HomeTab{}, err
		}
		return HomeConfigView(teams)
	}
	if err != nil {
		return gui.HomeTab{}, err
	}

	if len(user.JiraKeys) == 0 {
		client, err := jira.NewClient(user)
		if err != nil {
			return gui.HomeTab{}, err
		}
		projects, err := client.Projects(ctx)
		if err != nil {
			return gui.HomeTab{}, err
		}
		return HomeBoardsView(projects)
	}

	return HomeConfiguredView()
}
