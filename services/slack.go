package services

import (
	"os"
	"sync"

	"github.com/slack-go/slack"
	"github.com/slack-go/slack/socketmode"
)

var (
	slackClient *slack.Client
	slackOnce   sync.Once

	socketClient *socketmode.Client
	socketOnce   sync.Once
)

// SlackAPI returns a singleton Slack Web API client authenticated with
// the bot token and carrying the app-level token Socket Mode needs.
func SlackAPI() *slack.Client {
	slackOnce.Do(func() {
		botToken := os.Getenv("SLACK_BOT_TOKEN")
		if botToken == "" {
			panic("SLACK_BOT_TOKEN environment variable is not set")
		}
		appToken := os.Getenv("SLACK_APP_TOKEN")
		if appToken == "" {
			panic("SLACK_APP_TOKEN environment variable is not set")
		}
		slackClient = slack.New(botToken, slack.OptionAppLevelToken(appToken))
	})
	return slackClient
}

// SocketClient returns a singleton Socket Mode client over SlackAPI.
func SocketClient() *socketmode.Client {
	socketOnce.Do(func() {
		socketClient = socketmode.New(SlackAPI())
	})
	return socketClient
}
