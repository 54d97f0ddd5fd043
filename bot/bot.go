package bot

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
	"github.com/slack-go/slack/socketmode"

	"github.com/IamTugy/DailyBot/store"
	"github.com/IamTugy/DailyBot/util"
)

// Bot glues the Slack Socket Mode event stream to the store, the Jira
// clients and the document builders.
type Bot struct {
	api   *slack.Client
	sock  *socketmode.Client
	store store.Store
	log   *logrus.Logger
}

// New builds a bot around its collaborators.
func New(api *slack.Client, sock *socketmode.Client, st store.Store, log *logrus.Logger) *Bot {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Bot{api: api, sock: sock, store: st, log: log}
}

// Run drives the Socket Mode connection and dispatches its events
// until the context is cancelled or the event stream closes.
func (b *Bot) Run(ctx context.Context) error {
	go func() {
		if err := b.sock.RunContext(ctx); err != nil && ctx.Err() == nil {
			b.log.WithError(err).Error("socket mode connection ended")
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case evt, ok := <-b.sock.Events:
			if !ok {
				return nil
			}
			b.dispatch(ctx, evt)
		}
	}
}

func (b *Bot) dispatch(ctx context.Context, evt socketmode.Event) {
	switch evt.Type {
	case socketmode.EventTypeConnecting:
		b.log.Info("connecting to slack")
	case socketmode.EventTypeConnected:
		b.log.Info("connected to slack")
	case socketmode.EventTypeConnectionError:
		b.log.Warn("slack connection error, retrying")

	case socketmode.EventTypeSlashCommand:
		cmd, ok := evt.Data.(slack.SlashCommand)
		if !ok {
			return
		}
		b.sock.Ack(*evt.Request)
		commandInvocations.WithLabelValues(cmd.Command).Inc()
		b.guard(ctx, "command:"+cmd.Command, func(ctx context.Context) error {
			return b.handleCommand(ctx, cmd)
		})

	case socketmode.EventTypeInteractive:
		callback, ok := evt.Data.(slack.InteractionCallback)
		if !ok {
			return
		}
		b.sock.Ack(*evt.Request)
		interactionEvents.WithLabelValues(string(callback.Type)).Inc()
		payload := []byte(evt.Request.Payload)
		b.guard(ctx, "interaction:"+string(callback.Type), func(ctx context.Context) error {
			return b.handleInteraction(ctx, callback, payload)
		})

	case socketmode.EventTypeEventsAPI:
		event, ok := evt.Data.(slackevents.EventsAPIEvent)
		if !ok {
			return
		}
		b.sock.Ack(*evt.Request)
		if home, ok := event.InnerEvent.Data.(*slackevents.AppHomeOpenedEvent); ok && home.Tab == "home" {
			b.guard(ctx, "event:app_home_opened", func(ctx context.Context) error {
				return b.publishHome(ctx, home.User)
			})
		}
	}
}

// guard runs one handler with panic recovery, duration metrics and a
// request id on failure logs. Handlers run inline: Socket Mode events
// ordering within one connection is preserved.
func (b *Bot) guard(ctx context.Context, handler string, fn func(context.Context) error) {
	start := time.Now()
	err := util.ErrorGuard(func() error { return fn(ctx) })
	handlerDuration.WithLabelValues(handler).Observe(time.Since(start).Seconds())
	if err != nil {
		handlerErrors.WithLabelValues(handler).Inc()
		b.log.WithFields(logrus.Fields{
			"handler":    handler,
			"request_id": uuid.NewString(),
		}).WithError(err).Error("handler failed")
	}
}
