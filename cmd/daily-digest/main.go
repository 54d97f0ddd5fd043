package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/slack-go/slack"

	"github.com/IamTugy/DailyBot/bot"
	"github.com/IamTugy/DailyBot/services"
	"github.com/IamTugy/DailyBot/store"
)

var (
	envFile  = flag.String("env", ".env", "Path to environment file")
	date     = flag.String("date", "", "Report date (YYYY-MM-DD), empty means today")
	dryRun   = flag.Bool("dry-run", false, "Build the digests without posting them")
	logLevel = flag.String("log-level", "info", "Logging level (debug, info, warn, error)")
)

// daily-digest posts every team's digest for one date, for running from
// cron instead of waiting for someone to type /post-daily.
func main() {
	flag.Parse()

	logger := logrus.New()
	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		logger.Fatalf("Invalid log level: %v", err)
	}
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	if err := godotenv.Load(*envFile); err != nil {
		log.Printf("Warning: Error loading env file %s: %v\n", *envFile, err)
	}

	run := logger.WithField("run_id", uuid.NewString())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	datastore := services.Datastore()
	defer func() {
		if err := datastore.Close(context.Background()); err != nil {
			run.WithError(err).Warn("error closing the store")
		}
	}()

	teams, err := datastore.ListTeams(ctx)
	if err != nil {
		run.WithError(err).Fatal("failed to list teams")
	}
	if len(teams) == 0 {
		run.Info("no teams configured, nothing to post")
		return
	}

	api := services.SlackAPI()
	posted := 0
	for _, team := range teams {
		if err := postTeamDigest(ctx, api, datastore, team, *date, *dryRun); err != nil {
			run.WithField("team", team.Name).WithError(err).Error("failed to post team digest")
			continue
		}
		posted++
	}
	run.WithFields(logrus.Fields{"teams": len(teams), "posted": posted}).Info("digest run complete")
}

func postTeamDigest(ctx context.Context, api *slack.Client, datastore store.Store, team *store.Team, date string, dryRun bool) error {
	daily, err := datastore.GetDaily(ctx, team.Name, date)
	if err != nil {
		return err
	}
	if len(daily.Reports) == 0 {
		logrus.WithField("team", team.Name).Info("no reports stored, skipping")
		return nil
	}

	msg, err := bot.DailyDigestMessage(daily, false)
	if err != nil {
		return err
	}
	if dryRun {
		logrus.WithField("team", team.Name).Info("dry run, digest built but not posted")
		return nil
	}

	_, _, err = api.PostMessageContext(ctx, team.DailyChannel,
		slack.MsgOptionBlocks(bot.MessageBlocks(msg)...),
		slack.MsgOptionText("Daily Report for "+daily.Date, false),
	)
	return err
}
