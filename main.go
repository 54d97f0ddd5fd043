package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/IamTugy/DailyBot/bot"
	"github.com/IamTugy/DailyBot/services"
)

func main() {
	envFile := flag.String("env", ".env", "Path to environment file")
	logLevel := flag.String("log-level", "info", "Logging level (debug, info, warn, error)")
	metricsAddr := flag.String("metrics-addr", os.Getenv("METRICS_ADDR"), "Address for the Prometheus metrics listener (empty disables it)")
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil {
		log.Printf("Warning: Error loading env file %s: %v\n", *envFile, err)
	}

	logger := logrus.New()
	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		logger.Fatalf("Invalid log level: %v", err)
	}
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.JSONFormatter{})

	if *metricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			logger.WithField("addr", *metricsAddr).Info("starting metrics listener")
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
				logger.WithError(err).Error("metrics listener stopped")
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	datastore := services.Datastore()
	defer func() {
		if err := datastore.Close(context.Background()); err != nil {
			logger.WithError(err).Warn("error closing the store")
		}
	}()

	dailyBot := bot.New(services.SlackAPI(), services.SocketClient(), datastore, logger)

	logger.Info("starting DailyBot")
	if err := dailyBot.Run(ctx); err != nil && ctx.Err() == nil {
		logger.WithError(err).Fatal("bot stopped")
	}
	logger.Info("shutdown complete")
}
