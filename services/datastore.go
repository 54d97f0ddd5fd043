package services

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/IamTugy/DailyBot/store"
)

var (
	datastore     *store.CachedStore
	datastoreOnce sync.Once
)

// Datastore returns a singleton cached store over the MongoDB cluster
// configured in the environment, connected and warmed.
func Datastore() *store.CachedStore {
	datastoreOnce.Do(func() {
		username := os.Getenv("MONGODB_USERNAME")
		if username == "" {
			panic("MONGODB_USERNAME environment variable is not set")
		}
		password := os.Getenv("MONGODB_PASSWORD")
		if password == "" {
			panic("MONGODB_PASSWORD environment variable is not set")
		}
		cluster := os.Getenv("CLUSTER_NAME")
		if cluster == "" {
			panic("CLUSTER_NAME environment variable is not set")
		}

		mongoStore := store.NewMongoStore(
			store.AtlasURI(username, password, cluster),
			os.Getenv("MONGODB_DATABASE"),
			logrus.StandardLogger(),
		)
		cached := store.NewCachedStore(mongoStore)

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := cached.Connect(ctx); err != nil {
			panic(fmt.Sprintf("failed to connect to mongodb: %v", err))
		}
		if err := cached.Warm(ctx); err != nil {
			panic(fmt.Sprintf("failed to warm the store cache: %v", err))
		}
		datastore = cached
	})
	return datastore
}
