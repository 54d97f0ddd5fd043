package store

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	defaultDatabase   = "daily"
	usersCollection   = "users"
	teamsCollection   = "teams"
	dailiesCollection = "dailys"
)

// AtlasURI assembles the connection string for a MongoDB Atlas cluster.
func AtlasURI(username, password, cluster string) string {
	return fmt.Sprintf("mongodb+srv://%s:%s@%s.mongodb.net/?retryWrites=true&w=majority",
		username, password, cluster)
}

// MongoStore implements Store on a MongoDB database.
type MongoStore struct {
	uri      string
	database string
	client   *mongo.Client
	db       *mongo.Database
	log      *logrus.Logger
}

// NewMongoStore creates a MongoDB-backed store. An empty database name
// selects the default "daily" database. Call Connect before use.
func NewMongoStore(uri, database string, log *logrus.Logger) *MongoStore {
	if database == "" {
		database = defaultDatabase
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &MongoStore{uri: uri, database: database, log: log}
}

// Connect dials the cluster and verifies it is reachable.
func (s *MongoStore) Connect(ctx context.Context) error {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(s.uri))
	if err != nil {
		return errors.Wrap(err, "connect to mongodb")
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return errors.Wrap(err, "ping mongodb")
	}
	s.client = client
	s.db = client.Database(s.database)
	s.log.WithField("database", s.database).Info("connected to mongodb")
	return nil
}

// Close disconnects from the cluster.
func (s *MongoStore) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return errors.Wrap(s.client.Disconnect(ctx), "disconnect from mongodb")
}

func (s *MongoStore) collection(name string) *mongo.Collection {
	return s.db.Collection(name)
}

func (s *MongoStore) replace(ctx context.Context, collection, id string, doc any) error {
	_, err := s.collection(collection).ReplaceOne(ctx,
		bson.M{"_id": id}, doc, options.Replace().SetUpsert(true))
	return errors.Wrapf(err, "upsert %s/%s", collection, id)
}

func (s *MongoStore) SaveUser(ctx context.Context, user *User) error {
	return s.replace(ctx, usersCollection, user.ID, user)
}

func (s *MongoStore) GetUser(ctx context.Context, userID string) (*User, error) {
	var user User
	err := s.collection(usersCollection).FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get user %s", userID)
	}
	return &user, nil
}

func (s *MongoStore) ListUsers(ctx context.Context) ([]*User, error) {
	cursor, err := s.collection(usersCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, errors.Wrap(err, "list users")
	}
	var users []*User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, errors.Wrap(err, "decode users")
	}
	return users, nil
}

func (s *MongoStore) UpdateUserJiraKeys(ctx context.Context, userID string, jiraKeys []string) error {
	result, err := s.collection(usersCollection).UpdateOne(ctx,
		bson.M{"_id": userID}, bson.M{"$set": bson.M{"jira_keys": jiraKeys}})
	if err != nil {
		return errors.Wrapf(err, "update jira keys for %s", userID)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) SaveTeam(ctx context.Context, team *Team) error {
	return s.replace(ctx, teamsCollection, team.ID, team)
}

func (s *MongoStore) GetTeam(ctx context.Context, name string) (*Team, error) {
	var team Team
	err := s.collection(teamsCollection).FindOne(ctx, bson.M{"_id": name}).Decode(&team)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get team %s", name)
	}
	return &team, nil
}

func (s *MongoStore) ListTeams(ctx context.Context) ([]*Team, error) {
	cursor, err := s.collection(teamsCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, errors.Wrap(err, "list teams")
	}
	var teams []*Team
	if err := cursor.All(ctx, &teams); err != nil {
		return nil, errors.Wrap(err, "decode teams")
	}
	return teams, nil
}

func (s *MongoStore) SaveDaily(ctx context.Context, daily *Daily) error {
	return s.replace(ctx, dailiesCollection, daily.ID, daily)
}

func (s *MongoStore) GetDaily(ctx context.Context, team, date string) (*Daily, error) {
	if date == "" {
		date = Today()
	}
	var daily Daily
	err := s.collection(dailiesCollection).FindOne(ctx, bson.M{"_id": DailyID(date, team)}).Decode(&daily)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return NewDaily(team, date), nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get daily %s", DailyID(date, team))
	}
	return &daily, nil
}

func (s *MongoStore) ListDailies(ctx context.Context, date string) ([]*Daily, error) {
	filter := bson.M{}
	if date != "" {
		filter["date"] = date
	}
	cursor, err := s.collection(dailiesCollection).Find(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "list dailies")
	}
	var dailies []*Daily
	if err := cursor.All(ctx, &dailies); err != nil {
		return nil, errors.Wrap(err, "decode dailies")
	}
	return dailies, nil
}
