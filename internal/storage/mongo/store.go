package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/julianstephens/planme/internal/constants"
	"github.com/julianstephens/planme/internal/logger"
	"github.com/julianstephens/planme/internal/models"
	"github.com/julianstephens/planme/internal/storage"
)

// ErrInvalidField is returned for dates Mongo cannot use as a field name
var ErrInvalidField = errors.New("mood date cannot contain '.' or start with '$'")

// Store keeps one document per user in the users collection:
//
//	{_id: <user_id>, moodLogs: {<date>: {mood: <mood>}}}
type Store struct {
	uri        string
	database   string
	collection string

	client *mongo.Client
	users  *mongo.Collection
}

func New(uri, database string) *Store {
	if database == "" {
		database = constants.DefaultDatabase
	}
	return &Store{
		uri:        uri,
		database:   database,
		collection: constants.UsersCollection,
	}
}

func (s *Store) Init(ctx context.Context) error {
	if s.client != nil {
		return nil
	}

	client, err := mongo.Connect(options.Client().ApplyURI(s.uri).SetAppName(constants.AppName))
	if err != nil {
		return fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return fmt.Errorf("failed to reach mongo: %w", err)
	}

	s.client = client
	s.users = client.Database(s.database).Collection(s.collection)

	logger.Debug("Connected to mongo", "database", s.database, "collection", s.collection)
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	if s.client == nil {
		return fmt.Errorf("storage not initialized")
	}
	return s.client.Ping(ctx, nil)
}

func (s *Store) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

// fieldPath builds the dotted path of a date inside the moodLogs subdocument
func fieldPath(field string) (string, error) {
	if strings.Contains(field, ".") || strings.HasPrefix(field, "$") {
		return "", ErrInvalidField
	}
	return constants.MoodLogsField + "." + field, nil
}

// Upsert sets moodLogs.<field> on the user's document in a single update,
// creating the document if needed. Other dates are not touched.
func (s *Store) Upsert(ctx context.Context, key, field string, value models.MoodValue) error {
	if err := storage.ValidateKey(key, field); err != nil {
		return err
	}
	path, err := fieldPath(field)
	if err != nil {
		return err
	}

	_, err = s.users.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: key}},
		bson.D{{Key: "$set", Value: bson.D{{Key: path, Value: value}}}},
		options.UpdateOne().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert mood: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) (*models.UserDocument, error) {
	var doc models.UserDocument
	err := s.users.FindOne(ctx,
		bson.D{{Key: "_id", Value: key}},
		options.FindOne().SetProjection(bson.D{{Key: "_id", Value: 0}, {Key: constants.MoodLogsField, Value: 1}}),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load user document: %w", err)
	}

	doc.UserID = key
	return &doc, nil
}

func (s *Store) Describe() string {
	return "mongodb/" + s.database + "." + s.collection
}
