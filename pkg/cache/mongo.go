package cache

import (
	"context"
	stderrors "errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/licensecharts/pkg/errors"
	"github.com/matzehuels/licensecharts/pkg/httputil"
)

// Mongo defaults.
const (
	DefaultMongoDatabase   = "licensecharts"
	DefaultMongoCollection = "cache"
)

// MongoCache stores entries as documents keyed by _id. Expired documents
// are removed by a TTL index on expires_at and are also ignored on read,
// since the TTL monitor only runs once a minute.
type MongoCache struct {
	client *mongo.Client
	coll   *mongo.Collection
}

type mongoEntry struct {
	Key       string     `bson:"_id"`
	Data      []byte     `bson:"data"`
	ExpiresAt *time.Time `bson:"expires_at,omitempty"`
}

// NewMongoCache connects to uri and ensures the TTL index exists. Empty
// database and collection names select the defaults.
func NewMongoCache(ctx context.Context, uri, database, collection string) (*MongoCache, error) {
	if uri == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "mongo cache needs a URI")
	}
	if database == "" {
		database = DefaultMongoDatabase
	}
	if collection == "" {
		collection = DefaultMongoCollection
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetConnectTimeout(5*time.Second))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "connect to mongo")
	}
	err = connectPolicy.Do(ctx, func() error {
		if err := client.Ping(ctx, nil); err != nil {
			return httputil.Retryable(err)
		}
		return nil
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "reach mongo")
	}

	coll := client.Database(database).Collection(collection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create ttl index")
	}
	return &MongoCache{client: client, coll: coll}, nil
}

// Get retrieves a value; a missing or expired document is a miss.
func (c *MongoCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var e mongoEntry
	err := c.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&e)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if expired(e, time.Now()) {
		return nil, false, nil
	}
	return e.Data, true, nil
}

// Set upserts a value.
func (c *MongoCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	e := newMongoEntry(key, data, ttl, time.Now())
	_, err := c.coll.ReplaceOne(ctx, bson.M{"_id": key}, e, options.Replace().SetUpsert(true))
	return err
}

// Delete removes a value.
func (c *MongoCache) Delete(ctx context.Context, key string) error {
	_, err := c.coll.DeleteOne(ctx, bson.M{"_id": key})
	return err
}

// Close disconnects the client.
func (c *MongoCache) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return c.client.Disconnect(ctx)
}

func newMongoEntry(key string, data []byte, ttl time.Duration, now time.Time) mongoEntry {
	e := mongoEntry{Key: key, Data: data}
	if ttl > 0 {
		at := now.Add(ttl)
		e.ExpiresAt = &at
	}
	return e
}

func expired(e mongoEntry, now time.Time) bool {
	return e.ExpiresAt != nil && now.After(*e.ExpiresAt)
}

var _ Cache = (*MongoCache)(nil)
