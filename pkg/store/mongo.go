package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/cumulus/pkg/errors"
)

const (
	defaultDatabase   = "cumulus"
	cloudsCollection  = "clouds"
	connectionTimeout = 10 * time.Second
)

// MongoStore implements Store on MongoDB.
type MongoStore struct {
	client *mongo.Client
	clouds *mongo.Collection
}

// MongoConfig configures the MongoDB connection.
type MongoConfig struct {
	URI      string // mongodb:// connection string
	Database string // defaults to "cumulus"
}

// NewMongoStore connects to MongoDB and verifies the connection with a ping.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = defaultDatabase
	}

	ctx, cancel := context.WithTimeout(ctx, connectionTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "ping mongodb")
	}

	return &MongoStore{
		client: client,
		clouds: client.Database(cfg.Database).Collection(cloudsCollection),
	}, nil
}

// Save upserts the document by ID.
func (s *MongoStore) Save(ctx context.Context, doc *Document) error {
	doc.UpdatedAt = time.Now().UTC()

	opts := options.Replace().SetUpsert(true)
	if _, err := s.clouds.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, opts); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "save cloud %s", doc.ID)
	}
	return nil
}

// Get retrieves a document by ID.
func (s *MongoStore) Get(ctx context.Context, id string) (*Document, error) {
	var doc Document
	err := s.clouds.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "get cloud %s", id)
	}
	return &doc, nil
}

// List returns summaries of all documents, most recently updated first.
// Payloads are excluded via projection; the item count is read off the
// stored layout.
func (s *MongoStore) List(ctx context.Context) ([]Summary, error) {
	opts := options.Find().
		SetProjection(bson.M{"_id": 1, "name": 1, "updated_at": 1, "layout.item_count": 1}).
		SetSort(bson.M{"updated_at": -1})

	cur, err := s.clouds.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "list clouds")
	}
	defer cur.Close(ctx)

	var rows []struct {
		ID        string    `bson:"_id"`
		Name      string    `bson:"name"`
		UpdatedAt time.Time `bson:"updated_at"`
		Layout    struct {
			ItemCount int `bson:"item_count"`
		} `bson:"layout"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "decode cloud summaries")
	}

	out := make([]Summary, len(rows))
	for i, r := range rows {
		out[i] = Summary{
			ID:        r.ID,
			Name:      r.Name,
			ItemCount: r.Layout.ItemCount,
			UpdatedAt: r.UpdatedAt,
		}
	}
	return out, nil
}

// Delete removes a document by ID.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.clouds.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "delete cloud %s", id)
	}
	if res.DeletedCount == 0 {
		return notFound(id)
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
