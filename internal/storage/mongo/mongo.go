// Package mongo provides the MongoDB implementation of storage.Gateway,
// the production document store for registration profiles and resumes.
//
// Each EntityKind maps to a collection of the same name. The resume
// collection carries a unique index on basicInformation.email so that email
// uniqueness is enforced by the store itself, not by a racy read-then-write.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/aanand-mishra/student-profiles-api/internal/config"
	"github.com/aanand-mishra/student-profiles-api/internal/storage"
	"github.com/aanand-mishra/student-profiles-api/internal/types"
)

// Gateway is the concrete MongoDB storage.Gateway.
// A *mongo.Client is a connection pool and is safe for concurrent use.
type Gateway struct {
	client *mongo.Client
	db     *mongo.Database
}

var _ storage.Gateway = (*Gateway)(nil)

// New connects to cfg.Storage.MongoURI, verifies the connection and makes
// sure the unique email index exists.
func New(ctx context.Context, cfg *config.Config) (*Gateway, error) {
	opts := options.Client().
		ApplyURI(cfg.Storage.MongoURI).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1)).
		SetMaxPoolSize(cfg.Storage.MaxPoolSize).
		SetMinPoolSize(cfg.Storage.MinPoolSize).
		SetMaxConnIdleTime(60 * time.Second).
		SetRetryWrites(true).
		SetRetryReads(true)

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("mongo.New: connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Storage.ConnectTimeout)
	defer cancel()

	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo.New: ping: %w", err)
	}

	g := &Gateway{client: client, db: client.Database(cfg.Storage.Database)}

	if err := g.ensureIndexes(pingCtx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return g, nil
}

func (g *Gateway) ensureIndexes(ctx context.Context) error {
	index := mongo.IndexModel{
		Keys:    bson.D{{Key: storage.ResumeEmailField, Value: 1}},
		Options: options.Index().SetUnique(true),
	}

	_, err := g.collection(types.KindResumeDetails).Indexes().CreateOne(ctx, index)
	if err != nil {
		return fmt.Errorf("mongo.New: create email index: %w", err)
	}
	return nil
}

func (g *Gateway) collection(kind types.EntityKind) *mongo.Collection {
	return g.db.Collection(string(kind))
}

// Create inserts record and returns the hex form of the generated ObjectID.
func (g *Gateway) Create(ctx context.Context, kind types.EntityKind, record any) (string, error) {
	res, err := g.collection(kind).InsertOne(ctx, record)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", storage.ErrConflict
		}
		return "", fmt.Errorf("Create %s: insert: %w", kind, err)
	}

	if id, ok := res.InsertedID.(bson.ObjectID); ok {
		return id.Hex(), nil
	}
	return fmt.Sprint(res.InsertedID), nil
}

// FindOne decodes the first document of kind whose field equals value.
func (g *Gateway) FindOne(ctx context.Context, kind types.EntityKind, field string, value any, out any) (string, error) {
	raw, err := g.collection(kind).FindOne(ctx, bson.D{{Key: field, Value: value}}).Raw()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", storage.ErrNotFound
		}
		return "", fmt.Errorf("FindOne %s: %w", kind, err)
	}

	if err := bson.Unmarshal(raw, out); err != nil {
		return "", fmt.Errorf("FindOne %s: decode: %w", kind, err)
	}

	var id string
	if oid, ok := raw.Lookup("_id").ObjectIDOK(); ok {
		id = oid.Hex()
	}
	return id, nil
}

// Close disconnects the client, waiting for in-use connections up to ctx.
func (g *Gateway) Close(ctx context.Context) error {
	if err := g.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("mongo.Close: %w", err)
	}
	return nil
}
