// Package source reads raw documents out of the operational MongoDB database.
//
// Documents cross the boundary as plain records: BSON container and scalar
// types are sanitized into map[string]any, []any, time.Time and hex strings so
// downstream transforms never see driver types.
package source

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"dwetl/pkg/records"
)

// Config holds MongoDB connection parameters.
type Config struct {
	URI      string
	Database string
}

// Mongo is a read-only client over one source database.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect opens a MongoDB client for cfg.URI and verifies the connection with
// a ping against the primary.
func Connect(ctx context.Context, cfg Config) (*Mongo, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("source: URI must not be empty")
	}
	if cfg.Database == "" {
		return nil, fmt.Errorf("source: database must not be empty")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("source: connect: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("source: ping: %w", err)
	}

	return &Mongo{client: client, db: client.Database(cfg.Database)}, nil
}

// Close disconnects the underlying client.
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// Collection reads every document of the named collection, excluding the
// _id field, and returns sanitized records.
func (m *Mongo) Collection(ctx context.Context, name string) ([]records.Record, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 0})
	cur, err := m.db.Collection(name).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("source: find %s: %w", name, err)
	}
	defer cur.Close(ctx)

	var out []records.Record
	for cur.Next(ctx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("source: decode %s: %w", name, err)
		}
		out = append(out, sanitizeMap(doc))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("source: cursor %s: %w", name, err)
	}
	return out, nil
}

func sanitizeMap(m bson.M) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = sanitize(v)
	}
	return out
}

// sanitize converts BSON driver types into plain Go values, recursively.
func sanitize(v any) any {
	switch t := v.(type) {
	case bson.M:
		return sanitizeMap(t)
	case bson.D:
		out := make(map[string]any, len(t))
		for _, e := range t {
			out[e.Key] = sanitize(e.Value)
		}
		return out
	case bson.A:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = sanitize(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = sanitize(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = sanitize(e)
		}
		return out
	case primitive.DateTime:
		return t.Time().UTC()
	case primitive.ObjectID:
		return t.Hex()
	case primitive.Decimal128:
		return t.String()
	case primitive.Timestamp:
		return time.Unix(int64(t.T), 0).UTC()
	case primitive.Null, primitive.Undefined:
		return nil
	default:
		return v
	}
}
