package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	defaultTimeout     = 10 * time.Second
	collectionCounters = "counters"
)

// Config selects the deployment and database holding the catalog.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Conn owns the client and the catalog database. It doubles as the
// readiness probe for the storage layer.
type Conn struct {
	client  *mongo.Client
	db      *mongo.Database
	timeout time.Duration
}

// Connect dials cfg.URI and pings the primary before returning.
func Connect(ctx context.Context, cfg Config) (*Conn, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName("course-catalog").
		SetServerSelectionTimeout(timeout)

	dialCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	client, err := mongo.Connect(dialCtx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	conn := &Conn{client: client, db: client.Database(cfg.Database), timeout: timeout}
	if err := conn.Ping(dialCtx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return conn, nil
}

func (c *Conn) Database() *mongo.Database { return c.db }

func (c *Conn) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.client.Ping(ctx, readpref.Primary())
}

func (c *Conn) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

// EnsureIndexes creates the unique indexes the repositories depend on.
func (c *Conn) EnsureIndexes(ctx context.Context) error {
	if err := NewUserRepository(c.db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("user indexes: %w", err)
	}
	if err := NewEnrollmentRepository(c.db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("enrollment indexes: %w", err)
	}
	return nil
}

// storedTime drops what BSON datetimes cannot hold, so a freshly created
// record matches what later reads return.
func storedTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

type counter struct {
	Seq int64 `bson:"seq"`
}

// nextID hands out sequential numeric ids per collection from the counters
// collection, so documents keep the integer ids the API exposes.
func nextID(ctx context.Context, db *mongo.Database, name string) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var c counter
	err := db.Collection(collectionCounters).FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		opts,
	).Decode(&c)
	if err != nil {
		return 0, fmt.Errorf("next %s id: %w", name, err)
	}
	return c.Seq, nil
}
