package session

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// DefaultCollection is the collection MongoStore keeps sessions in.
const DefaultCollection = "sessions"

// mongoRecord is the persisted layout: one document per session id with a
// TTL index on expires.
type mongoRecord struct {
	ID        string         `bson:"_id"`
	Data      map[string]any `bson:"session"`
	Expires   time.Time      `bson:"expires"`
	CreatedAt time.Time      `bson:"createdAt"`
}

// MongoStore implements Store on a MongoDB collection. Expiry is enforced
// by a TTL index (see EnsureIndexes) and by filtering on read, since the
// TTL monitor only runs about once a minute.
type MongoStore struct {
	coll *mongo.Collection
	now  func() time.Time
}

// MongoStoreOption configures a MongoStore.
type MongoStoreOption func(*MongoStore)

// WithMongoCollection overrides the collection name.
func WithMongoCollection(db *mongo.Database, name string) MongoStoreOption {
	return func(s *MongoStore) {
		s.coll = db.Collection(name)
	}
}

// NewMongoStore creates a store on db.sessions.
func NewMongoStore(db *mongo.Database, opts ...MongoStoreOption) *MongoStore {
	s := &MongoStore{
		coll: db.Collection(DefaultCollection),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EnsureIndexes creates the TTL index on expires. It is idempotent.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires", Value: 1}},
		Options: options.Index().SetName("expires_ttl").SetExpireAfterSeconds(0),
	})
	return err
}

// Get retrieves a live session by id
func (s *MongoStore) Get(ctx context.Context, id string) (*Session, error) {
	var rec mongoRecord
	err := s.coll.FindOne(ctx, bson.M{
		"_id":     id,
		"expires": bson.M{"$gt": s.now()},
	}).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	if rec.Data == nil {
		rec.Data = make(map[string]any)
	}
	return &Session{
		ID:        rec.ID,
		Data:      rec.Data,
		ExpiresAt: rec.Expires,
		CreatedAt: rec.CreatedAt,
	}, nil
}

// Save upserts the session document
func (s *MongoStore) Save(ctx context.Context, session *Session) error {
	if session == nil || session.ID == "" {
		return ErrInvalidSession
	}

	rec := mongoRecord{
		ID:        session.ID,
		Data:      session.Data,
		Expires:   session.ExpiresAt,
		CreatedAt: session.CreatedAt,
	}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": session.ID}, rec, options.Replace().SetUpsert(true))
	return err
}

// Delete removes the session document
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	_, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
