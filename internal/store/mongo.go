package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const DraftCollection = "console_drafts"

type draftDoc struct {
	Key     string    `bson:"_id"`
	Data    bson.Raw  `bson:"data"`
	SavedAt time.Time `bson:"savedAt"`
}

type MongoStore struct {
	coll *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{coll: db.Collection(DraftCollection)}
}

func (s *MongoStore) Put(ctx context.Context, key string, v any) error {
	data, err := bson.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode draft %s: %w", key, err)
	}
	doc := draftDoc{Key: key, Data: data, SavedAt: time.Now().UTC()}
	opts := options.Replace().SetUpsert(true)
	if _, err := s.coll.ReplaceOne(ctx, bson.M{"_id": key}, doc, opts); err != nil {
		return fmt.Errorf("save draft %s: %w", key, err)
	}
	return nil
}

func (s *MongoStore) Get(ctx context.Context, key string, out any) (time.Time, error) {
	var doc draftDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return time.Time{}, ErrNotFound
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("load draft %s: %w", key, err)
	}
	if err := bson.Unmarshal(doc.Data, out); err != nil {
		return time.Time{}, fmt.Errorf("decode draft %s: %w", key, err)
	}
	return doc.SavedAt, nil
}

func (s *MongoStore) Delete(ctx context.Context, key string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("delete draft %s: %w", key, err)
	}
	return nil
}
