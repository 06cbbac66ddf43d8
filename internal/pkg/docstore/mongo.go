package docstore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Mongo stores each path as one document in a collection, with a content
// hash as the version token. The precondition is a conditional replace
// filtered on the stored version, so a concurrent writer makes the
// replace match nothing and the stale write is rejected.
type Mongo struct {
	collection *mongo.Collection
}

type mongoDocument struct {
	Path      string    `bson:"_id"`
	Content   []byte    `bson:"content"`
	Version   string    `bson:"version"`
	Message   string    `bson:"message"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// NewMongo builds a Mongo-backed store over db's "documents" collection.
func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{
		collection: db.Collection("documents"),
	}
}

func (m *Mongo) Get(ctx context.Context, path string) (*Document, error) {
	var doc mongoDocument
	err := m.collection.FindOne(ctx, bson.M{"_id": path}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &Document{Content: doc.Content, Version: doc.Version}, nil
}

func (m *Mongo) Put(ctx context.Context, path string, content []byte, expectedVersion, message string) (string, error) {
	version := contentHash(content)
	doc := mongoDocument{
		Path:      path,
		Content:   content,
		Version:   version,
		Message:   message,
		UpdatedAt: time.Now(),
	}

	if expectedVersion == "" {
		// Creating: a duplicate key means someone else created it first.
		_, err := m.collection.InsertOne(ctx, doc)
		if mongo.IsDuplicateKeyError(err) {
			return "", ErrPreconditionFailed
		}
		if err != nil {
			return "", err
		}
		return version, nil
	}

	result, err := m.collection.ReplaceOne(ctx, bson.M{"_id": path, "version": expectedVersion}, doc)
	if err != nil {
		return "", err
	}
	if result.MatchedCount == 0 {
		return "", ErrPreconditionFailed
	}
	return version, nil
}
