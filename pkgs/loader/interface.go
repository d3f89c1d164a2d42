package loader

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

type TweetRepo interface {
	Collection() string
	Exists(ctx context.Context, db *mongo.Database) (bool, error)
	Drop(ctx context.Context, db *mongo.Database) error
	InsertMany(ctx context.Context, db *mongo.Database, docs []any) (int, error)
}
