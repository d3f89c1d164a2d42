package session

import (
	"context"

	"github.com/WangWilly/xBrowse/pkgs/model"
	"github.com/jmoiron/sqlx"
	"go.mongodb.org/mongo-driver/mongo"
)

type TweetRepo interface {
	SearchTweets(ctx context.Context, db *mongo.Database, kws []string) ([]model.Record, error)
	SearchUsers(ctx context.Context, db *mongo.Database, term string) ([]model.Record, error)
	TopTweets(ctx context.Context, db *mongo.Database, field string, n int64) ([]model.Record, error)
	TopUsers(ctx context.Context, db *mongo.Database, n int64) ([]model.Record, error)
	GetTweet(ctx context.Context, db *mongo.Database, objectId any) (model.Record, bool, error)
	GetUser(ctx context.Context, db *mongo.Database, username string) (model.Record, bool, error)
	Insert(ctx context.Context, db *mongo.Database, doc any) (any, error)
}

type HistoryRepo interface {
	Create(ctx context.Context, db *sqlx.DB, h *model.QueryHistory) error
}
