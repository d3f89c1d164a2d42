package tweetrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/WangWilly/xBrowse/pkgs/model"
	"github.com/WangWilly/xBrowse/pkgs/query"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const DefaultCollection = "tweets"

// Repo runs tweet queries against a collection of the database handle
// passed to each call.
type Repo struct {
	collection string
}

func New() *Repo {
	return NewWithCollection(DefaultCollection)
}

func NewWithCollection(name string) *Repo {
	if name == "" {
		name = DefaultCollection
	}
	return &Repo{collection: name}
}

func (r *Repo) Collection() string {
	return r.collection
}

func (r *Repo) coll(db *mongo.Database) *mongo.Collection {
	return db.Collection(r.collection)
}

////////////////////////////////////////////////////////////////////////////////
// Collection lifecycle
////////////////////////////////////////////////////////////////////////////////

func (r *Repo) Exists(ctx context.Context, db *mongo.Database) (bool, error) {
	names, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: r.collection}})
	if err != nil {
		return false, fmt.Errorf("failed to list collections: %w", err)
	}
	return len(names) > 0, nil
}

func (r *Repo) Drop(ctx context.Context, db *mongo.Database) error {
	if err := r.coll(db).Drop(ctx); err != nil {
		return fmt.Errorf("failed to drop collection %s: %w", r.collection, err)
	}
	return nil
}

func (r *Repo) Count(ctx context.Context, db *mongo.Database) (int64, error) {
	return r.coll(db).CountDocuments(ctx, bson.D{})
}

////////////////////////////////////////////////////////////////////////////////
// Writes
////////////////////////////////////////////////////////////////////////////////

// InsertMany submits docs as one ordered batch.
func (r *Repo) InsertMany(ctx context.Context, db *mongo.Database, docs []any) (int, error) {
	res, err := r.coll(db).InsertMany(ctx, docs)
	if err != nil {
		return 0, fmt.Errorf("failed to insert batch of %d: %w", len(docs), err)
	}
	return len(res.InsertedIDs), nil
}

func (r *Repo) Insert(ctx context.Context, db *mongo.Database, doc any) (any, error) {
	res, err := r.coll(db).InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("failed to insert tweet: %w", err)
	}
	return res.InsertedID, nil
}

////////////////////////////////////////////////////////////////////////////////
// Browse queries
////////////////////////////////////////////////////////////////////////////////

// SearchTweets returns full tweets whose content contains every keyword.
func (r *Repo) SearchTweets(ctx context.Context, db *mongo.Database, kws []string) ([]model.Record, error) {
	if len(kws) == 0 {
		return nil, query.ErrNoKeywords
	}
	cur, err := r.coll(db).Find(ctx, query.KeywordFilter(kws))
	if err != nil {
		return nil, fmt.Errorf("failed to search tweets: %w", err)
	}
	return decodeAll(ctx, cur)
}

// SearchUsers returns one group per username matching term.
func (r *Repo) SearchUsers(ctx context.Context, db *mongo.Database, term string) ([]model.Record, error) {
	cur, err := r.coll(db).Aggregate(ctx, query.UserSearchPipeline(term))
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	return decodeAll(ctx, cur)
}

func (r *Repo) TopTweets(ctx context.Context, db *mongo.Database, field string, n int64) ([]model.Record, error) {
	q, err := query.TopTweets(field, n)
	if err != nil {
		return nil, err
	}
	opts := options.Find().
		SetProjection(q.Projection).
		SetSort(q.Sort).
		SetLimit(q.Limit)
	cur, err := r.coll(db).Find(ctx, q.Filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list top tweets: %w", err)
	}
	return decodeAll(ctx, cur)
}

func (r *Repo) TopUsers(ctx context.Context, db *mongo.Database, n int64) ([]model.Record, error) {
	pipeline, err := query.TopUsersPipeline(n)
	if err != nil {
		return nil, err
	}
	cur, err := r.coll(db).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to list top users: %w", err)
	}
	return decodeAll(ctx, cur)
}

////////////////////////////////////////////////////////////////////////////////
// Detail lookups
////////////////////////////////////////////////////////////////////////////////

// GetTweet fetches the full tweet by its _id.
func (r *Repo) GetTweet(ctx context.Context, db *mongo.Database, objectId any) (model.Record, bool, error) {
	var doc bson.D
	err := r.coll(db).FindOne(ctx, bson.D{{Key: model.FieldObjectId, Value: objectId}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get tweet: %w", err)
	}
	return model.Record(doc), true, nil
}

// GetUser returns the embedded user of the username's tweet with the
// highest followersCount.
func (r *Repo) GetUser(ctx context.Context, db *mongo.Database, username string) (model.Record, bool, error) {
	filter, projection, sort := query.UserDetailFind(username)
	opts := options.FindOne().SetProjection(projection).SetSort(sort)

	var doc bson.D
	err := r.coll(db).FindOne(ctx, filter, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get user %s: %w", username, err)
	}

	user, ok := model.Record(doc).Sub(model.FieldUser)
	if !ok {
		log.WithFields(log.Fields{
			"caller":   "GetUser",
			"username": username,
		}).Debugln("tweet has no embedded user")
	}
	return user, ok, nil
}

func decodeAll(ctx context.Context, cur *mongo.Cursor) ([]model.Record, error) {
	defer cur.Close(ctx)

	var docs []bson.D
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode results: %w", err)
	}
	res := make([]model.Record, 0, len(docs))
	for _, d := range docs {
		res = append(res, model.Record(d))
	}
	return res, nil
}
