package query

import (
	"fmt"
	"slices"
	"strings"

	"github.com/WangWilly/xBrowse/pkgs/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// SortFields are the engagement counters a top-tweets query may rank by.
var SortFields = []string{model.FieldRetweetCount, model.FieldLikeCount, model.FieldQuoteCount}

// InvalidFieldError is returned for a sort field outside SortFields.
type InvalidFieldError struct {
	Field string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("invalid field %q, please choose one of [%s]", e.Field, strings.Join(SortFields, ", "))
}

// ValidateSortField checks field against SortFields.
func ValidateSortField(field string) error {
	if !slices.Contains(SortFields, field) {
		return &InvalidFieldError{Field: field}
	}
	return nil
}

////////////////////////////////////////////////////////////////////////////////
// Top tweets
////////////////////////////////////////////////////////////////////////////////

// TopTweetsQuery is a find request: ranked, projected, limited.
type TopTweetsQuery struct {
	Field      string
	Filter     bson.D
	Projection bson.D
	Sort       bson.D
	Limit      int64
}

// TopTweets ranks tweets by field descending. Ties are broken by _id ascending.
func TopTweets(field string, n int64) (TopTweetsQuery, error) {
	if err := ValidateSortField(field); err != nil {
		return TopTweetsQuery{}, err
	}
	if n < 1 {
		return TopTweetsQuery{}, ErrNonPositive
	}
	return TopTweetsQuery{
		Field:  field,
		Filter: bson.D{},
		Projection: bson.D{
			{Key: model.FieldObjectId, Value: 1},
			{Key: model.FieldId, Value: 1},
			{Key: model.FieldDate, Value: 1},
			{Key: model.FieldContent, Value: 1},
			{Key: model.PathUsername, Value: 1},
			{Key: field, Value: 1},
		},
		Sort: bson.D{
			{Key: field, Value: -1},
			{Key: model.FieldObjectId, Value: 1},
		},
		Limit: n,
	}, nil
}

////////////////////////////////////////////////////////////////////////////////
// Users
////////////////////////////////////////////////////////////////////////////////

// UserSearchPipeline finds users by display name or location and keeps one
// group per username with the first-seen display name and location.
func UserSearchPipeline(term string) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: UserTermFilter(term)}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$" + model.PathUsername},
			{Key: model.FieldDisplayName, Value: bson.D{{Key: "$first", Value: "$" + model.PathDisplayName}}},
			{Key: model.FieldLocation, Value: bson.D{{Key: "$first", Value: "$" + model.PathLocation}}},
		}}},
	}
}

// TopUsersPipeline groups by username, keeps the highest followersCount seen
// for each, and returns the n largest. Ties are broken by username ascending.
func TopUsersPipeline(n int64) (mongo.Pipeline, error) {
	if n < 1 {
		return nil, ErrNonPositive
	}
	return mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$" + model.PathUsername},
			{Key: model.FieldDisplayName, Value: bson.D{{Key: "$first", Value: "$" + model.PathDisplayName}}},
			{Key: model.FieldFollowersCount, Value: bson.D{{Key: "$max", Value: "$" + model.PathFollowersCount}}},
		}}},
		{{Key: "$sort", Value: bson.D{
			{Key: model.FieldFollowersCount, Value: -1},
			{Key: "_id", Value: 1},
		}}},
		{{Key: "$limit", Value: n}},
	}, nil
}

// UserDetailFind selects the snapshot of username with the most followers.
func UserDetailFind(username string) (filter, projection, sort bson.D) {
	filter = bson.D{{Key: model.PathUsername, Value: username}}
	projection = bson.D{
		{Key: model.FieldObjectId, Value: 0},
		{Key: model.FieldUser, Value: 1},
	}
	sort = bson.D{
		{Key: model.PathFollowersCount, Value: -1},
		{Key: model.FieldObjectId, Value: 1},
	}
	return filter, projection, sort
}
