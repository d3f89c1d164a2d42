package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// Field names read by the browse engine.
const (
	FieldObjectId       = "_id"
	FieldId             = "id"
	FieldDate           = "date"
	FieldContent        = "content"
	FieldUser           = "user"
	FieldRawDescription = "rawDescription"
	FieldRetweetCount   = "retweetCount"
	FieldLikeCount      = "likeCount"
	FieldQuoteCount     = "quoteCount"

	FieldUsername       = "username"
	FieldDisplayName    = "displayname"
	FieldLocation       = "location"
	FieldFollowersCount = "followersCount"

	PathUsername       = FieldUser + "." + FieldUsername
	PathDisplayName    = FieldUser + "." + FieldDisplayName
	PathLocation       = FieldUser + "." + FieldLocation
	PathFollowersCount = FieldUser + "." + FieldFollowersCount
)

// ComposeUsername is the fixed author of composed tweets.
const ComposeUsername = "291user"

// ComposeDateLayout matches the date strings of the loaded data set.
const ComposeDateLayout = "2006-01-02T15:04:05+00:00"

// NewComposedTweet wraps content into a tweet skeleton. Everything other
// than date, content and user.username is null.
func NewComposedTweet(content string, now time.Time) bson.D {
	user := bson.D{
		{Key: FieldUsername, Value: ComposeUsername},
		{Key: FieldDisplayName, Value: nil},
		{Key: "id", Value: nil},
		{Key: "description", Value: nil},
		{Key: FieldRawDescription, Value: nil},
		{Key: "descriptionUrls", Value: nil},
		{Key: "verified", Value: nil},
		{Key: "created", Value: nil},
		{Key: FieldFollowersCount, Value: nil},
		{Key: "friendsCount", Value: nil},
		{Key: "statusesCount", Value: nil},
		{Key: "favouritesCount", Value: nil},
		{Key: "listedCount", Value: nil},
		{Key: "mediaCount", Value: nil},
		{Key: FieldLocation, Value: nil},
		{Key: "protected", Value: nil},
		{Key: "linkUrl", Value: nil},
		{Key: "linkTcourl", Value: nil},
		{Key: "profileImageUrl", Value: nil},
		{Key: "profileBannerUrl", Value: nil},
		{Key: "url", Value: nil},
	}

	return bson.D{
		{Key: "url", Value: nil},
		{Key: FieldDate, Value: now.UTC().Format(ComposeDateLayout)},
		{Key: FieldContent, Value: content},
		{Key: "renderedContent", Value: nil},
		{Key: FieldId, Value: nil},
		{Key: FieldUser, Value: user},
		{Key: "outlinks", Value: nil},
		{Key: "tcooutlinks", Value: nil},
		{Key: "replyCount", Value: nil},
		{Key: FieldRetweetCount, Value: nil},
		{Key: FieldLikeCount, Value: nil},
		{Key: FieldQuoteCount, Value: nil},
		{Key: "conversationId", Value: nil},
		{Key: "lang", Value: nil},
		{Key: "source", Value: nil},
		{Key: "sourceUrl", Value: nil},
		{Key: "sourceLabel", Value: nil},
		{Key: "media", Value: nil},
		{Key: "retweetedTweet", Value: nil},
		{Key: "quotedTweet", Value: nil},
		{Key: "mentionedUsers", Value: nil},
	}
}
