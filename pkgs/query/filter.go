package query

import (
	"regexp"

	"github.com/WangWilly/xBrowse/pkgs/model"
	"go.mongodb.org/mongo-driver/bson"
)

////////////////////////////////////////////////////////////////////////////////
// Patterns
//
// The patterns avoid look-behind so that the same string is valid for the
// store ($regex, PCRE) and for Go's RE2 engine.
////////////////////////////////////////////////////////////////////////////////

// KeywordPattern matches kw as a whole word or as a hashtag.
func KeywordPattern(kw string) string {
	q := regexp.QuoteMeta(kw)
	return `(^|\W)#` + q + `\b|\b` + q + `\b`
}

// WordPattern matches term as a whole word.
func WordPattern(term string) string {
	return `\b` + regexp.QuoteMeta(term) + `\b`
}

func regex(pattern string) bson.D {
	return bson.D{
		{Key: "$regex", Value: pattern},
		{Key: "$options", Value: "i"},
	}
}

////////////////////////////////////////////////////////////////////////////////
// Filters
////////////////////////////////////////////////////////////////////////////////

// KeywordFilter requires every keyword to match the tweet content.
func KeywordFilter(kws []string) bson.D {
	clauses := make(bson.A, 0, len(kws))
	for _, kw := range kws {
		clauses = append(clauses, bson.D{{Key: model.FieldContent, Value: regex(KeywordPattern(kw))}})
	}
	return bson.D{{Key: "$and", Value: clauses}}
}

// UserTermFilter matches a whole-word term in the display name or location.
func UserTermFilter(term string) bson.D {
	pattern := WordPattern(term)
	return bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: model.PathDisplayName, Value: regex(pattern)}},
		bson.D{{Key: model.PathLocation, Value: regex(pattern)}},
	}}}
}
