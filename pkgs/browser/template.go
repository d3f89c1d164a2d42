package browser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/WangWilly/xBrowse/pkgs/model"
)

// Highlighter decorates keyword hits inside a rendered summary.
type Highlighter func(s string) string

// Template renders one summary row.
type Template func(row model.Record, hl Highlighter) string

func TweetSummary(row model.Record, hl Highlighter) string {
	return fmt.Sprintf("ID: %s, Date: %s, Content: %s, Username: %s",
		row.Display(model.FieldId),
		row.Display(model.FieldDate),
		quoteHighlighted(row, model.FieldContent, hl),
		row.Display(model.PathUsername),
	)
}

func TopTweetSummary(field string) Template {
	return func(row model.Record, hl Highlighter) string {
		return fmt.Sprintf("ID: %s | Date: %s | Content: %s | Username: %s | %s: %s",
			row.Display(model.FieldObjectId),
			row.Display(model.FieldDate),
			quoteHighlighted(row, model.FieldContent, hl),
			row.Display(model.PathUsername),
			field,
			row.Display(field),
		)
	}
}

// UserSummary renders a user-search group keyed by username.
func UserSummary(row model.Record, hl Highlighter) string {
	return fmt.Sprintf("Username: %s, Display Name: %s, Location: %s",
		row.Display(model.FieldObjectId),
		hl(row.Display(model.FieldDisplayName)),
		hl(row.Display(model.FieldLocation)),
	)
}

func TopUserSummary(row model.Record, hl Highlighter) string {
	return fmt.Sprintf("Username: %s, Display Name: %s, Followers: %s",
		row.Display(model.FieldObjectId),
		row.Display(model.FieldDisplayName),
		row.Display(model.FieldFollowersCount),
	)
}

// sgr matches the colour sequences a Highlighter inserts.
var sgr = regexp.MustCompile("\x1b\\[[0-9;]*m")

// quoteHighlighted highlights the raw string at path and then quotes it,
// leaving the inserted colour sequences unescaped. Escapes produced by
// quoting are never highlighted.
func quoteHighlighted(row model.Record, path string, hl Highlighter) string {
	s, ok := row.GetOr(path, nil).(string)
	if !ok || strings.ContainsRune(s, '\x1b') {
		return row.Quoted(path)
	}

	marked := hl(s)
	var sb strings.Builder
	sb.WriteByte('"')
	last := 0
	for _, loc := range sgr.FindAllStringIndex(marked, -1) {
		sb.WriteString(quoteInner(marked[last:loc[0]]))
		sb.WriteString(marked[loc[0]:loc[1]])
		last = loc[1]
	}
	sb.WriteString(quoteInner(marked[last:]))
	sb.WriteByte('"')
	return sb.String()
}

func quoteInner(s string) string {
	q := strconv.Quote(s)
	return q[1 : len(q)-1]
}
