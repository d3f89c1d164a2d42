package browser

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/WangWilly/xBrowse/pkgs/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type scriptedPrompter struct {
	lines   []string
	prompts []string
}

func (p *scriptedPrompter) ReadLine(prompt string) (string, error) {
	p.prompts = append(p.prompts, prompt)
	if len(p.lines) == 0 {
		return "", io.EOF
	}
	line := p.lines[0]
	p.lines = p.lines[1:]
	return line, nil
}

func rows(n int) []model.Record {
	res := make([]model.Record, 0, n)
	for i := 1; i <= n; i++ {
		res = append(res, model.Record{
			{Key: "_id", Value: i},
			{Key: "id", Value: int64(1000 + i)},
			{Key: "content", Value: "tweet number " + string(rune('0'+i))},
			{Key: "user", Value: bson.D{{Key: "username", Value: "user" + string(rune('0'+i))}}},
		})
	}
	return res
}

func TestResultSet_Render(t *testing.T) {
	rs := NewResultSet(append(rows(2), model.Record{}), TweetSummary)
	var buf bytes.Buffer

	require.NoError(t, rs.Render(&buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, `1. ID: 1001, Date: N/A, Content: "tweet number 1", Username: user1`, lines[0])
	assert.Equal(t, `2. ID: 1002, Date: N/A, Content: "tweet number 2", Username: user2`, lines[1])
	assert.Equal(t, `3. ID: N/A, Date: N/A, Content: N/A, Username: N/A`, lines[2])
}

func TestResultSet_RenderWithHighlighter(t *testing.T) {
	rs := NewResultSet(rows(1), TweetSummary).
		WithHighlighter(func(s string) string { return strings.ReplaceAll(s, "number", "[number]") })
	var buf bytes.Buffer

	require.NoError(t, rs.Render(&buf))

	assert.Contains(t, buf.String(), `"tweet [number] 1"`)
}

func TestTemplates(t *testing.T) {
	id := func(s string) string { return s }
	top := model.Record{
		{Key: "_id", Value: "abc"},
		{Key: "date", Value: "2021-03-30"},
		{Key: "content", Value: "hi"},
		{Key: "user", Value: bson.D{{Key: "username", Value: "bob"}}},
		{Key: "likeCount", Value: int32(7)},
	}
	assert.Equal(t, `ID: abc | Date: 2021-03-30 | Content: "hi" | Username: bob | likeCount: 7`, TopTweetSummary("likeCount")(top, id))

	group := model.Record{{Key: "_id", Value: "alice"}, {Key: "displayname", Value: "Alice"}, {Key: "location", Value: nil}}
	assert.Equal(t, "Username: alice, Display Name: Alice, Location: N/A", UserSummary(group, id))

	topUser := model.Record{{Key: "_id", Value: "bob"}, {Key: "followersCount", Value: int64(50)}}
	assert.Equal(t, "Username: bob, Display Name: N/A, Followers: 50", TopUserSummary(topUser, id))
}

func TestParseSelection(t *testing.T) {
	idx, err := ParseSelection("3", 5)
	require.NoError(t, err)
	assert.Equal(t, 2, idx)

	idx, err = ParseSelection(" 5 ", 5)
	require.NoError(t, err)
	assert.Equal(t, 4, idx)

	_, err = ParseSelection("0", 5)
	assert.ErrorIs(t, err, ErrCancel)

	for _, in := range []string{"6", "-2", "abc", "", "1.5"} {
		_, err := ParseSelection(in, 5)
		var selErr *SelectionError
		assert.True(t, errors.As(err, &selErr), in)
	}
}

func TestBrowse_RetriesUntilValid(t *testing.T) {
	ctx := context.Background()
	rs := NewResultSet(rows(5), TweetSummary)
	in := &scriptedPrompter{lines: []string{"abc", "6", "-2", "2"}}
	var out bytes.Buffer

	var fetched []model.Record
	err := New(in, &out).Browse(ctx, rs, Detail{
		Prompt: "Select a tweet: ",
		Fetch: func(ctx context.Context, row model.Record) (model.Record, bool, error) {
			fetched = append(fetched, row)
			return model.Record{
				{Key: "content", Value: "full\ntext"},
				{Key: "lang", Value: "en"},
			}, true, nil
		},
		Heading: func(row model.Record) string { return "Full Tweet Details:" },
	})

	require.NoError(t, err)
	require.Len(t, fetched, 1)
	assert.Equal(t, "1002", fetched[0].Display("id"))
	assert.Equal(t, 4, len(in.prompts))
	assert.Equal(t, 5, rs.Len(), "invalid selections leave the listing intact")
	assert.Equal(t, "1001", rs.At(0).Display("id"))

	text := out.String()
	assert.Equal(t, 3, strings.Count(text, "Error: "))
	assert.Contains(t, text, "Full Tweet Details:")
	assert.Contains(t, text, "content: \"full\\ntext\"\n")
	assert.Contains(t, text, "lang: en\n")
}

func TestBrowse_CancelDoesNotFetch(t *testing.T) {
	rs := NewResultSet(rows(5), TweetSummary)
	in := &scriptedPrompter{lines: []string{"0"}}
	var out bytes.Buffer

	err := New(in, &out).Browse(context.Background(), rs, Detail{
		Fetch: func(ctx context.Context, row model.Record) (model.Record, bool, error) {
			t.Fatal("fetch must not run on cancel")
			return nil, false, nil
		},
	})

	require.NoError(t, err)
	assert.NotContains(t, out.String(), "Error")
}

func TestBrowse_NotFound(t *testing.T) {
	rs := NewResultSet(rows(1), UserSummary)
	in := &scriptedPrompter{lines: []string{"1"}}
	var out bytes.Buffer

	err := New(in, &out).Browse(context.Background(), rs, Detail{
		Fetch: func(ctx context.Context, row model.Record) (model.Record, bool, error) {
			return nil, false, nil
		},
		NotFound: func(row model.Record) string { return "No details found" },
	})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "No details found")
}

func TestBrowse_FetchErrorPropagates(t *testing.T) {
	rs := NewResultSet(rows(1), TweetSummary)
	in := &scriptedPrompter{lines: []string{"1"}}
	boom := errors.New("server selection timeout")

	err := New(in, io.Discard).Browse(context.Background(), rs, Detail{
		Fetch: func(ctx context.Context, row model.Record) (model.Record, bool, error) {
			return nil, false, boom
		},
	})

	assert.ErrorIs(t, err, boom)
}

func TestBrowse_EndOfInput(t *testing.T) {
	rs := NewResultSet(rows(1), TweetSummary)

	err := New(&scriptedPrompter{}, io.Discard).Browse(context.Background(), rs, Detail{})

	assert.ErrorIs(t, err, io.EOF)
}

func TestPrintDetail(t *testing.T) {
	rec := model.Record{
		{Key: "username", Value: "bob"},
		{Key: "rawDescription", Value: `says "hi"`},
		{Key: "verified", Value: false},
		{Key: "followersCount", Value: nil},
		{Key: "descriptionUrls", Value: bson.A{"a", int32(1)}},
	}
	var buf bytes.Buffer

	require.NoError(t, PrintDetail(&buf, rec))

	assert.Equal(t, strings.Join([]string{
		"username: bob",
		`rawDescription: "says \"hi\""`,
		"verified: false",
		"followersCount: N/A",
		`descriptionUrls: ["a", 1]`,
	}, "\n")+"\n", buf.String())
}

func TestTweetSummary_HighlightSkipsEscapes(t *testing.T) {
	row := model.Record{
		{Key: "id", Value: int64(1)},
		{Key: "content", Value: "line\nnext"},
	}
	yellow := func(s string) string {
		return strings.ReplaceAll(s, "n", "\x1b[33mn\x1b[0m")
	}

	got := TweetSummary(row, yellow)

	assert.Equal(t, "ID: 1, Date: N/A, Content: \"li\x1b[33mn\x1b[0me\\n\x1b[33mn\x1b[0mext\", Username: N/A", got)
}
