package loader

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// fakeRepo keeps one collection in memory and logs every call in order.
type fakeRepo struct {
	exists    bool
	docs      []any
	calls     []string
	batchSize []int
	failAt    int
}

func (f *fakeRepo) Collection() string { return "tweets" }

func (f *fakeRepo) Exists(ctx context.Context, db *mongo.Database) (bool, error) {
	f.calls = append(f.calls, "exists")
	return f.exists, nil
}

func (f *fakeRepo) Drop(ctx context.Context, db *mongo.Database) error {
	f.calls = append(f.calls, "drop")
	f.exists = false
	f.docs = nil
	return nil
}

func (f *fakeRepo) InsertMany(ctx context.Context, db *mongo.Database, docs []any) (int, error) {
	f.calls = append(f.calls, "insert")
	if f.failAt > 0 && len(f.batchSize)+1 == f.failAt {
		return 0, errors.New("connection refused")
	}
	f.exists = true
	f.batchSize = append(f.batchSize, len(docs))
	f.docs = append(f.docs, docs...)
	return len(docs), nil
}

func lines(n int) string {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&sb, `{"id": %d, "content": "tweet %d", "user": {"username": "u%d"}}`+"\n", i, i, i%7)
	}
	return sb.String()
}

func TestLoad_Batches(t *testing.T) {
	repo := &fakeRepo{}
	l := New(repo, DefaultBatchSize)

	stats, err := l.Load(context.Background(), nil, strings.NewReader(lines(25000)))

	require.NoError(t, err)
	assert.Equal(t, []int{10000, 10000, 5000}, repo.batchSize)
	assert.Equal(t, 25000, stats.Inserted)
	assert.Equal(t, 3, stats.Batches)
	assert.False(t, stats.Dropped)
	assert.Equal(t, []string{"exists", "insert", "insert", "insert"}, repo.calls)
}

func TestLoad_ExactMultipleHasNoEmptyBatch(t *testing.T) {
	repo := &fakeRepo{}

	_, err := New(repo, 5).Load(context.Background(), nil, strings.NewReader(lines(10)))

	require.NoError(t, err)
	assert.Equal(t, []int{5, 5}, repo.batchSize)
}

func TestLoad_ReplacesExisting(t *testing.T) {
	repo := &fakeRepo{}
	l := New(repo, 4)
	input := lines(10)

	_, err := l.Load(context.Background(), nil, strings.NewReader(input))
	require.NoError(t, err)
	first := append([]any(nil), repo.docs...)

	stats, err := l.Load(context.Background(), nil, strings.NewReader(input))
	require.NoError(t, err)

	assert.True(t, stats.Dropped)
	assert.Len(t, repo.docs, 10)
	assert.Equal(t, first, repo.docs)
	assert.Equal(t, "drop", repo.calls[len(repo.calls)-4])
}

func TestLoad_DecodesDocuments(t *testing.T) {
	repo := &fakeRepo{}
	input := `{"content": "hi", "likeCount": 3, "user": {"username": "bob", "followersCount": null}}`

	_, err := New(repo, 10).Load(context.Background(), nil, strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, repo.docs, 1)
	doc := repo.docs[0].(bson.D)
	assert.Equal(t, "content", doc[0].Key)
	assert.Equal(t, "hi", doc[0].Value)
	assert.EqualValues(t, 3, doc[1].Value)
}

func TestLoad_SkipsBlankLines(t *testing.T) {
	repo := &fakeRepo{}
	input := "{\"a\": 1}\n\n   \n{\"a\": 2}\n"

	stats, err := New(repo, 10).Load(context.Background(), nil, strings.NewReader(input))

	require.NoError(t, err)
	assert.Equal(t, 2, stats.Inserted)
	assert.Equal(t, 4, stats.Lines)
}

func TestLoad_MalformedLineAborts(t *testing.T) {
	repo := &fakeRepo{exists: true}
	input := lines(3) + "{not json}\n" + lines(3)

	stats, err := New(repo, 2).Load(context.Background(), nil, strings.NewReader(input))

	var lineErr *LineError
	require.True(t, errors.As(err, &lineErr))
	assert.Equal(t, 4, lineErr.Line)
	assert.Equal(t, []int{2}, repo.batchSize, "only batches completed before the bad line are submitted")
	assert.Equal(t, 2, stats.Inserted)
	assert.True(t, stats.Dropped)
}

func TestLoad_NonObjectLineAborts(t *testing.T) {
	repo := &fakeRepo{}

	_, err := New(repo, 2).Load(context.Background(), nil, strings.NewReader("[1, 2]\n"))

	var lineErr *LineError
	require.True(t, errors.As(err, &lineErr))
	assert.Equal(t, 1, lineErr.Line)
	assert.Empty(t, repo.batchSize)
}

func TestLoad_StoreErrorAborts(t *testing.T) {
	repo := &fakeRepo{failAt: 2}

	stats, err := New(repo, 3).Load(context.Background(), nil, strings.NewReader(lines(9)))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, []int{3}, repo.batchSize)
	assert.Equal(t, 3, stats.Inserted)
	assert.Equal(t, []string{"exists", "insert", "insert"}, repo.calls)
}

func TestNew_DefaultBatchSize(t *testing.T) {
	assert.Equal(t, DefaultBatchSize, New(&fakeRepo{}, 0).batchSize)
}

func TestLoad_CountsDistinctUsers(t *testing.T) {
	repo := &fakeRepo{}
	input := lines(20) + `{"content": "no user"}` + "\n" + `{"user": {"username": null}}` + "\n"

	stats, err := New(repo, 8).Load(context.Background(), nil, strings.NewReader(input))

	require.NoError(t, err)
	assert.Equal(t, 22, stats.Inserted)
	assert.Equal(t, 7, stats.Users)
}
