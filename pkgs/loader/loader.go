package loader

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/WangWilly/xBrowse/pkgs/metrics"
	log "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	DefaultBatchSize = 10000
	maxLineSize      = 16 << 20
)

// LineError reports the first line that is not a JSON document.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// Stats summarizes one load.
type Stats struct {
	Lines    int
	Inserted int
	Batches  int
	Dropped  bool
	// Users counts distinct user.username values seen in the input.
	Users int
}

////////////////////////////////////////////////////////////////////////////////

// Loader replaces the tweets collection with the contents of a JSON Lines
// stream.
type Loader struct {
	repo      TweetRepo
	batchSize int
}

func New(repo TweetRepo, batchSize int) *Loader {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Loader{repo: repo, batchSize: batchSize}
}

// Load drops the existing collection, then inserts every line of r in
// batches of batchSize. It stops at the first malformed line or store error;
// the collection may be left empty or partially loaded in that case.
func (l *Loader) Load(ctx context.Context, db *mongo.Database, r io.Reader) (Stats, error) {
	logger := log.WithFields(log.Fields{
		"caller":     "Load",
		"collection": l.repo.Collection(),
	})
	var stats Stats

	exists, err := l.repo.Exists(ctx, db)
	if err != nil {
		return stats, err
	}
	if exists {
		if err := l.repo.Drop(ctx, db); err != nil {
			return stats, err
		}
		stats.Dropped = true
		logger.Infof("existing '%s' collection dropped", l.repo.Collection())
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	users := make(map[string]struct{})
	batch := make([]any, 0, l.batchSize)
	flush := func() error {
		n, err := l.repo.InsertMany(ctx, db, batch)
		if err != nil {
			return err
		}
		stats.Inserted += n
		stats.Batches++
		metrics.LoaderBatches.Inc()
		metrics.LoaderRecords.Add(float64(n))
		logger.WithFields(log.Fields{
			"batch": stats.Batches,
			"users": len(users),
		}).Infof("inserted a batch of %d tweets", n)
		batch = make([]any, 0, l.batchSize)
		return nil
	}

	for scanner.Scan() {
		stats.Lines++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			logger.WithField("line", stats.Lines).Debugln("skipped blank line")
			continue
		}

		doc, username, err := parseLine(line)
		if err != nil {
			return stats, &LineError{Line: stats.Lines, Err: err}
		}
		if username != "" {
			users[username] = struct{}{}
		}
		batch = append(batch, doc)

		if len(batch) == l.batchSize {
			if err := flush(); err != nil {
				return stats, err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("failed to read input after line %d: %w", stats.Lines, err)
	}

	if len(batch) > 0 {
		if err := flush(); err != nil {
			return stats, err
		}
	}

	stats.Users = len(users)
	logger.WithFields(log.Fields{
		"inserted": stats.Inserted,
		"users":    stats.Users,
	}).Infoln("all tweets have been inserted")
	return stats, nil
}

// parseLine decodes one JSON object and extracts its user.username.
func parseLine(line []byte) (bson.D, string, error) {
	if !gjson.ValidBytes(line) {
		return nil, "", fmt.Errorf("invalid JSON")
	}
	parsed := gjson.ParseBytes(line)
	if !parsed.IsObject() {
		return nil, "", fmt.Errorf("not a JSON object")
	}

	var doc bson.D
	if err := bson.UnmarshalExtJSON(line, false, &doc); err != nil {
		return nil, "", err
	}
	username := parsed.Get("user.username")
	if username.Type != gjson.String {
		return doc, "", nil
	}
	return doc, username.String(), nil
}
