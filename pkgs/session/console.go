package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/WangWilly/xBrowse/pkgs/browser"
	"github.com/WangWilly/xBrowse/pkgs/model"
	"github.com/WangWilly/xBrowse/pkgs/query"
	"github.com/gookit/color"
	"github.com/jmoiron/sqlx"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
)

// Command names used for history and metrics.
const (
	CommandSearchTweets = "search_tweets"
	CommandSearchUsers  = "search_users"
	CommandTopTweets    = "top_tweets"
	CommandTopUsers     = "top_users"
	CommandCompose      = "compose"
)

var ErrInvalidChoice = errors.New("invalid choice, please try again")

// Console is one interactive session over a single shared store handle.
type Console struct {
	reader  *bufio.Reader
	out     io.Writer
	browser *browser.Browser

	db   *mongo.Database
	repo TweetRepo

	history   HistoryRepo
	historyDB *sqlx.DB
	sessionId string

	highlight bool
	now       func() time.Time
}

func New(in io.Reader, out io.Writer, db *mongo.Database, repo TweetRepo) *Console {
	c := &Console{
		reader:  bufio.NewReader(in),
		out:     out,
		db:      db,
		repo:    repo,
		now:     time.Now,
	}
	c.browser = browser.New(c, out)
	return c
}

// WithHistory records every executed query under sessionId.
func (c *Console) WithHistory(repo HistoryRepo, db *sqlx.DB, sessionId string) *Console {
	c.history = repo
	c.historyDB = db
	c.sessionId = sessionId
	return c
}

// WithHighlight colours keyword hits in search listings.
func (c *Console) WithHighlight(on bool) *Console {
	c.highlight = on
	return c
}

// ReadLine prints prompt and reads one line of any length. It returns
// io.EOF when the input is exhausted.
func (c *Console) ReadLine(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	line, err := c.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

////////////////////////////////////////////////////////////////////////////////
// Main menu
////////////////////////////////////////////////////////////////////////////////

func (c *Console) printMenu() {
	fmt.Fprintln(c.out, color.FgCyan.Render("Main Menu:"))
	fmt.Fprintln(c.out, "1. Search for tweets")
	fmt.Fprintln(c.out, "2. Search for users")
	fmt.Fprintln(c.out, "3. List top tweets")
	fmt.Fprintln(c.out, "4. List top users")
	fmt.Fprintln(c.out, "5. Compose a tweet")
	fmt.Fprintln(c.out, "6. Exit")
}

// Run serves the main menu until Exit or end of input. Failures inside a
// command are reported and the menu is shown again.
func (c *Console) Run(ctx context.Context) error {
	logger := log.WithFields(log.Fields{
		"caller":  "Run",
		"session": c.sessionId,
	})

	for {
		c.printMenu()
		choice, err := c.ReadLine("Enter your choice: ")
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(c.out)
			fmt.Fprintln(c.out, "Exiting...")
			return nil
		}
		if err != nil {
			return err
		}

		var cmd func(context.Context) error
		switch strings.TrimSpace(choice) {
		case "1":
			cmd = c.SearchTweets
		case "2":
			cmd = c.SearchUsers
		case "3":
			cmd = c.TopTweets
		case "4":
			cmd = c.TopUsers
		case "5":
			cmd = c.Compose
		case "6":
			fmt.Fprintln(c.out, "Exiting...")
			return nil
		default:
			browser.PrintError(c.out, ErrInvalidChoice)
			continue
		}

		err = cmd(ctx)
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(c.out)
			fmt.Fprintln(c.out, "Exiting...")
			return nil
		}
		if err != nil {
			logger.WithError(err).Errorln("command failed")
			browser.PrintError(c.out, err)
		}
	}
}

////////////////////////////////////////////////////////////////////////////////
// Helpers
////////////////////////////////////////////////////////////////////////////////

func (c *Console) record(ctx context.Context, command, terms string, n int) {
	if c.history == nil {
		return
	}
	err := c.history.Create(ctx, c.historyDB, &model.QueryHistory{
		SessionId:   c.sessionId,
		Command:     command,
		Terms:       terms,
		ResultCount: n,
		CreatedAt:   c.now(),
	})
	if err != nil {
		log.WithFields(log.Fields{
			"caller":  "record",
			"command": command,
		}).Warnln("failed to record query history:", err)
	}
}

func (c *Console) highlighter(kws []string) browser.Highlighter {
	if !c.highlight {
		return nil
	}
	m, err := query.NewMatcher(kws)
	if err != nil {
		return nil
	}
	return func(s string) string {
		return m.Highlight(s, func(hit string) string { return color.FgYellow.Render(hit) })
	}
}

func (c *Console) fetchTweet(ctx context.Context, row model.Record) (model.Record, bool, error) {
	id, ok := row.Get(model.FieldObjectId)
	if !ok {
		return nil, false, nil
	}
	return c.repo.GetTweet(ctx, c.db, id)
}

func (c *Console) fetchUser(ctx context.Context, row model.Record) (model.Record, bool, error) {
	username, ok := row.GetOr(model.FieldObjectId, nil).(string)
	if !ok {
		return nil, false, nil
	}
	return c.repo.GetUser(ctx, c.db, username)
}

func tweetDetail() browser.Detail {
	return browser.Detail{
		Prompt:   "\nSelect a tweet for detailed information (enter tweet number or 0 to go back to main menu): ",
		Heading:  func(model.Record) string { return "\nFull Tweet Details:" },
		NotFound: func(model.Record) string { return "Tweet details not found." },
	}
}

func userDetail() browser.Detail {
	return browser.Detail{
		Prompt: "\nSelect a user for detailed information (enter user number or 0 to go back to main menu): ",
		Heading: func(row model.Record) string {
			return fmt.Sprintf("\nFull details for username '%s':", row.Display(model.FieldObjectId))
		},
		NotFound: func(row model.Record) string {
			return fmt.Sprintf("No details found for username '%s'.", row.Display(model.FieldObjectId))
		},
	}
}
