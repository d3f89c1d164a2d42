package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/WangWilly/xBrowse/pkgs/browser"
	"github.com/WangWilly/xBrowse/pkgs/metrics"
	"github.com/WangWilly/xBrowse/pkgs/model"
	"github.com/WangWilly/xBrowse/pkgs/query"
	"github.com/gookit/color"
)

var (
	errNoTweets = errors.New("no tweets found for the given keywords")
	errNoUsers  = errors.New("no users found for that search term")
)

// SearchTweets asks for keywords until at least one tweet matches all of
// them, then lets the user open one.
func (c *Console) SearchTweets(ctx context.Context) error {
	for {
		line, err := c.ReadLine("Enter keywords (space-separated) (or 0 to go back to main menu): ")
		if err != nil {
			return err
		}
		if query.IsKeywordCancel(line) {
			return nil
		}
		kws, err := query.ParseKeywords(line)
		if err != nil {
			browser.PrintError(c.out, err)
			continue
		}

		start := time.Now()
		rows, err := c.repo.SearchTweets(ctx, c.db, kws)
		metrics.ObserveQuery(CommandSearchTweets, start, err)
		if err != nil {
			return err
		}
		c.record(ctx, CommandSearchTweets, strings.Join(kws, " "), len(rows))
		if len(rows) == 0 {
			browser.PrintError(c.out, errNoTweets)
			continue
		}

		rs := browser.NewResultSet(rows, browser.TweetSummary).WithHighlighter(c.highlighter(kws))
		d := tweetDetail()
		d.Fetch = c.fetchTweet
		return c.browser.Browse(ctx, rs, d)
	}
}

// SearchUsers asks for a term until at least one user matches it, then
// lets the user open one.
func (c *Console) SearchUsers(ctx context.Context) error {
	for {
		line, err := c.ReadLine("Enter the search term (or 0 to go back to main menu): ")
		if err != nil {
			return err
		}
		if query.IsCancel(line) {
			return nil
		}
		term, err := query.ParseTerm(line)
		if err != nil {
			browser.PrintError(c.out, err)
			continue
		}

		start := time.Now()
		rows, err := c.repo.SearchUsers(ctx, c.db, term)
		metrics.ObserveQuery(CommandSearchUsers, start, err)
		if err != nil {
			return err
		}
		c.record(ctx, CommandSearchUsers, term, len(rows))
		if len(rows) == 0 {
			browser.PrintError(c.out, errNoUsers)
			continue
		}

		rs := browser.NewResultSet(rows, browser.UserSummary).WithHighlighter(c.highlighter([]string{term}))
		d := userDetail()
		d.Fetch = c.fetchUser
		return c.browser.Browse(ctx, rs, d)
	}
}

// TopTweets lists the n tweets with the largest value of an engagement
// counter.
func (c *Console) TopTweets(ctx context.Context) error {
	var field string
	for {
		line, err := c.ReadLine("Enter the field to sort by (retweetCount/likeCount/quoteCount) (or 0 to go back to main menu): ")
		if err != nil {
			return err
		}
		if query.IsCancel(line) {
			return nil
		}
		field = strings.TrimSpace(line)
		if err := query.ValidateSortField(field); err != nil {
			browser.PrintError(c.out, err)
			continue
		}
		break
	}

	n, ok, err := c.readCount("Enter the number of top tweets to list (or 0 to go back to main menu): ")
	if err != nil || !ok {
		return err
	}

	start := time.Now()
	rows, err := c.repo.TopTweets(ctx, c.db, field, n)
	metrics.ObserveQuery(CommandTopTweets, start, err)
	if err != nil {
		return err
	}
	c.record(ctx, CommandTopTweets, fmt.Sprintf("%s %d", field, n), len(rows))
	if len(rows) == 0 {
		fmt.Fprintln(c.out, "No tweets found.")
		return nil
	}

	fmt.Fprintln(c.out, color.FgCyan.Render(fmt.Sprintf("\nTop Tweets sorted by %s:", field)))
	d := tweetDetail()
	d.Fetch = c.fetchTweet
	return c.browser.Browse(ctx, browser.NewResultSet(rows, browser.TopTweetSummary(field)), d)
}

// TopUsers lists the n users with the most followers.
func (c *Console) TopUsers(ctx context.Context) error {
	n, ok, err := c.readCount("Enter the number of top users to list (or 0 to go back to main menu): ")
	if err != nil || !ok {
		return err
	}

	start := time.Now()
	rows, err := c.repo.TopUsers(ctx, c.db, n)
	metrics.ObserveQuery(CommandTopUsers, start, err)
	if err != nil {
		return err
	}
	c.record(ctx, CommandTopUsers, fmt.Sprint(n), len(rows))
	if len(rows) == 0 {
		browser.PrintError(c.out, errors.New("no users found"))
		return nil
	}

	fmt.Fprintln(c.out, color.FgCyan.Render("\nTop Users:"))
	d := userDetail()
	d.Fetch = c.fetchUser
	return c.browser.Browse(ctx, browser.NewResultSet(rows, browser.TopUserSummary), d)
}

// Compose stores free text as a new tweet of the placeholder user.
func (c *Console) Compose(ctx context.Context) error {
	content, err := c.ReadLine("Enter your tweet (or 0 to go back to main menu): ")
	if err != nil {
		return err
	}
	if query.IsCancel(content) {
		return nil
	}

	start := time.Now()
	_, err = c.repo.Insert(ctx, c.db, model.NewComposedTweet(content, c.now()))
	metrics.ObserveQuery(CommandCompose, start, err)
	if err != nil {
		return err
	}
	c.record(ctx, CommandCompose, "", 1)
	fmt.Fprintln(c.out, "Tweet composed successfully!")
	return nil
}

// readCount prompts for a positive number. ok is false on cancel.
func (c *Console) readCount(prompt string) (int64, bool, error) {
	for {
		line, err := c.ReadLine(prompt)
		if err != nil {
			return 0, false, err
		}
		if query.IsCancel(line) {
			return 0, false, nil
		}
		n, err := query.ParseCount(line)
		if err != nil {
			browser.PrintError(c.out, err)
			continue
		}
		return n, true, nil
	}
}
