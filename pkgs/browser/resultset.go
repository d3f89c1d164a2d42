package browser

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/WangWilly/xBrowse/pkgs/model"
	"github.com/WangWilly/xBrowse/pkgs/query"
)

var ErrCancel = errors.New("selection cancelled")

// SelectionError is an unusable selection; the prompt repeats.
type SelectionError struct {
	Input  string
	Reason string
}

func (e *SelectionError) Error() string {
	return e.Reason
}

// ResultSet is the listing of one query. Rows keep their position for the
// lifetime of the set.
type ResultSet struct {
	rows []model.Record
	tmpl Template
	hl   Highlighter
}

func NewResultSet(rows []model.Record, tmpl Template) *ResultSet {
	return &ResultSet{
		rows: rows,
		tmpl: tmpl,
		hl:   func(s string) string { return s },
	}
}

// WithHighlighter sets the decorator applied by the template.
func (rs *ResultSet) WithHighlighter(hl Highlighter) *ResultSet {
	if hl != nil {
		rs.hl = hl
	}
	return rs
}

func (rs *ResultSet) Len() int {
	return len(rs.rows)
}

// At returns the row at the 0-based index.
func (rs *ResultSet) At(i int) model.Record {
	return rs.rows[i]
}

// Render writes "1. <summary>" lines.
func (rs *ResultSet) Render(w io.Writer) error {
	for i, row := range rs.rows {
		if _, err := fmt.Fprintf(w, "%d. %s\n", i+1, rs.tmpl(row, rs.hl)); err != nil {
			return err
		}
	}
	return nil
}

// ParseSelection converts a 1-based choice into a 0-based index into a
// listing of n rows.
func ParseSelection(input string, n int) (int, error) {
	s := strings.TrimSpace(input)
	if s == query.CancelToken {
		return 0, ErrCancel
	}
	choice, err := strconv.Atoi(s)
	if err != nil {
		return 0, &SelectionError{Input: s, Reason: "please enter a valid number"}
	}
	if choice < 1 || choice > n {
		return 0, &SelectionError{Input: s, Reason: fmt.Sprintf("invalid choice, please select a number between 1 and %d", n)}
	}
	return choice - 1, nil
}
