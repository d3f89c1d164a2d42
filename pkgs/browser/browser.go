package browser

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/WangWilly/xBrowse/pkgs/model"
	"github.com/gookit/color"
	log "github.com/sirupsen/logrus"
)

// Detail describes how a flow turns a selected row into a full record.
type Detail struct {
	Prompt   string
	Fetch    Fetcher
	Heading  func(row model.Record) string
	NotFound func(row model.Record) string
}

// Browser renders result sets and serves detail selections.
type Browser struct {
	in  Prompter
	out io.Writer
}

func New(in Prompter, out io.Writer) *Browser {
	return &Browser{in: in, out: out}
}

// Browse lists rs and then asks for one row to show in full. Invalid input
// repeats the prompt; "0" returns without fetching.
func (b *Browser) Browse(ctx context.Context, rs *ResultSet, d Detail) error {
	if err := rs.Render(b.out); err != nil {
		return err
	}

	for {
		line, err := b.in.ReadLine(d.Prompt)
		if err != nil {
			return err
		}

		idx, err := ParseSelection(line, rs.Len())
		if errors.Is(err, ErrCancel) {
			return nil
		}
		var selErr *SelectionError
		if errors.As(err, &selErr) {
			PrintError(b.out, selErr)
			continue
		}

		row := rs.At(idx)
		log.WithFields(log.Fields{
			"caller": "Browse",
			"index":  idx + 1,
		}).Debugln("fetching detail")

		full, ok, err := d.Fetch(ctx, row)
		if err != nil {
			return err
		}
		if !ok {
			if d.NotFound != nil {
				fmt.Fprintln(b.out, d.NotFound(row))
			}
			return nil
		}

		if d.Heading != nil {
			fmt.Fprintln(b.out, color.FgCyan.Render(d.Heading(row)))
		}
		return PrintDetail(b.out, full)
	}
}

// PrintError writes err as a console error line.
func PrintError(w io.Writer, err error) {
	fmt.Fprintln(w, color.FgRed.Render("Error: "+err.Error()))
}
