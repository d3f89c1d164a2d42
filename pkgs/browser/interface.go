package browser

import (
	"context"

	"github.com/WangWilly/xBrowse/pkgs/model"
)

type Prompter interface {
	ReadLine(prompt string) (string, error)
}

// Fetcher resolves a summary row into the record shown in full.
type Fetcher func(ctx context.Context, row model.Record) (model.Record, bool, error)
