package historyrepo

import (
	"context"
	"fmt"

	"github.com/WangWilly/xBrowse/pkgs/model"
	"github.com/jmoiron/sqlx"
)

type Repo struct{}

func New() *Repo {
	return &Repo{}
}

func (r *Repo) CreateTable(ctx context.Context, db *sqlx.DB) error {
	if err := model.CreateTables(db); err != nil {
		return fmt.Errorf("failed to create history table: %w", err)
	}
	return nil
}

func (r *Repo) Create(ctx context.Context, db *sqlx.DB, h *model.QueryHistory) error {
	stmt := db.Rebind(`INSERT INTO query_history(session_id, command, terms, result_count, created_at)
			VALUES(?, ?, ?, ?, ?)
			RETURNING id`)
	if err := db.GetContext(ctx, &h.Id, stmt, h.SessionId, h.Command, h.Terms, h.ResultCount, h.CreatedAt); err != nil {
		return fmt.Errorf("failed to record query: %w", err)
	}
	return nil
}

// ListRecent returns the newest entries first.
func (r *Repo) ListRecent(ctx context.Context, db *sqlx.DB, limit int) ([]*model.QueryHistory, error) {
	stmt := db.Rebind(`SELECT * FROM query_history ORDER BY created_at DESC, id DESC LIMIT ?`)
	var entries []*model.QueryHistory
	if err := db.SelectContext(ctx, &entries, stmt, limit); err != nil {
		return nil, fmt.Errorf("failed to list query history: %w", err)
	}
	return entries, nil
}

func (r *Repo) CountBySession(ctx context.Context, db *sqlx.DB, sessionId string) (int64, error) {
	stmt := db.Rebind(`SELECT COUNT(*) FROM query_history WHERE session_id=?`)
	var count int64
	err := db.GetContext(ctx, &count, stmt, sessionId)
	return count, err
}
