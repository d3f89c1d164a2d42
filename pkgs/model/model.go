package model

import (
	"time"
)

// QueryHistory is one executed console query.
type QueryHistory struct {
	Id          int64     `db:"id"`
	SessionId   string    `db:"session_id"`
	Command     string    `db:"command"`
	Terms       string    `db:"terms"`
	ResultCount int       `db:"result_count"`
	CreatedAt   time.Time `db:"created_at"`
}
