package mysql

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"unicode/utf8"

	"review_dashboard/internal/adapters/observability"
)

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Ping(ctx context.Context) error { return r.db.PingContext(ctx) }

func (r *Repo) Get(ctx context.Context, id int64) (bool, bool, error) {
	var approved bool
	err := r.db.QueryRowContext(ctx, getApprovalSQL, id).Scan(&approved)
	if errors.Is(err, sql.ErrNoRows) {
		observability.ObserveApproval("mysql", "miss")
		return false, false, nil
	}
	if err != nil {
		return false, false, err
	}
	observability.ObserveApproval("mysql", "hit")
	return approved, true, nil
}

func (r *Repo) GetMany(ctx context.Context, ids []int64) (map[int64]bool, error) {
	out := make(map[int64]bool, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	marks := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		marks[i] = "?"
		args[i] = id
	}
	rows, err := r.db.QueryContext(ctx, getApprovalsPrefix+strings.Join(marks, ",")+")", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id       int64
			approved bool
		)
		if err := rows.Scan(&id, &approved); err != nil {
			return nil, err
		}
		out[id] = approved
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	observability.ObserveApproval("mysql", "hit")
	return out, nil
}

func (r *Repo) Set(ctx context.Context, id int64, approved bool) error {
	observability.ObserveApproval("mysql", "set")
	_, err := r.db.ExecContext(ctx, upsertApprovalSQL, id, approved)
	return err
}

func (r *Repo) Delete(ctx context.Context, id int64) error {
	observability.ObserveApproval("mysql", "del")
	_, err := r.db.ExecContext(ctx, deleteApprovalSQL, id)
	return err
}

// failure messages live in a VARCHAR(1024), which counts characters
const maxFailureMessage = 1024

// LogFailure records the latest failed ingest per (source, kind).
func (r *Repo) LogFailure(ctx context.Context, source, kind, message string) error {
	_, err := r.db.ExecContext(ctx, insertFailureSQL, source, kind, truncateRunes(message, maxFailureMessage))
	return err
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
