package readstore

import (
	"context"
	"log/slog"

	"shareit/internal/infra"
	"shareit/internal/infra/db"
	"shareit/internal/pkg/pgconv"
	"shareit/internal/usecase/queries"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const listCommentsByItemSQL = `
SELECT c.id, c.text, u.name, c.created_at
  FROM comments c
  JOIN users u ON u.id = c.author_id
 WHERE c.item_id = $1
 ORDER BY c.created_at, c.id`

type CommentReadStore struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewCommentReadStore(dbtx db.DBTX, logger *slog.Logger) *CommentReadStore {
	return &CommentReadStore{db: dbtx, logger: logger}
}

type commentRow struct {
	ID         int64
	Text       string
	AuthorName string
	CreatedAt  pgtype.Timestamptz
}

func (r *CommentReadStore) ListByItem(ctx context.Context, itemID int64) ([]*queries.CommentView, error) {
	rows, err := r.db.Query(ctx, listCommentsByItemSQL, itemID)
	if err != nil {
		return nil, infra.TranslatePgErr(r.logger, "failed to list comments", err)
	}
	collected, err := pgx.CollectRows(rows, pgx.RowToStructByPos[commentRow])
	if err != nil {
		return nil, infra.TranslatePgErr(r.logger, "failed to scan comments", err)
	}

	views := make([]*queries.CommentView, 0, len(collected))
	for _, row := range collected {
		views = append(views, &queries.CommentView{
			ID:         row.ID,
			Text:       row.Text,
			AuthorName: row.AuthorName,
			Created:    pgconv.TimeFromPgtype(row.CreatedAt),
		})
	}
	return views, nil
}
