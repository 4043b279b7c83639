package repository

import (
	"context"
	"log/slog"

	"shareit/internal/domain/comment"
	"shareit/internal/infra"
	"shareit/internal/infra/db"

	"github.com/doug-martin/goqu/v9"
)

type CommentRepository struct {
	logger *slog.Logger
}

func NewCommentRepository(logger *slog.Logger) *CommentRepository {
	return &CommentRepository{logger: logger}
}

func (r *CommentRepository) Create(ctx context.Context, tx db.DBTX, c *comment.Comment) (int64, error) {
	sql, args, err := db.Build(db.Dialect.Insert("comments").
		Rows(goqu.Record{
			"item_id":    c.ItemID(),
			"author_id":  c.AuthorID(),
			"text":       c.Text(),
			"created_at": c.CreatedAt(),
		}).
		Returning("id"))
	if err != nil {
		return 0, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to build comment insert", err)
	}

	var id int64
	if err := tx.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, infra.TranslatePgErr(r.logger, "failed to create comment", err)
	}
	return id, nil
}
