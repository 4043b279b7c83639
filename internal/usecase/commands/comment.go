package commands

import (
	"context"
	"log/slog"

	"shareit/internal/domain/comment"
	"shareit/internal/pkg/clock"
	"shareit/internal/pkg/errs"
	"shareit/internal/usecase/queries"
	"shareit/internal/usecase/shared"
)

type PostCommentRequest struct {
	ItemID int64
	Text   string
}

type CommentCommands interface {
	Post(ctx context.Context, authorID int64, req PostCommentRequest) (*queries.CommentView, error)
}

type commentUseCaseImpl struct {
	uow    shared.UnitOfWork
	clock  clock.Clock
	logger *slog.Logger
}

func NewCommentUseCase(uow shared.UnitOfWork, clk clock.Clock, logger *slog.Logger) CommentCommands {
	return &commentUseCaseImpl{uow: uow, clock: clk, logger: logger}
}

func (uc *commentUseCaseImpl) Post(ctx context.Context, authorID int64, req PostCommentRequest) (*queries.CommentView, error) {
	now := uc.clock.Now()
	c, err := comment.NewComment(authorID, req.ItemID, req.Text, now)
	if err != nil {
		return nil, err
	}

	var view *queries.CommentView
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		author, err := tx.Reads().UserByID(ctx, authorID)
		if err != nil {
			return translateNotFound(err, errs.ErrUserNotFound, "user %d not found", authorID)
		}
		if _, err := tx.Reads().ItemForShare(ctx, req.ItemID); err != nil {
			return translateNotFound(err, errs.ErrItemNotFound, "item %d not found", req.ItemID)
		}

		latest, err := tx.Reads().LatestCompletedBooking(ctx, req.ItemID, now)
		if err != nil {
			return err
		}
		if err := comment.CheckEligibility(authorID, req.ItemID, latest); err != nil {
			return err
		}

		id, err := tx.Comments().Create(ctx, tx.DB(), c)
		if err != nil {
			return err
		}
		c.WithID(id)
		view = &queries.CommentView{
			ID:         id,
			Text:       c.Text(),
			AuthorName: author.Name,
			Created:    c.CreatedAt(),
		}
		return nil
	})
	if err != nil {
		if isDomainRejection(err) {
			uc.logger.DebugContext(ctx, "post comment rejected",
				slog.String("reason", err.Error()),
				slog.Int64("author_id", authorID),
				slog.Int64("item_id", req.ItemID))
		}
		return nil, err
	}
	return view, nil
}
