package queries

import (
	"context"

	"shareit/internal/pkg/errs"
)

type UserReadStore interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

func requireUser(ctx context.Context, users UserReadStore, id int64) error {
	ok, err := users.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return errs.Reason(errs.ErrUserNotFound, "user %d not found", id)
	}
	return nil
}
