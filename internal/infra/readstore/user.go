package readstore

import (
	"context"
	"log/slog"

	"shareit/internal/infra"
	"shareit/internal/infra/db"
	"shareit/internal/usecase/queries"
)

const (
	userExistsSQL   = `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`
	findUserByIDSQL = `SELECT id, name FROM users WHERE id = $1`
)

type UserReadStore struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewUserReadStore(dbtx db.DBTX, logger *slog.Logger) *UserReadStore {
	return &UserReadStore{db: dbtx, logger: logger}
}

func (r *UserReadStore) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, userExistsSQL, id).Scan(&exists); err != nil {
		return false, infra.TranslatePgErr(r.logger, "failed to check user existence", err)
	}
	return exists, nil
}

func (r *UserReadStore) FindByID(ctx context.Context, id int64) (*queries.UserRef, error) {
	var u queries.UserRef
	if err := r.db.QueryRow(ctx, findUserByIDSQL, id).Scan(&u.ID, &u.Name); err != nil {
		return nil, infra.TranslatePgErr(r.logger, "failed to find user by ID", err)
	}
	return &u, nil
}
