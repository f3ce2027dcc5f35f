package postgres

import (
	"context"

	"carsharing-backend/internal/domain"
	"carsharing-backend/internal/logger"
	"carsharing-backend/internal/repository"
)

type userRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) repository.UserRepository {
	return &userRepository{db: db}
}

const selectUser = `SELECT id, COALESCE(user_name, ''), COALESCE(email, '') FROM users WHERE id = $1`

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.get(ctx, selectUser, id)
}

func (r *userRepository) GetByIDForUpdate(ctx context.Context, id string) (*domain.User, error) {
	return r.get(ctx, selectUser+" FOR UPDATE", id)
}

func (r *userRepository) get(ctx context.Context, query, id string) (*domain.User, error) {
	logger.DatabaseCall("userRepository.GetByID", query, "userID", id)
	u := &domain.User{}
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.UserName, &u.Email); err != nil {
		return nil, notFound(err)
	}
	return u, nil
}
