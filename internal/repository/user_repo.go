package repository

import (
	"context"

	"alcyxob/fitness-coach/internal/dberr"
	"alcyxob/fitness-coach/internal/domain"
	"alcyxob/fitness-coach/internal/store"

	"github.com/go-playground/validator/v10"
)

type userRepository struct {
	*Table[domain.User, domain.ID]
}

// NewUserRepository creates the user accessor.
func NewUserRepository(client store.Client, v *validator.Validate) UserRepository {
	return &userRepository{Table: NewTable[domain.User, domain.ID](client, UsersTable, "User", v)}
}

// GetByAppUserID finds the user linked to an authentication provider id.
func (r *userRepository) GetByAppUserID(ctx context.Context, appUserID string) (domain.User, error) {
	rows, err := r.Find(ctx, store.Where(store.Eq("app_user_id", appUserID)))
	if err != nil {
		return domain.User{}, err
	}
	if len(rows) == 0 {
		return domain.User{}, dberr.NotFoundf("User with app user id %s", appUserID)
	}
	return rows[0], nil
}
