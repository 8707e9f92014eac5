package repository

import (
	"context"

	"kitaconnect/internal/domain/entity"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *entity.Profile) error
	GetByID(ctx context.Context, id string) (*entity.Profile, error)
	Update(ctx context.Context, profile *entity.Profile) error
	Delete(ctx context.Context, id string) error
	SearchCaregivers(ctx context.Context, postalCode string, limit, offset int) ([]*entity.Profile, int64, error)
}
