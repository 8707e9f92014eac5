package repository

import (
	"context"

	"kitaconnect/internal/domain/entity"
)

type CareGroupRepository interface {
	// GetByCaregiverID fetches the caregiver's own group.
	GetByCaregiverID(ctx context.Context, caregiverID string) (*entity.CareGroup, error)

	// GetByMemberID fetches the group the user belongs to, whether as the
	// owning caregiver or as a roster parent.
	GetByMemberID(ctx context.Context, userID string) (*entity.CareGroup, error)

	// Set performs a full replace of the caregiver's group.
	Set(ctx context.Context, group *entity.CareGroup) error

	Delete(ctx context.Context, caregiverID string) error
}
