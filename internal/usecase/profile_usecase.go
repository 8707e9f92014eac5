package usecase

import (
	"context"

	"kitaconnect/internal/domain/entity"
	"kitaconnect/internal/domain/repository"
	"kitaconnect/pkg/errors"
)

type ProfileUseCase struct {
	profileRepo repository.ProfileRepository
}

func NewProfileUseCase(profileRepo repository.ProfileRepository) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: profileRepo,
	}
}

// CreateProfile stores a new directory entry. The id is the Firebase UID
// of the account the profile belongs to.
func (uc *ProfileUseCase) CreateProfile(ctx context.Context, profile *entity.Profile) (*entity.Profile, error) {
	if profile.ID == "" {
		return nil, errors.BadRequest("Profile id is required", nil)
	}
	if profile.Kind != entity.ProfileKindParent && profile.Kind != entity.ProfileKindCaregiver {
		return nil, errors.BadRequest("Profile kind must be parent or caregiver", nil)
	}

	if err := uc.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

func (uc *ProfileUseCase) GetProfile(ctx context.Context, id string) (*entity.Profile, error) {
	if id == "" {
		return nil, errors.BadRequest("User id is required", nil)
	}
	return uc.profileRepo.GetByID(ctx, id)
}

// GetCaregiver fetches a profile and requires it to be a caregiver. A
// parent profile under the same id is reported as not found rather than
// leaked with the wrong shape.
func (uc *ProfileUseCase) GetCaregiver(ctx context.Context, id string) (*entity.Profile, error) {
	profile, err := uc.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	if !profile.IsCaregiver() {
		return nil, errors.NotFound("Caregiver", nil)
	}
	return profile, nil
}

func (uc *ProfileUseCase) SearchCaregivers(ctx context.Context, postalCode string, limit, offset int) ([]*entity.Profile, int64, error) {
	return uc.profileRepo.SearchCaregivers(ctx, postalCode, limit, offset)
}
