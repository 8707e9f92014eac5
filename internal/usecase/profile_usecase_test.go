package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kitaconnect/internal/domain/entity"
	"kitaconnect/pkg/errors"
)

func TestCreateProfile(t *testing.T) {
	uc := NewProfileUseCase(newFakeProfileRepo())
	ctx := context.Background()

	profile, err := uc.CreateProfile(ctx, &entity.Profile{
		ID:          "U1",
		Kind:        entity.ProfileKindParent,
		DisplayName: "Anna",
	})
	require.NoError(t, err)
	assert.Equal(t, "U1", profile.ID)

	_, err = uc.CreateProfile(ctx, &entity.Profile{Kind: entity.ProfileKindParent})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	_, err = uc.CreateProfile(ctx, &entity.Profile{ID: "U2", Kind: "admin"})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestGetCaregiver_KindChecked(t *testing.T) {
	uc := NewProfileUseCase(newFakeProfileRepo(
		&entity.Profile{ID: "C1", Kind: entity.ProfileKindCaregiver, DisplayName: "Britta", PostalCode: "10115"},
		&entity.Profile{ID: "P1", Kind: entity.ProfileKindParent, DisplayName: "Anna"},
	))
	ctx := context.Background()

	caregiver, err := uc.GetCaregiver(ctx, "C1")
	require.NoError(t, err)
	assert.Equal(t, "Britta", caregiver.DisplayName)

	// A parent id does not resolve as a caregiver.
	_, err = uc.GetCaregiver(ctx, "P1")
	assert.True(t, errors.Is(err, "NOT_FOUND"))

	_, err = uc.GetProfile(ctx, "")
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestSearchCaregivers(t *testing.T) {
	uc := NewProfileUseCase(newFakeProfileRepo(
		&entity.Profile{ID: "C1", Kind: entity.ProfileKindCaregiver, PostalCode: "10115"},
		&entity.Profile{ID: "C2", Kind: entity.ProfileKindCaregiver, PostalCode: "20095"},
		&entity.Profile{ID: "P1", Kind: entity.ProfileKindParent, PostalCode: "10115"},
	))

	caregivers, total, err := uc.SearchCaregivers(context.Background(), "10115", 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, caregivers, 1)
	assert.Equal(t, "C1", caregivers[0].ID)
}
