package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"kitaconnect/internal/domain/entity"
	"kitaconnect/internal/domain/repository"
	"kitaconnect/pkg/errors"
)

type firestoreCareGroupRepository struct {
	client *firestore.Client
}

func NewFirestoreCareGroupRepository(client *firestore.Client) repository.CareGroupRepository {
	return &firestoreCareGroupRepository{
		client: client,
	}
}

// Care groups are keyed by caregiver id: one active group per caregiver.

func (r *firestoreCareGroupRepository) GetByCaregiverID(ctx context.Context, caregiverID string) (*entity.CareGroup, error) {
	doc, err := r.client.Collection("careGroups").Doc(caregiverID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Care group", nil)
		}
		return nil, errors.Internal("Failed to get care group", err)
	}

	var group entity.CareGroup
	if err := doc.DataTo(&group); err != nil {
		return nil, errors.Internal("Failed to parse care group data", err)
	}

	return &group, nil
}

func (r *firestoreCareGroupRepository) GetByMemberID(ctx context.Context, userID string) (*entity.CareGroup, error) {
	// Caregivers own their group document directly.
	group, err := r.GetByCaregiverID(ctx, userID)
	if err == nil {
		return group, nil
	}
	if !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}

	query := r.client.Collection("careGroups").Where("participantIds", "array-contains", userID).Limit(1)
	iter := query.Documents(ctx)
	doc, err := iter.Next()
	if err != nil {
		if err == iterator.Done {
			return nil, errors.NotFound("Care group", nil)
		}
		return nil, errors.Internal("Failed to query care group by member", err)
	}

	var member entity.CareGroup
	if err := doc.DataTo(&member); err != nil {
		return nil, errors.Internal("Failed to parse care group data", err)
	}

	return &member, nil
}

func (r *firestoreCareGroupRepository) Set(ctx context.Context, group *entity.CareGroup) error {
	now := time.Now()
	if group.CreatedAt.IsZero() {
		group.CreatedAt = now
	}
	group.UpdatedAt = now

	_, err := r.client.Collection("careGroups").Doc(group.CaregiverID).Set(ctx, group)
	if err != nil {
		return errors.Internal("Failed to save care group", err)
	}

	return nil
}

func (r *firestoreCareGroupRepository) Delete(ctx context.Context, caregiverID string) error {
	_, err := r.client.Collection("careGroups").Doc(caregiverID).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete care group", err)
	}

	return nil
}
