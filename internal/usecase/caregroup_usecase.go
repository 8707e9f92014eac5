package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"kitaconnect/internal/domain/entity"
	"kitaconnect/internal/domain/repository"
	"kitaconnect/internal/infrastructure/cache/port"
	"kitaconnect/pkg/errors"
	"kitaconnect/pkg/logger"
)

const (
	// careGroupCacheKeyPrefix namespaces the advisory per-user cache
	// entries. An empty user id addresses the draft slot.
	careGroupCacheKeyPrefix = "care-group:"

	// groupThreadPrefix marks message conversation ids that belong to a
	// care-group thread rather than a direct conversation.
	groupThreadPrefix = "group:"
)

func careGroupCacheKey(userID string) string {
	return careGroupCacheKeyPrefix + userID
}

type CareGroupUseCase struct {
	groupRepo   repository.CareGroupRepository
	profileRepo repository.ProfileRepository
	cache       port.Cache
	blobStorage BlobStorage
	cacheTTL    time.Duration
}

func NewCareGroupUseCase(
	groupRepo repository.CareGroupRepository,
	profileRepo repository.ProfileRepository,
	cache port.Cache,
	blobStorage BlobStorage,
	cacheTTL time.Duration,
) *CareGroupUseCase {
	return &CareGroupUseCase{
		groupRepo:   groupRepo,
		profileRepo: profileRepo,
		cache:       cache,
		blobStorage: blobStorage,
		cacheTTL:    cacheTTL,
	}
}

// Sanitize normalizes an externally sourced group into the canonical shape:
// nil stays nil, the daycare name is defaulted, the roster is deduplicated
// preserving first-seen order, and a nil message list becomes empty. Every
// group read from the store or the cache passes through here before it is
// cached or returned. Idempotent.
func Sanitize(group *entity.CareGroup) *entity.CareGroup {
	if group == nil {
		return nil
	}

	out := *group

	if out.DaycareName == "" {
		out.DaycareName = entity.DefaultDaycareName
	}

	seen := make(map[string]struct{}, len(out.ParticipantIDs))
	participants := make([]string, 0, len(out.ParticipantIDs))
	for _, id := range out.ParticipantIDs {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		participants = append(participants, id)
	}
	out.ParticipantIDs = participants

	if out.Messages == nil {
		out.Messages = []entity.Message{}
	}

	return &out
}

// Load reconciles the cached copy of the user's care group with the store.
// An empty userID returns the cached draft without a store round-trip. A
// reachable store always wins; a failing store degrades to the last cached
// copy (stale-but-available) and never surfaces an error to the caller.
func (uc *CareGroupUseCase) Load(ctx context.Context, userID string) (*entity.CareGroup, error) {
	if userID == "" {
		return uc.cachedGroup(ctx, userID), nil
	}

	group, err := uc.groupRepo.GetByMemberID(ctx, userID)
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			// The store is authoritative: no group exists, so a cached copy
			// is residue from a deleted group.
			uc.dropCached(ctx, userID)
			return nil, nil
		}
		logger.Warn("Load: Care group fetch failed for user %s, serving cached copy: %v", userID, err)
		return uc.cachedGroup(ctx, userID), nil
	}

	group = Sanitize(group)
	uc.cacheGroup(ctx, userID, group)
	return group, nil
}

// Persist saves a care group. A group without a caregiver id is a draft and
// is cached locally only; otherwise the store performs a full replace and
// the store's authoritative copy is what ends up cached. Store failures
// propagate: saves are user-initiated mutations and must surface.
func (uc *CareGroupUseCase) Persist(ctx context.Context, actorID string, group *entity.CareGroup) (*entity.CareGroup, error) {
	group = Sanitize(group)
	if group == nil {
		return nil, errors.BadRequest("Care group payload is required", nil)
	}

	if group.CaregiverID == "" {
		uc.cacheGroup(ctx, actorID, group)
		return group, nil
	}

	if actorID != "" && actorID != group.CaregiverID {
		return nil, errors.Forbidden("Only the caregiver may save this group", nil)
	}

	existing, err := uc.groupRepo.GetByCaregiverID(ctx, group.CaregiverID)
	if err == nil {
		group.CreatedAt = existing.CreatedAt
	} else if !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}

	if err := uc.groupRepo.Set(ctx, group); err != nil {
		return nil, err
	}

	authoritative, err := uc.groupRepo.GetByCaregiverID(ctx, group.CaregiverID)
	if err != nil {
		logger.Warn("Persist: Re-read of care group %s after save failed: %v", group.CaregiverID, err)
		authoritative = group
	}
	authoritative = Sanitize(authoritative)

	uc.cacheGroup(ctx, group.CaregiverID, authoritative)
	return authoritative, nil
}

// Remove deletes the caregiver's group. The cache is cleared only after the
// store delete succeeds; a failed delete leaves the cached copy in place
// for retry rather than discarding state the store still holds. An empty
// caregiver id merely clears the draft slot.
func (uc *CareGroupUseCase) Remove(ctx context.Context, caregiverID string) error {
	if caregiverID == "" {
		uc.dropCached(ctx, caregiverID)
		return nil
	}

	if err := uc.groupRepo.Delete(ctx, caregiverID); err != nil {
		return err
	}

	uc.dropCached(ctx, caregiverID)
	return nil
}

// Leave removes the acting parent from the roster. The caregiver cannot
// leave their own group; deleting it is the only exit for the owner.
func (uc *CareGroupUseCase) Leave(ctx context.Context, userID string) error {
	group, err := uc.groupRepo.GetByMemberID(ctx, userID)
	if err != nil {
		return err
	}
	if group.CaregiverID == userID {
		return errors.BadRequest("The caregiver cannot leave the group; delete it instead", nil)
	}

	participants := make([]string, 0, len(group.ParticipantIDs))
	for _, id := range group.ParticipantIDs {
		if id != userID {
			participants = append(participants, id)
		}
	}
	group.ParticipantIDs = participants

	if err := uc.groupRepo.Set(ctx, Sanitize(group)); err != nil {
		return err
	}

	uc.dropCached(ctx, userID)
	return nil
}

type GroupMessageInput struct {
	Body        string
	Attachments []entity.Attachment
}

// SendGroupMessage appends a message to the group thread of the sender's
// care group. Member-only; the body-or-attachment invariant applies the
// same as in direct messaging.
func (uc *CareGroupUseCase) SendGroupMessage(ctx context.Context, senderID string, input GroupMessageInput) (*entity.Message, error) {
	group, err := uc.groupRepo.GetByMemberID(ctx, senderID)
	if err != nil {
		return nil, err
	}

	if input.Body == "" && len(input.Attachments) == 0 {
		return nil, errors.BadRequest("A message needs a body or at least one attachment", nil)
	}

	attachments, err := resolveAttachments(ctx, uc.blobStorage, "care-groups/"+group.CaregiverID, input.Attachments)
	if err != nil {
		return nil, err
	}

	message := entity.Message{
		ID:             uuid.New().String(),
		ConversationID: groupThreadPrefix + group.CaregiverID,
		SenderID:       senderID,
		Body:           input.Body,
		Attachments:    attachments,
		CreatedAt:      time.Now(),
	}

	group.Messages = append(group.Messages, message)

	sanitized := Sanitize(group)
	if err := uc.groupRepo.Set(ctx, sanitized); err != nil {
		return nil, err
	}

	uc.cacheGroup(ctx, senderID, sanitized)
	return &message, nil
}

// Members resolves the profiles of the caregiver and every roster parent.
// Lookups fan out concurrently and are joined into a map; iteration order
// of the result carries no meaning. A single failed lookup fails the whole
// resolution rather than silently returning a partial roster.
func (uc *CareGroupUseCase) Members(ctx context.Context, group *entity.CareGroup) (map[string]*entity.Profile, error) {
	if group == nil {
		return nil, nil
	}

	ids := append([]string{group.CaregiverID}, group.ParticipantIDs...)

	var mu sync.Mutex
	members := make(map[string]*entity.Profile, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	for _, id := range ids {
		id := id
		if id == "" {
			continue
		}
		g.Go(func() error {
			profile, err := uc.profileRepo.GetByID(gctx, id)
			if err != nil {
				return err
			}
			mu.Lock()
			members[id] = profile
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return members, nil
}

func (uc *CareGroupUseCase) cachedGroup(ctx context.Context, userID string) *entity.CareGroup {
	raw, err := uc.cache.Get(ctx, careGroupCacheKey(userID))
	if err != nil {
		if err != port.ErrMiss {
			logger.Warn("cachedGroup: Cache read failed for user %q: %v", userID, err)
		}
		return nil
	}

	var group entity.CareGroup
	if err := json.Unmarshal([]byte(raw), &group); err != nil {
		logger.Warn("cachedGroup: Malformed cached care group for user %q: %v", userID, err)
		return nil
	}

	return Sanitize(&group)
}

func (uc *CareGroupUseCase) cacheGroup(ctx context.Context, userID string, group *entity.CareGroup) {
	raw, err := json.Marshal(group)
	if err != nil {
		logger.Warn("cacheGroup: Failed to encode care group for user %q: %v", userID, err)
		return
	}
	// The cache is advisory; write failures are logged, never surfaced.
	if err := uc.cache.Set(ctx, careGroupCacheKey(userID), string(raw), uc.cacheTTL); err != nil {
		logger.Warn("cacheGroup: Cache write failed for user %q: %v", userID, err)
	}
}

func (uc *CareGroupUseCase) dropCached(ctx context.Context, userID string) {
	if _, err := uc.cache.Del(ctx, careGroupCacheKey(userID)); err != nil {
		logger.Warn("dropCached: Cache delete failed for user %q: %v", userID, err)
	}
}
