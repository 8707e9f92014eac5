package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"kitaconnect/internal/domain/entity"
	"kitaconnect/pkg/errors"
)

type fakeConversationRepo struct {
	mu             sync.Mutex
	conversations  map[string]*entity.Conversation
	messages       map[string][]*entity.Message
	deleteCalls    int
	createMsgCalls int
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{
		conversations: make(map[string]*entity.Conversation),
		messages:      make(map[string][]*entity.Message),
	}
}

func (r *fakeConversationRepo) Create(ctx context.Context, conversation *entity.Conversation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	conversation.CreatedAt = now
	conversation.UpdatedAt = now
	r.conversations[conversation.ID] = conversation
	return nil
}

func (r *fakeConversationRepo) GetByID(ctx context.Context, id string) (*entity.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	conversation, ok := r.conversations[id]
	if !ok {
		return nil, errors.NotFound("Conversation", nil)
	}
	copied := *conversation
	return &copied, nil
}

func (r *fakeConversationRepo) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Conversation, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entity.Conversation
	for _, conversation := range r.conversations {
		if conversation.HasParticipant(userID) {
			copied := *conversation
			result = append(result, &copied)
		}
	}
	return result, int64(len(result)), nil
}

func (r *fakeConversationRepo) Update(ctx context.Context, conversation *entity.Conversation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	conversation.UpdatedAt = time.Now()
	copied := *conversation
	r.conversations[conversation.ID] = &copied
	return nil
}

func (r *fakeConversationRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleteCalls++
	delete(r.conversations, id)
	delete(r.messages, id)
	return nil
}

func (r *fakeConversationRepo) CreateMessage(ctx context.Context, message *entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.createMsgCalls++
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	message.CreatedAt = time.Now()
	r.messages[message.ConversationID] = append(r.messages[message.ConversationID], message)
	return nil
}

func (r *fakeConversationRepo) ListMessages(ctx context.Context, conversationID string, limit, offset int) ([]*entity.Message, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	messages := r.messages[conversationID]
	return messages, int64(len(messages)), nil
}

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]*entity.Profile
}

func newFakeProfileRepo(profiles ...*entity.Profile) *fakeProfileRepo {
	r := &fakeProfileRepo{profiles: make(map[string]*entity.Profile)}
	for _, p := range profiles {
		r.profiles[p.ID] = p
	}
	return r
}

func (r *fakeProfileRepo) Create(ctx context.Context, profile *entity.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[profile.ID] = profile
	return nil
}

func (r *fakeProfileRepo) GetByID(ctx context.Context, id string) (*entity.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	profile, ok := r.profiles[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	return profile, nil
}

func (r *fakeProfileRepo) Update(ctx context.Context, profile *entity.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[profile.ID] = profile
	return nil
}

func (r *fakeProfileRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.profiles, id)
	return nil
}

func (r *fakeProfileRepo) SearchCaregivers(ctx context.Context, postalCode string, limit, offset int) ([]*entity.Profile, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entity.Profile
	for _, profile := range r.profiles {
		if profile.Kind != entity.ProfileKindCaregiver {
			continue
		}
		if postalCode != "" && profile.PostalCode != postalCode {
			continue
		}
		result = append(result, profile)
	}
	return result, int64(len(result)), nil
}

type fakeBlobStorage struct {
	mu       sync.Mutex
	objects  map[string][]byte
	failName string // attachment object names containing this substring fail
}

func newFakeBlobStorage() *fakeBlobStorage {
	return &fakeBlobStorage{objects: make(map[string][]byte)}
}

func (s *fakeBlobStorage) UploadObject(ctx context.Context, objectName, contentType string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failName != "" && strings.Contains(objectName, s.failName) {
		return "", fmt.Errorf("upload rejected for %s", objectName)
	}
	s.objects[objectName] = data
	return "mem://" + objectName, nil
}

type fakeCareGroupRepo struct {
	mu         sync.Mutex
	groups     map[string]*entity.CareGroup
	failReads  bool
	failDelete bool
	setCalls   int
}

func newFakeCareGroupRepo() *fakeCareGroupRepo {
	return &fakeCareGroupRepo{groups: make(map[string]*entity.CareGroup)}
}

func (r *fakeCareGroupRepo) GetByCaregiverID(ctx context.Context, caregiverID string) (*entity.CareGroup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failReads {
		return nil, errors.Internal("store unreachable", nil)
	}
	group, ok := r.groups[caregiverID]
	if !ok {
		return nil, errors.NotFound("Care group", nil)
	}
	copied := *group
	return &copied, nil
}

func (r *fakeCareGroupRepo) GetByMemberID(ctx context.Context, userID string) (*entity.CareGroup, error) {
	r.mu.Lock()
	if r.failReads {
		r.mu.Unlock()
		return nil, errors.Internal("store unreachable", nil)
	}
	if group, ok := r.groups[userID]; ok {
		copied := *group
		r.mu.Unlock()
		return &copied, nil
	}
	for _, group := range r.groups {
		for _, id := range group.ParticipantIDs {
			if id == userID {
				copied := *group
				r.mu.Unlock()
				return &copied, nil
			}
		}
	}
	r.mu.Unlock()
	return nil, errors.NotFound("Care group", nil)
}

func (r *fakeCareGroupRepo) Set(ctx context.Context, group *entity.CareGroup) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.setCalls++
	now := time.Now()
	if group.CreatedAt.IsZero() {
		group.CreatedAt = now
	}
	group.UpdatedAt = now
	copied := *group
	r.groups[group.CaregiverID] = &copied
	return nil
}

func (r *fakeCareGroupRepo) Delete(ctx context.Context, caregiverID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failDelete {
		return errors.Internal("store unreachable", nil)
	}
	delete(r.groups, caregiverID)
	return nil
}
