package usecase

import (
	"context"
	"log"

	"kitaconnect/internal/domain/entity"
	"kitaconnect/internal/domain/repository"
	"kitaconnect/pkg/errors"
)

// conversationIDSeparator joins the sorted participant pair into the
// canonical thread id. Identifiers are Firebase UIDs and never contain it.
const conversationIDSeparator = "--"

// DeriveConversationID produces the canonical id of the direct thread
// between two participants: the pair sorted lexicographically, joined with
// a fixed separator. Commutative, so both sides resolve to the same storage
// key without negotiation. Empty identifiers are an error, never an empty
// key.
func DeriveConversationID(a, b string) (string, error) {
	if a == "" || b == "" {
		return "", errors.BadRequest("Both participant identifiers are required", nil)
	}
	if a > b {
		a, b = b, a
	}
	return a + conversationIDSeparator + b, nil
}

type MessagingUseCase struct {
	conversationRepo repository.ConversationRepository
	profileRepo      repository.ProfileRepository
	blobStorage      BlobStorage
}

func NewMessagingUseCase(
	conversationRepo repository.ConversationRepository,
	profileRepo repository.ProfileRepository,
	blobStorage BlobStorage,
) *MessagingUseCase {
	return &MessagingUseCase{
		conversationRepo: conversationRepo,
		profileRepo:      profileRepo,
		blobStorage:      blobStorage,
	}
}

type SendMessageInput struct {
	RecipientID string
	Body        string
	Attachments []entity.Attachment
}

type ConversationResponse struct {
	*entity.Conversation
	OtherUser *entity.Profile `json:"other_user,omitempty"`
	Unread    bool            `json:"unread"`
}

type MessageResponse struct {
	*entity.Message
	Sender *entity.Profile `json:"sender,omitempty"`
}

func (uc *MessagingUseCase) SendDirectMessage(ctx context.Context, senderID string, input SendMessageInput) (*MessageResponse, error) {
	if senderID == input.RecipientID {
		log.Printf("SendDirectMessage Error: User %s attempted to message themselves", senderID)
		return nil, errors.BadRequest("You cannot send a message to yourself", nil)
	}

	sender, err := uc.profileRepo.GetByID(ctx, senderID)
	if err != nil {
		log.Printf("SendDirectMessage Error: Sender %s not found: %v", senderID, err)
		return nil, errors.NotFound("Sender", err)
	}

	if _, err := uc.profileRepo.GetByID(ctx, input.RecipientID); err != nil {
		log.Printf("SendDirectMessage Error: Recipient %s not found: %v", input.RecipientID, err)
		return nil, errors.NotFound("Recipient", err)
	}

	conversationID, err := DeriveConversationID(senderID, input.RecipientID)
	if err != nil {
		return nil, err
	}

	if input.Body == "" && len(input.Attachments) == 0 {
		return nil, errors.BadRequest("A message needs a body or at least one attachment", nil)
	}

	conversation, err := uc.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		if !errors.Is(err, "NOT_FOUND") {
			return nil, err
		}
		conversation = &entity.Conversation{
			ID:           conversationID,
			Participants: []string{senderID, input.RecipientID},
		}
		if err := uc.conversationRepo.Create(ctx, conversation); err != nil {
			log.Printf("SendDirectMessage Error: Failed to create conversation %s: %v", conversationID, err)
			return nil, err
		}
	}

	attachments, err := resolveAttachments(ctx, uc.blobStorage, "attachments/"+conversationID, input.Attachments)
	if err != nil {
		return nil, err
	}

	message := &entity.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		RecipientID:    input.RecipientID,
		Body:           input.Body,
		Attachments:    attachments,
	}

	if err := uc.conversationRepo.CreateMessage(ctx, message); err != nil {
		log.Printf("SendDirectMessage Error: Failed to persist message in conversation %s: %v", conversationID, err)
		return nil, err
	}

	conversation.LastMessage = previewText(message)
	conversation.LastMessageAt = message.CreatedAt
	// A new message resets the read set to the sender only.
	conversation.ReadBy = []string{senderID}

	if err := uc.conversationRepo.Update(ctx, conversation); err != nil {
		log.Printf("SendDirectMessage Error: Failed to update conversation %s after send: %v", conversationID, err)
		return nil, err
	}

	return &MessageResponse{
		Message: message,
		Sender:  sender,
	}, nil
}

func (uc *MessagingUseCase) ListConversations(ctx context.Context, userID string, limit, offset int) ([]*ConversationResponse, int64, error) {
	conversations, total, err := uc.conversationRepo.ListByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*ConversationResponse, 0, len(conversations))
	for _, conversation := range conversations {
		resp := &ConversationResponse{
			Conversation: conversation,
			Unread:       !conversation.IsReadBy(userID),
		}

		if otherID := otherParticipant(conversation, userID); otherID != "" {
			other, err := uc.profileRepo.GetByID(ctx, otherID)
			if err != nil {
				// Partner profile failures degrade to a nameless entry
				// rather than hiding the thread.
				log.Printf("ListConversations: Failed to resolve partner %s for conversation %s: %v", otherID, conversation.ID, err)
			} else {
				resp.OtherUser = other
			}
		}

		responses = append(responses, resp)
	}

	return responses, total, nil
}

func (uc *MessagingUseCase) GetMessages(ctx context.Context, userID, conversationID string, limit, offset int) ([]*entity.Message, int64, error) {
	conversation, err := uc.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, 0, err
	}
	if !conversation.HasParticipant(userID) {
		return nil, 0, errors.Forbidden("You are not a participant of this conversation", nil)
	}

	return uc.conversationRepo.ListMessages(ctx, conversationID, limit, offset)
}

// MarkRead adds userID to the conversation's read set. Idempotent.
func (uc *MessagingUseCase) MarkRead(ctx context.Context, userID, conversationID string) error {
	conversation, err := uc.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return err
	}
	if !conversation.HasParticipant(userID) {
		return errors.Forbidden("You are not a participant of this conversation", nil)
	}

	if !conversation.MarkReadBy(userID) {
		return nil // Already marked as read
	}

	return uc.conversationRepo.Update(ctx, conversation)
}

// DeleteConversation removes a thread and its messages. Deletion is a
// destructive, confirmed action: without confirmed the store is never
// touched. The in-memory list updates only after the store acknowledges,
// so a deleted thread cannot resurface on reload.
func (uc *MessagingUseCase) DeleteConversation(ctx context.Context, userID, conversationID string, confirmed bool) error {
	if !confirmed {
		return errors.BadRequest("Conversation deletion requires confirmation", nil)
	}

	conversation, err := uc.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return err
	}
	if !conversation.HasParticipant(userID) {
		return errors.Forbidden("You are not a participant of this conversation", nil)
	}

	return uc.conversationRepo.Delete(ctx, conversationID)
}

func otherParticipant(conversation *entity.Conversation, userID string) string {
	for _, p := range conversation.Participants {
		if p != userID {
			return p
		}
	}
	return ""
}

func previewText(message *entity.Message) string {
	if message.Body != "" {
		return message.Body
	}
	if len(message.Attachments) > 0 {
		return message.Attachments[0].FileName
	}
	return ""
}
