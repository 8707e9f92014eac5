package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kitaconnect/internal/domain/entity"
	"kitaconnect/pkg/errors"
)

func newMessagingFixture() (*MessagingUseCase, *fakeConversationRepo, *fakeBlobStorage) {
	convRepo := newFakeConversationRepo()
	profileRepo := newFakeProfileRepo(
		&entity.Profile{ID: "parent-1", Kind: entity.ProfileKindParent, DisplayName: "Anna"},
		&entity.Profile{ID: "caregiver-1", Kind: entity.ProfileKindCaregiver, DisplayName: "Britta"},
	)
	blob := newFakeBlobStorage()
	return NewMessagingUseCase(convRepo, profileRepo, blob), convRepo, blob
}

func TestDeriveConversationID(t *testing.T) {
	ab, err := DeriveConversationID("alice", "bob")
	require.NoError(t, err)
	ba, err := DeriveConversationID("bob", "alice")
	require.NoError(t, err)

	assert.Equal(t, "alice--bob", ab)
	assert.Equal(t, ab, ba, "derivation must be commutative")

	_, err = DeriveConversationID("", "bob")
	assert.Error(t, err, "empty identifier must fail, not produce a malformed key")
	_, err = DeriveConversationID("alice", "")
	assert.Error(t, err)
}

func TestSendDirectMessage_AttachmentOnly(t *testing.T) {
	uc, convRepo, blob := newMessagingFixture()

	payload := EncodeDataURL("image/png", []byte("fake png bytes"))
	resp, err := uc.SendDirectMessage(context.Background(), "parent-1", SendMessageInput{
		RecipientID: "caregiver-1",
		Attachments: []entity.Attachment{{FileName: "photo.png", Data: payload}},
	})
	require.NoError(t, err)

	assert.Empty(t, resp.Body)
	require.Len(t, resp.Attachments, 1)
	assert.Equal(t, "photo.png", resp.Attachments[0].FileName)
	assert.NotEmpty(t, resp.Attachments[0].URL)
	assert.Empty(t, resp.Attachments[0].Data, "inline payload must not survive resolution")
	assert.Len(t, blob.objects, 1)
	assert.Equal(t, 1, convRepo.createMsgCalls)
}

func TestSendDirectMessage_EmptyRejected(t *testing.T) {
	uc, convRepo, _ := newMessagingFixture()

	_, err := uc.SendDirectMessage(context.Background(), "parent-1", SendMessageInput{
		RecipientID: "caregiver-1",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
	assert.Equal(t, 0, convRepo.createMsgCalls, "an empty message must never reach the store")
}

func TestSendDirectMessage_ToSelf(t *testing.T) {
	uc, _, _ := newMessagingFixture()

	_, err := uc.SendDirectMessage(context.Background(), "parent-1", SendMessageInput{
		RecipientID: "parent-1",
		Body:        "hello me",
	})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestSendDirectMessage_ResetsReadBy(t *testing.T) {
	uc, convRepo, _ := newMessagingFixture()
	ctx := context.Background()

	_, err := uc.SendDirectMessage(ctx, "parent-1", SendMessageInput{RecipientID: "caregiver-1", Body: "hi"})
	require.NoError(t, err)

	conversationID, _ := DeriveConversationID("parent-1", "caregiver-1")
	require.NoError(t, uc.MarkRead(ctx, "caregiver-1", conversationID))

	conversation, err := convRepo.GetByID(ctx, conversationID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"parent-1", "caregiver-1"}, conversation.ReadBy)

	_, err = uc.SendDirectMessage(ctx, "caregiver-1", SendMessageInput{RecipientID: "parent-1", Body: "hello back"})
	require.NoError(t, err)

	conversation, err = convRepo.GetByID(ctx, conversationID)
	require.NoError(t, err)
	assert.Equal(t, []string{"caregiver-1"}, conversation.ReadBy, "a new message leaves only the sender in the read set")
}

func TestMarkRead_Idempotent(t *testing.T) {
	uc, convRepo, _ := newMessagingFixture()
	ctx := context.Background()

	_, err := uc.SendDirectMessage(ctx, "parent-1", SendMessageInput{RecipientID: "caregiver-1", Body: "hi"})
	require.NoError(t, err)

	conversationID, _ := DeriveConversationID("parent-1", "caregiver-1")
	require.NoError(t, uc.MarkRead(ctx, "caregiver-1", conversationID))
	require.NoError(t, uc.MarkRead(ctx, "caregiver-1", conversationID))

	conversation, err := convRepo.GetByID(ctx, conversationID)
	require.NoError(t, err)
	assert.Equal(t, []string{"parent-1", "caregiver-1"}, conversation.ReadBy)
}

func TestListConversations_UnreadFlag(t *testing.T) {
	uc, _, _ := newMessagingFixture()
	ctx := context.Background()

	_, err := uc.SendDirectMessage(ctx, "parent-1", SendMessageInput{RecipientID: "caregiver-1", Body: "hi"})
	require.NoError(t, err)

	conversations, total, err := uc.ListConversations(ctx, "caregiver-1", 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, conversations, 1)
	assert.True(t, conversations[0].Unread)
	require.NotNil(t, conversations[0].OtherUser)
	assert.Equal(t, "parent-1", conversations[0].OtherUser.ID)

	conversationID, _ := DeriveConversationID("parent-1", "caregiver-1")
	require.NoError(t, uc.MarkRead(ctx, "caregiver-1", conversationID))

	conversations, _, err = uc.ListConversations(ctx, "caregiver-1", 20, 0)
	require.NoError(t, err)
	assert.False(t, conversations[0].Unread)
}

func TestDeleteConversation_RequiresConfirmation(t *testing.T) {
	uc, convRepo, _ := newMessagingFixture()
	ctx := context.Background()

	_, err := uc.SendDirectMessage(ctx, "parent-1", SendMessageInput{RecipientID: "caregiver-1", Body: "hi"})
	require.NoError(t, err)

	conversationID, _ := DeriveConversationID("parent-1", "caregiver-1")

	err = uc.DeleteConversation(ctx, "parent-1", conversationID, false)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
	assert.Equal(t, 0, convRepo.deleteCalls, "an unconfirmed delete must issue no store request")

	_, _, err = uc.GetMessages(ctx, "parent-1", conversationID, 50, 0)
	assert.NoError(t, err, "the conversation must remain intact")

	require.NoError(t, uc.DeleteConversation(ctx, "parent-1", conversationID, true))
	assert.Equal(t, 1, convRepo.deleteCalls)

	_, _, err = uc.GetMessages(ctx, "parent-1", conversationID, 50, 0)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestGetMessages_NonParticipant(t *testing.T) {
	uc, _, _ := newMessagingFixture()
	ctx := context.Background()

	_, err := uc.SendDirectMessage(ctx, "parent-1", SendMessageInput{RecipientID: "caregiver-1", Body: "hi"})
	require.NoError(t, err)

	conversationID, _ := DeriveConversationID("parent-1", "caregiver-1")
	_, _, err = uc.GetMessages(ctx, "stranger", conversationID, 50, 0)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}
