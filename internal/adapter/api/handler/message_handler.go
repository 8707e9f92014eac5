package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"kitaconnect/internal/domain/entity"
	"kitaconnect/internal/usecase"
	"kitaconnect/pkg/response"
	"kitaconnect/pkg/utils"
)

type MessageHandler struct {
	messagingUseCase *usecase.MessagingUseCase
}

func NewMessageHandler(messagingUseCase *usecase.MessagingUseCase) *MessageHandler {
	return &MessageHandler{
		messagingUseCase: messagingUseCase,
	}
}

type attachmentRequest struct {
	FileName string `json:"file_name" validate:"required"`
	MimeType string `json:"mime_type"`
	Size     int64  `json:"size"`
	Data     string `json:"data" validate:"required"`
}

type sendMessageRequest struct {
	RecipientID string              `json:"recipient_id" validate:"required"`
	Body        string              `json:"body"`
	Attachments []attachmentRequest `json:"attachments" validate:"dive"`
}

// ListConversations returns the caller's conversations, most recent first.
func (h *MessageHandler) ListConversations(c echo.Context) error {
	userID := c.Get("uid").(string)

	limit, offset := utils.GetPaginationParams(c, 20)

	conversations, total, err := h.messagingUseCase.ListConversations(c.Request().Context(), userID, limit, offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.SuccessPaginated(c, conversations, total, limit, offset)
}

// GetMessages returns the messages of one conversation.
func (h *MessageHandler) GetMessages(c echo.Context) error {
	conversationID := c.Param("conversationId")
	userID := c.Get("uid").(string)

	limit, offset := utils.GetPaginationParams(c, 50)

	messages, total, err := h.messagingUseCase.GetMessages(c.Request().Context(), userID, conversationID, limit, offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.SuccessPaginated(c, messages, total, limit, offset)
}

// SendMessage appends a message to the thread with the given recipient. The
// conversation id in the path is informational; the canonical id is derived
// from the participant pair server-side.
func (h *MessageHandler) SendMessage(c echo.Context) error {
	userID := c.Get("uid").(string)

	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	message, err := h.messagingUseCase.SendDirectMessage(c.Request().Context(), userID, usecase.SendMessageInput{
		RecipientID: req.RecipientID,
		Body:        req.Body,
		Attachments: toEntityAttachments(req.Attachments),
	})

	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, message)
}

// MarkRead marks a conversation read for the caller.
func (h *MessageHandler) MarkRead(c echo.Context) error {
	conversationID := c.Param("conversationId")
	userID := c.Get("uid").(string)

	err := h.messagingUseCase.MarkRead(c.Request().Context(), userID, conversationID)
	if err != nil {
		return response.Error(c, err)
	}

	return c.NoContent(http.StatusOK)
}

// DeleteConversation deletes a conversation. The confirm query parameter
// must be "true"; without it no delete request reaches the store.
func (h *MessageHandler) DeleteConversation(c echo.Context) error {
	conversationID := c.Param("conversationId")
	userID := c.Get("uid").(string)
	confirmed := c.QueryParam("confirm") == "true"

	err := h.messagingUseCase.DeleteConversation(c.Request().Context(), userID, conversationID, confirmed)
	if err != nil {
		return response.Error(c, err)
	}

	return c.NoContent(http.StatusOK)
}

func toEntityAttachments(reqs []attachmentRequest) []entity.Attachment {
	if len(reqs) == 0 {
		return nil
	}
	attachments := make([]entity.Attachment, len(reqs))
	for i, r := range reqs {
		attachments[i] = entity.Attachment{
			FileName: r.FileName,
			MimeType: r.MimeType,
			Size:     r.Size,
			Data:     r.Data,
		}
	}
	return attachments
}
