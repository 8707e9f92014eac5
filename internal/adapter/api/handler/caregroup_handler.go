package handler

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"kitaconnect/internal/domain/entity"
	"kitaconnect/internal/usecase"
	"kitaconnect/pkg/errors"
	"kitaconnect/pkg/response"
)

type CareGroupHandler struct {
	careGroupUseCase *usecase.CareGroupUseCase
}

func NewCareGroupHandler(careGroupUseCase *usecase.CareGroupUseCase) *CareGroupHandler {
	return &CareGroupHandler{
		careGroupUseCase: careGroupUseCase,
	}
}

type saveCareGroupRequest struct {
	CaregiverID    string   `json:"caregiver_id"`
	ParticipantIDs []string `json:"participant_ids"`
	DaycareName    string   `json:"daycare_name"`
	LogoImageURL   string   `json:"logo_image_url" validate:"omitempty,url"`
}

type sendGroupMessageRequest struct {
	Body        string              `json:"body"`
	Attachments []attachmentRequest `json:"attachments" validate:"dive"`
}

type careGroupResponse struct {
	Group    *entity.CareGroup          `json:"group"`
	Members  map[string]*entity.Profile `json:"members,omitempty"`
	IsMember bool                       `json:"is_member"`
}

// GetMine returns the caller's care group along with the resolved member
// profiles. A caller without a group gets an explicit empty state, not an
// error.
func (h *CareGroupHandler) GetMine(c echo.Context) error {
	userID := c.Get("uid").(string)

	group, err := h.careGroupUseCase.Load(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, h.buildResponse(c, userID, group))
}

// GetByUser returns the care group of the user named by the userId query
// parameter, falling back to the caller when absent.
func (h *CareGroupHandler) GetByUser(c echo.Context) error {
	userID := c.QueryParam("userId")
	if userID == "" {
		userID = c.Get("uid").(string)
	}

	group, err := h.careGroupUseCase.Load(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, h.buildResponse(c, userID, group))
}

// Save upserts the caller's care group. A payload without a caregiver id
// is kept as a local draft only.
func (h *CareGroupHandler) Save(c echo.Context) error {
	userID := c.Get("uid").(string)

	var req saveCareGroupRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	group, err := h.careGroupUseCase.Persist(c.Request().Context(), userID, &entity.CareGroup{
		CaregiverID:    req.CaregiverID,
		ParticipantIDs: req.ParticipantIDs,
		DaycareName:    req.DaycareName,
		LogoImageURL:   req.LogoImageURL,
	})

	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, group)
}

// Delete removes a caregiver's group. Only the owning caregiver may do so.
func (h *CareGroupHandler) Delete(c echo.Context) error {
	caregiverID := c.Param("caregiverId")
	userID := c.Get("uid").(string)

	if caregiverID != userID {
		return response.Error(c, errors.Forbidden("Only the caregiver may delete this group", nil))
	}

	if err := h.careGroupUseCase.Remove(c.Request().Context(), caregiverID); err != nil {
		return response.Error(c, err)
	}

	return c.NoContent(http.StatusOK)
}

// Leave removes the caller from their current group's roster.
func (h *CareGroupHandler) Leave(c echo.Context) error {
	userID := c.Get("uid").(string)

	if err := h.careGroupUseCase.Leave(c.Request().Context(), userID); err != nil {
		return response.Error(c, err)
	}

	return c.NoContent(http.StatusOK)
}

// SendGroupMessage appends a message to the caller's group thread.
func (h *CareGroupHandler) SendGroupMessage(c echo.Context) error {
	userID := c.Get("uid").(string)

	var req sendGroupMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	message, err := h.careGroupUseCase.SendGroupMessage(c.Request().Context(), userID, usecase.GroupMessageInput{
		Body:        req.Body,
		Attachments: toEntityAttachments(req.Attachments),
	})

	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, message)
}

func (h *CareGroupHandler) buildResponse(c echo.Context, userID string, group *entity.CareGroup) *careGroupResponse {
	resp := &careGroupResponse{
		Group:    group,
		IsMember: entity.IsGroupMember(group, userID),
	}

	if group == nil {
		return resp
	}

	members, err := h.careGroupUseCase.Members(c.Request().Context(), group)
	if err != nil {
		// Profile resolution is a read embellishment; the group itself is
		// still renderable without it.
		log.Printf("buildResponse: Failed to resolve care group members for %s: %v", group.CaregiverID, err)
	} else {
		resp.Members = members
	}

	return resp
}
