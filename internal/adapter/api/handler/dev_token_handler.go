package handler

import (
	"github.com/labstack/echo/v4"

	"kitaconnect/internal/domain/entity"
	"kitaconnect/internal/infrastructure/firebase"
	"kitaconnect/internal/usecase"
	"kitaconnect/pkg/errors"
	"kitaconnect/pkg/response"
)

// DevTokenHandler mints Firebase custom tokens and seeds test accounts for
// local testing. It is only routed outside production.
type DevTokenHandler struct {
	firebaseAuth   *firebase.FirebaseAuthClient
	profileUseCase *usecase.ProfileUseCase
}

func NewDevTokenHandler(firebaseAuth *firebase.FirebaseAuthClient, profileUseCase *usecase.ProfileUseCase) *DevTokenHandler {
	return &DevTokenHandler{
		firebaseAuth:   firebaseAuth,
		profileUseCase: profileUseCase,
	}
}

type devTokenRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

type devUserRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	DisplayName string `json:"display_name" validate:"required"`
	Kind        string `json:"kind" validate:"required,oneof=parent caregiver"`
	PostalCode  string `json:"postal_code"`
}

func (h *DevTokenHandler) GenerateToken(c echo.Context) error {
	var req devTokenRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	token, err := h.firebaseAuth.GenerateToken(c.Request().Context(), req.UserID)
	if err != nil {
		return response.Error(c, errors.Internal("Failed to generate token", err))
	}

	return response.Success(c, map[string]string{
		"token":   token,
		"user_id": req.UserID,
	})
}

// CreateUser creates a Firebase test account together with its directory
// profile and returns the new uid.
func (h *DevTokenHandler) CreateUser(c echo.Context) error {
	var req devUserRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid, err := h.firebaseAuth.CreateUser(c.Request().Context(), req.Email, req.Password, req.DisplayName)
	if err != nil {
		return response.Error(c, errors.Internal("Failed to create user", err))
	}

	profile, err := h.profileUseCase.CreateProfile(c.Request().Context(), &entity.Profile{
		ID:          uid,
		Kind:        req.Kind,
		DisplayName: req.DisplayName,
		Email:       req.Email,
		PostalCode:  req.PostalCode,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, profile)
}
