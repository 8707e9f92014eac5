package handler

import (
	"github.com/labstack/echo/v4"

	"kitaconnect/internal/usecase"
	"kitaconnect/pkg/response"
	"kitaconnect/pkg/utils"
)

type ProfileHandler struct {
	profileUseCase *usecase.ProfileUseCase
}

func NewProfileHandler(profileUseCase *usecase.ProfileUseCase) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: profileUseCase,
	}
}

func (h *ProfileHandler) GetUser(c echo.Context) error {
	profile, err := h.profileUseCase.GetProfile(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, profile)
}

func (h *ProfileHandler) GetCaregiver(c echo.Context) error {
	profile, err := h.profileUseCase.GetCaregiver(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, profile)
}

// SearchCaregivers lists caregivers, optionally filtered by postal code.
func (h *ProfileHandler) SearchCaregivers(c echo.Context) error {
	postalCode := c.QueryParam("postalCode")

	limit, offset := utils.GetPaginationParams(c, 20)

	caregivers, total, err := h.profileUseCase.SearchCaregivers(c.Request().Context(), postalCode, limit, offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.SuccessPaginated(c, caregivers, total, limit, offset)
}
