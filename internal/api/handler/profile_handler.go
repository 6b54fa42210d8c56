package handler

import (
	"encoding/base64"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storefront/identity-system/internal/core/ports"
)

// ProfileHandler handles HTTP requests for profile operations.
type ProfileHandler struct {
	service ports.ProfileService
}

func NewProfileHandler(service ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// Get handles GET /profile.
//
// @Summary      Get the authenticated user's profile
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /profile [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	view, err := h.service.Get(c.Request().Context(), claims)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProfileResponse(view))
}

// Update handles POST /profile.
//
// @Summary      Update the authenticated user's profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Fields to change; absent fields are kept"
// @Success      200   {object}  profileResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /profile [post]
func (h *ProfileHandler) Update(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	input := ports.UpdateProfileInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	if req.Image != nil {
		if err := c.Validate(req.Image); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		data, err := base64.StdEncoding.DecodeString(req.Image.Data)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "image data must be base64 encoded")
		}
		input.Image = &ports.ImageUpload{FileName: req.Image.FileName, Data: data}
	}

	view, err := h.service.Update(c.Request().Context(), claims, input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProfileResponse(view))
}

// List handles GET /profile/list. Admin only.
//
// @Summary      List all profiles holding the User role
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  profileListResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /profile/list [get]
func (h *ProfileHandler) List(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	views, err := h.service.List(c.Request().Context(), claims, c.QueryParam("role"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProfileListResponse(views))
}

// SendVerificationEmail handles POST /profile/verification-email.
//
// @Summary      Send an email verification link to the authenticated user
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      202  {object}  statusResponse
// @Failure      401  {object}  errorResponse
// @Router       /profile/verification-email [post]
func (h *ProfileHandler) SendVerificationEmail(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.service.SendVerificationEmail(c.Request().Context(), claims); err != nil {
		return err
	}
	return c.JSON(http.StatusAccepted, statusResponse{
		Status: "Verification email sent. Please check your email.",
	})
}

// ConfirmEmail handles GET /profile/confirm-email?token=. Public: the token
// itself is the proof of identity, and it works exactly once.
//
// @Summary      Confirm an email address with a one-shot token
// @Tags         profile
// @Produce      json
// @Param        token  query     string  true  "Verification token"
// @Success      200    {object}  statusResponse
// @Failure      404    {object}  errorResponse
// @Router       /profile/confirm-email [get]
func (h *ProfileHandler) ConfirmEmail(c echo.Context) error {
	if err := h.service.ConfirmEmail(c.Request().Context(), c.QueryParam("token")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{Status: "Email confirmed."})
}
