package api

import (
	"net/http"
	"time"

	"alcyxob/fitness-coach/internal/service"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileService service.ProfileService
}

func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// EntitlementRequest defines the expected JSON for syncing a subscription entitlement.
type EntitlementRequest struct {
	IsPremium *bool      `json:"is_premium" binding:"required"`
	ExpiresAt *time.Time `json:"premium_expires_at"`
	WillRenew *bool      `json:"premium_will_renew"`
}

// Me godoc
// @Summary Get the caller's profile
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.Profile
// @Failure 404 {object} gin.H "No profile for this account"
// @Router /me [get]
func (h *ProfileHandler) Me(c *gin.Context) {
	principal, ok := principalFromContext(c)
	if !ok {
		respondError(c, service.ErrUnauthenticated)
		return
	}
	profile, err := h.profileService.Me(c.Request.Context(), principal)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// SyncEntitlement godoc
// @Summary Store the caller's subscription entitlement
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param entitlement body EntitlementRequest true "Entitlement"
// @Success 200 {object} service.Profile
// @Failure 400 {object} gin.H "Invalid input"
// @Router /me/entitlement [put]
func (h *ProfileHandler) SyncEntitlement(c *gin.Context) {
	principal, ok := principalFromContext(c)
	if !ok {
		respondError(c, service.ErrUnauthenticated)
		return
	}
	var req EntitlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	profile, err := h.profileService.SyncEntitlement(c.Request.Context(), principal, service.Entitlement{
		IsPremium: *req.IsPremium,
		ExpiresAt: req.ExpiresAt,
		WillRenew: req.WillRenew,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
