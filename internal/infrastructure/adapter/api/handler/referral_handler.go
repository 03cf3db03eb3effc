package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amirhossein-jamali/referral-platform/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/referral-platform/internal/domain/port/core"
	"github.com/amirhossein-jamali/referral-platform/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/referral-platform/internal/infrastructure/adapter/api/dto"
)

// ReferralHandler serves the referral program endpoints
type ReferralHandler struct {
	referralUseCase usecase.ReferralUseCase
	userUseCase     usecase.UserUseCase
	logger          coreport.Logger
}

// NewReferralHandler creates a new referral handler instance
func NewReferralHandler(referralUseCase usecase.ReferralUseCase, userUseCase usecase.UserUseCase, logger coreport.Logger) *ReferralHandler {
	return &ReferralHandler{referralUseCase: referralUseCase, userUseCase: userUseCase, logger: logger}
}

// Lookup handles GET /api/referrals/lookup/:code
func (h *ReferralHandler) Lookup(c *gin.Context) {
	owner, err := h.referralUseCase.ResolveCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ReferralOwnerResponse{
		MaskedEmail:  owner.MaskedEmail,
		ReferralCode: owner.ReferralCode,
	})
}

// Mine handles GET /api/referrals/me
func (h *ReferralHandler) Mine(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	user, err := h.userUseCase.GetProfile(ctx, userID)
	if err != nil {
		fail(c, err)
		return
	}
	direct, err := h.referralUseCase.DirectReferrals(ctx, userID)
	if err != nil {
		fail(c, err)
		return
	}
	earnings, err := h.referralUseCase.Earnings(ctx, userID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MyReferralsResponse{
		ReferralCode:    user.ReferralCode,
		Earnings:        entity.AmountInCentsToString(earnings),
		DirectReferrals: dto.NewReferralMembersResponse(direct),
	})
}

// Team handles GET /api/referrals/team
func (h *ReferralHandler) Team(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	team, err := h.referralUseCase.Team(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewReferralTeamResponse(team))
}

// Stats handles GET /api/referrals/stats
func (h *ReferralHandler) Stats(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	stats, err := h.referralUseCase.Stats(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewReferralStatsResponse(stats))
}

// Debug handles GET /api/admin/referrals/:userId/debug
func (h *ReferralHandler) Debug(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	report, err := h.referralUseCase.Debug(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewReferralDebugResponse(report))
}

// BackfillCodes handles POST /api/admin/referrals/backfill-codes
func (h *ReferralHandler) BackfillCodes(c *gin.Context) {
	assigned, err := h.referralUseCase.BackfillCodes(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	h.logger.Info("Referral codes backfilled", map[string]any{"assigned": assigned})
	c.JSON(http.StatusOK, dto.BackfillResponse{Assigned: assigned})
}
