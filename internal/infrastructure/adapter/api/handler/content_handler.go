package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	coreport "github.com/amirhossein-jamali/referral-platform/internal/domain/port/core"
	"github.com/amirhossein-jamali/referral-platform/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/referral-platform/internal/infrastructure/adapter/api/dto"
)

// ContentHandler serves settings, announcements and the admin dashboard
type ContentHandler struct {
	settingsUseCase     usecase.SettingsUseCase
	announcementUseCase usecase.AnnouncementUseCase
	adminUseCase        usecase.AdminUseCase
	logger              coreport.Logger
}

// NewContentHandler creates a new content handler instance
func NewContentHandler(
	settingsUseCase usecase.SettingsUseCase,
	announcementUseCase usecase.AnnouncementUseCase,
	adminUseCase usecase.AdminUseCase,
	logger coreport.Logger,
) *ContentHandler {
	return &ContentHandler{
		settingsUseCase:     settingsUseCase,
		announcementUseCase: announcementUseCase,
		adminUseCase:        adminUseCase,
		logger:              logger,
	}
}

// GetSettings handles GET /api/settings
func (h *ContentHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsUseCase.Get(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSettingsPayload(settings))
}

// UpdateSettings handles PUT /api/admin/settings
func (h *ContentHandler) UpdateSettings(c *gin.Context) {
	adminID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.SettingsPayload
	if !bindJSON(c, &req) {
		return
	}
	settings, err := req.ToEntity()
	if err != nil {
		fail(c, err)
		return
	}

	saved, err := h.settingsUseCase.Update(c.Request.Context(), settings, adminID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSettingsPayload(saved))
}

// ListActiveAnnouncements handles GET /api/announcements
func (h *ContentHandler) ListActiveAnnouncements(c *gin.Context) {
	announcements, err := h.announcementUseCase.ListActive(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, mapSlice(announcements, dto.NewAnnouncementResponse))
}

// ListAnnouncements handles GET /api/admin/announcements
func (h *ContentHandler) ListAnnouncements(c *gin.Context) {
	announcements, err := h.announcementUseCase.ListAll(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, mapSlice(announcements, dto.NewAnnouncementResponse))
}

func announcementInput(req dto.AnnouncementRequest) usecase.AnnouncementInput {
	input := usecase.AnnouncementInput{
		Title:   req.Title,
		Content: req.Content,
		Date:    req.Date,
		Active:  true,
	}
	if req.Active != nil {
		input.Active = *req.Active
	}
	return input
}

// CreateAnnouncement handles POST /api/admin/announcements
func (h *ContentHandler) CreateAnnouncement(c *gin.Context) {
	var req dto.AnnouncementRequest
	if !bindJSON(c, &req) {
		return
	}

	announcement, err := h.announcementUseCase.Create(c.Request.Context(), announcementInput(req))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewAnnouncementResponse(announcement))
}

// UpdateAnnouncement handles PUT /api/admin/announcements/:id
func (h *ContentHandler) UpdateAnnouncement(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.AnnouncementRequest
	if !bindJSON(c, &req) {
		return
	}

	announcement, err := h.announcementUseCase.Update(c.Request.Context(), id, announcementInput(req))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAnnouncementResponse(announcement))
}

// DeleteAnnouncement handles DELETE /api/admin/announcements/:id
func (h *ContentHandler) DeleteAnnouncement(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.announcementUseCase.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Dashboard handles GET /api/admin/dashboard
func (h *ContentHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.adminUseCase.Dashboard(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewDashboardResponse(dashboard))
}
