package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/trimtally-api/internal/application/service"
	"github.com/sangkips/trimtally-api/internal/presentation/http/dto/request"
	"github.com/sangkips/trimtally-api/internal/presentation/http/dto/response"
)

// SettingsHandler handles income settings HTTP requests
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// Get handles fetching the shop's pricing rule
func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.settingsService.GetSettings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Income settings retrieved successfully", settings)
}

// Set handles creating or overwriting the shop's pricing rule
func (h *SettingsHandler) Set(c *gin.Context) {
	var req request.IncomeSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	settings, err := h.settingsService.SetSettings(c.Request.Context(), &service.SetSettingsInput{
		UnitPrice:            req.UnitPrice,
		OwnerSharePercentage: req.OwnerSharePercentage,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Income settings saved successfully", settings)
}
