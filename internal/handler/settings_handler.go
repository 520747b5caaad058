package handler

import (
	"github.com/gin-gonic/gin"

	"khatapro/internal/service"
	"khatapro/pkg/response"
)

func (h *Handler) GetSettings(c *gin.Context) {
	settings, err := h.settingsService.Get(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, settings)
}

func (h *Handler) UpdateSettings(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var input service.SettingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	settings, err := h.settingsService.Update(c.Request.Context(), actor, &input)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, settings)
}
