package handlers

import (
	"statement-analyzer/internal/dto"

	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	provider string
	profile  string
	profiles []string
}

func NewHealthHandler(provider, defaultProfile string, profiles []string) *HealthHandler {
	return &HealthHandler{
		provider: provider,
		profile:  defaultProfile,
		profiles: profiles,
	}
}

// Health godoc
// @Summary Service health
// @Description Reports the configured completion provider and analysis profiles.
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{
		Status:   "ok",
		Provider: h.provider,
		Profile:  h.profile,
		Profiles: h.profiles,
	})
}
