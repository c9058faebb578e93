package server

import (
	"errors"

	"quorum/internal/models"

	"github.com/gofiber/fiber/v2"
)

// validationMessage unwraps a validation AppError into its user-facing
// message. Other errors report no message and should bubble up.
func validationMessage(err error) (string, bool) {
	var appErr *models.AppError
	if errors.As(err, &appErr) && appErr.Code == "VALIDATION_ERROR" {
		return appErr.Message, true
	}
	return "", false
}

// parseID extracts a positive numeric route parameter.
func parseID(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid question ID")
	}
	return uint(id), nil
}

// render executes a view with the shared bind values every page needs:
// the current user for the nav and any pending flash messages. Handler
// supplied keys win on conflict.
func (s *Server) render(c *fiber.Ctx, name string, bind fiber.Map) error {
	if bind == nil {
		bind = fiber.Map{}
	}
	if _, ok := bind["CurrentUser"]; !ok {
		bind["CurrentUser"] = s.sessions.CurrentUser(c)
	}
	if _, ok := bind["Flashes"]; !ok {
		bind["Flashes"] = s.sessions.TakeFlashes(c)
	}
	return c.Render(name, bind)
}
