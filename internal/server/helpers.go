package server

import (
	"errors"
	"strconv"

	"minisocial/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten indicates a helper already committed the response.
// Handlers must return nil instead so the ErrorHandler does not overwrite it.
var errResponseWritten = errors.New("response already written")

// parseID extracts a route parameter as a positive post or comment id.
// On failure it writes a 400 JSON response and returns errResponseWritten.
func parseID(c *fiber.Ctx, param string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(param), 10, 64)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+param))
		return 0, errResponseWritten
	}
	return id, nil
}

// textRequest is the body of create-post and create-comment requests.
type textRequest struct {
	Text string `json:"text"`
}

// parseText reads a textRequest body. On failure it writes a 400 JSON
// response and returns errResponseWritten.
func parseText(c *fiber.Ctx) (string, error) {
	var req textRequest
	if err := c.BodyParser(&req); err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
		return "", errResponseWritten
	}
	return req.Text, nil
}
