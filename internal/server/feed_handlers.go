package server

import (
	"minisocial/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetFeed handles GET /api/feed. An optional ?sort= renders that order
// without changing the session sort mode.
func (s *Server) GetFeed(c *fiber.Ctx) error {
	raw := c.Query("sort")
	if raw == "" {
		return c.JSON(s.feed.View())
	}
	mode, err := models.ParseSortMode(raw)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}
	return c.JSON(s.feed.ViewSorted(mode))
}

// SetSortMode handles PUT /api/feed/sort
func (s *Server) SetSortMode(c *fiber.Ctx) error {
	var req struct {
		Mode string `json:"mode"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if err := s.feed.SetSortMode(models.SortMode(req.Mode)); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}
	return c.JSON(s.feed.View())
}

// GetFeedback handles GET /api/feedback
func (s *Server) GetFeedback(c *fiber.Ctx) error {
	msg, active := s.feed.Feedback()
	return c.JSON(fiber.Map{
		"message": msg,
		"active":  active,
	})
}

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	text, err := parseText(c)
	if err != nil {
		return nil
	}

	post, err := s.feed.CreatePost(c.UserContext(), text)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if post == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// LikePost handles POST /api/posts/:id/like
func (s *Server) LikePost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.feed.LikePost(c.UserContext(), id)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if post == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id. Deleting an absent post
// succeeds.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	if _, err := s.feed.DeletePost(c.UserContext(), id); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateComment handles POST /api/posts/:id/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	text, err := parseText(c)
	if err != nil {
		return nil
	}

	comment, err := s.feed.CreateComment(c.UserContext(), id, text)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if comment == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}
