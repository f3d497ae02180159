package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetTags handles GET /api/tags
func (s *Server) GetTags(c *fiber.Ctx) error {
	p := parsePagination(c, 50)

	tags, total, err := s.tagRepo.List(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondPage(c, "tags", tags, total, p)
}

// GetPopularTags handles GET /api/tags/popular
func (s *Server) GetPopularTags(c *fiber.Ctx) error {
	tags, err := s.tagRepo.ListPopular(c.Context(), 20)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"tags":    tags,
	})
}
