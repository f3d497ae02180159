package server

import (
	"github.com/parth10-05/verita/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetAnswersByQuestion handles GET /api/answers/question/:questionId
func (s *Server) GetAnswersByQuestion(c *fiber.Ctx) error {
	questionID, err := s.parseID(c, "questionId", "question ID")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 20)

	answers, total, err := s.answerService.ListByQuestion(c.Context(), questionID, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondPage(c, "answers", answers, total, p)
}

// GetAnswer handles GET /api/answers/:id
func (s *Server) GetAnswer(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id", "answer ID")
	if err != nil {
		return nil
	}

	answer, err := s.answerService.GetByID(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"answer":  answer,
	})
}

// CreateAnswer handles POST /api/answers
func (s *Server) CreateAnswer(c *fiber.Ctx) error {
	var req struct {
		QuestionID uint   `json:"questionId"`
		Content    string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.QuestionID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("questionId is required"))
	}

	answer, err := s.answerService.Create(c.Context(), currentUserID(c), req.QuestionID, req.Content)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"answer":  answer,
	})
}

// UpdateAnswer handles PUT /api/answers/:id
func (s *Server) UpdateAnswer(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id", "answer ID")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	answer, err := s.answerService.Update(c.Context(), currentUserID(c), id, req.Content)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"answer":  answer,
	})
}

// DeleteAnswer handles DELETE /api/answers/:id
func (s *Server) DeleteAnswer(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id", "answer ID")
	if err != nil {
		return nil
	}

	if err := s.answerService.Delete(c.Context(), currentUserID(c), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Answer deleted",
	})
}

// AcceptAnswer handles POST /api/answers/:id/accept
func (s *Server) AcceptAnswer(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id", "answer ID")
	if err != nil {
		return nil
	}

	answer, err := s.answerService.Accept(c.Context(), currentUserID(c), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"answer":  answer,
	})
}

// UnacceptAnswer handles DELETE /api/answers/:id/accept
func (s *Server) UnacceptAnswer(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id", "answer ID")
	if err != nil {
		return nil
	}

	answer, err := s.answerService.Unaccept(c.Context(), currentUserID(c), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"answer":  answer,
	})
}
