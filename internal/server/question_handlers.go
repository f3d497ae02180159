package server

import (
	"github.com/parth10-05/verita/internal/models"
	"github.com/parth10-05/verita/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetQuestions handles GET /api/questions
func (s *Server) GetQuestions(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	sort := c.Query("sort")

	questions, total, err := s.questionService.List(c.Context(), p.Limit, p.Offset, sort)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondPage(c, "questions", questions, total, p)
}

// SearchQuestions handles GET /api/questions/search
func (s *Server) SearchQuestions(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	query := c.Query("q")

	questions, total, err := s.questionService.Search(c.Context(), query, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondPage(c, "questions", questions, total, p)
}

// GetQuestion handles GET /api/questions/:id
func (s *Server) GetQuestion(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id", "question ID")
	if err != nil {
		return nil
	}

	question, err := s.questionService.GetByID(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"question": question,
	})
}

// GetQuestionAnswers handles GET /api/questions/:id/answers
func (s *Server) GetQuestionAnswers(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id", "question ID")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 20)

	answers, total, err := s.answerService.ListByQuestion(c.Context(), id, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondPage(c, "answers", answers, total, p)
}

// GetQuestionsByTag handles GET /api/tags/:slug/questions
func (s *Server) GetQuestionsByTag(c *fiber.Ctx) error {
	slug := c.Params("slug")
	p := parsePagination(c, 20)

	questions, total, err := s.questionService.ListByTag(c.Context(), slug, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondPage(c, "questions", questions, total, p)
}

// CreateQuestion handles POST /api/questions
func (s *Server) CreateQuestion(c *fiber.Ctx) error {
	var req struct {
		Title string   `json:"title"`
		Body  string   `json:"body"`
		Tags  []string `json:"tags"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	question, err := s.questionService.Create(c.Context(), service.CreateQuestionInput{
		AuthorID: currentUserID(c),
		Title:    req.Title,
		Body:     req.Body,
		Tags:     req.Tags,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":  true,
		"question": question,
	})
}

// UpdateQuestion handles PUT /api/questions/:id
func (s *Server) UpdateQuestion(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id", "question ID")
	if err != nil {
		return nil
	}

	var req struct {
		Title string   `json:"title"`
		Body  string   `json:"body"`
		Tags  []string `json:"tags"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	question, err := s.questionService.Update(c.Context(), service.UpdateQuestionInput{
		UserID:     currentUserID(c),
		QuestionID: id,
		Title:      req.Title,
		Body:       req.Body,
		Tags:       req.Tags,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"question": question,
	})
}

// DeleteQuestion handles DELETE /api/questions/:id
func (s *Server) DeleteQuestion(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id", "question ID")
	if err != nil {
		return nil
	}

	if err := s.questionService.Delete(c.Context(), currentUserID(c), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Question deleted",
	})
}
