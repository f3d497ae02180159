package server

import (
	"github.com/parth10-05/verita/internal/models"
	"github.com/parth10-05/verita/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetQuestionComments handles GET /api/comments/questions/:questionId
func (s *Server) GetQuestionComments(c *fiber.Ctx) error {
	questionID, err := s.parseID(c, "questionId", "question ID")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 50)

	comments, total, err := s.commentService.ListByQuestion(c.Context(), questionID, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondPage(c, "comments", comments, total, p)
}

// GetAnswerComments handles GET /api/comments/answers/:answerId
func (s *Server) GetAnswerComments(c *fiber.Ctx) error {
	answerID, err := s.parseID(c, "answerId", "answer ID")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 50)

	comments, total, err := s.commentService.ListByAnswer(c.Context(), answerID, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondPage(c, "comments", comments, total, p)
}

// CreateComment handles POST /api/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	var req struct {
		Body       string `json:"body"`
		QuestionID *uint  `json:"questionId"`
		AnswerID   *uint  `json:"answerId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.Create(c.Context(), service.CreateCommentInput{
		AuthorID:   currentUserID(c),
		Body:       req.Body,
		QuestionID: req.QuestionID,
		AnswerID:   req.AnswerID,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"comment": comment,
	})
}

// UpdateComment handles PUT /api/comments/:commentId
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "commentId", "comment ID")
	if err != nil {
		return nil
	}

	var req struct {
		Body string `json:"body"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.Update(c.Context(), currentUserID(c), commentID, req.Body)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"comment": comment,
	})
}

// DeleteComment handles DELETE /api/comments/:commentId
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "commentId", "comment ID")
	if err != nil {
		return nil
	}

	if err := s.commentService.Delete(c.Context(), currentUserID(c), commentID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Comment deleted",
	})
}
