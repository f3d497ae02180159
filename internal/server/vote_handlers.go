package server

import (
	"github.com/parth10-05/verita/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CastVote handles POST /api/votes, the generic vote endpoint taking the
// target kind in the body.
func (s *Server) CastVote(c *fiber.Ctx) error {
	var req struct {
		TargetType string `json:"targetType"`
		TargetID   uint   `json:"targetId"`
		Value      int    `json:"value"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	result, err := s.voteService.CastVote(c.Context(), currentUserID(c),
		models.TargetKind(req.TargetType), req.TargetID, req.Value)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"vote":    result,
	})
}

func (s *Server) castVoteFor(c *fiber.Ctx, kind models.TargetKind, param, label string) error {
	targetID, err := s.parseID(c, param, label)
	if err != nil {
		return nil
	}

	var req struct {
		Value int `json:"value"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	result, err := s.voteService.CastVote(c.Context(), currentUserID(c), kind, targetID, req.Value)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"vote":    result,
	})
}

func (s *Server) getVoteFor(c *fiber.Ctx, kind models.TargetKind, param, label string) error {
	targetID, err := s.parseID(c, param, label)
	if err != nil {
		return nil
	}

	value, err := s.voteService.GetVote(c.Context(), currentUserID(c), kind, targetID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"value":   value,
	})
}

// VoteQuestion handles POST /api/votes/questions/:questionId
func (s *Server) VoteQuestion(c *fiber.Ctx) error {
	return s.castVoteFor(c, models.TargetQuestion, "questionId", "question ID")
}

// GetQuestionVote handles GET /api/votes/questions/:questionId
func (s *Server) GetQuestionVote(c *fiber.Ctx) error {
	return s.getVoteFor(c, models.TargetQuestion, "questionId", "question ID")
}

// VoteAnswer handles POST /api/votes/answers/:answerId
func (s *Server) VoteAnswer(c *fiber.Ctx) error {
	return s.castVoteFor(c, models.TargetAnswer, "answerId", "answer ID")
}

// GetAnswerVote handles GET /api/votes/answers/:answerId
func (s *Server) GetAnswerVote(c *fiber.Ctx) error {
	return s.getVoteFor(c, models.TargetAnswer, "answerId", "answer ID")
}
