package server

import (
	"github.com/parth10-05/verita/internal/models"
	"github.com/parth10-05/verita/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateAdmin handles POST /api/admin/create. The route is public; the
// shared admin secret in the body is the credential.
func (s *Server) CreateAdmin(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Secret   string `json:"secret"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.adminService.CreateAdmin(c.Context(), service.CreateAdminInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Secret:   req.Secret,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"user":    user,
	})
}

// GetDashboardStats handles GET /api/admin/dashboard
func (s *Server) GetDashboardStats(c *fiber.Ctx) error {
	stats, err := s.adminService.Dashboard(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"stats":   stats,
	})
}

// GetAllUsers handles GET /api/admin/users
func (s *Server) GetAllUsers(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	users, total, err := s.adminService.ListUsers(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondPage(c, "users", users, total, p)
}

// GetAllQuestions handles GET /api/admin/questions
func (s *Server) GetAllQuestions(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	query := c.Query("q")

	questions, total, err := s.adminService.ListQuestions(c.Context(), query, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondPage(c, "questions", questions, total, p)
}

// GetAdminLogs handles GET /api/admin/logs
func (s *Server) GetAdminLogs(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	logs, total, err := s.adminService.ListLogs(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondPage(c, "logs", logs, total, p)
}

func (s *Server) setBanned(c *fiber.Ctx, banned bool) error {
	userID, err := s.parseID(c, "userId", "user ID")
	if err != nil {
		return nil
	}

	var req struct {
		Notes string `json:"notes"`
	}
	// Body is optional for ban/unban.
	_ = c.BodyParser(&req)

	user, err := s.adminService.SetBanned(c.Context(), currentUserID(c), userID, banned, req.Notes)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"user":    user,
	})
}

// BanUser handles PUT /api/admin/users/:userId/ban
func (s *Server) BanUser(c *fiber.Ctx) error {
	return s.setBanned(c, true)
}

// UnbanUser handles PUT /api/admin/users/:userId/unban
func (s *Server) UnbanUser(c *fiber.Ctx) error {
	return s.setBanned(c, false)
}

// DeleteUser handles DELETE /api/admin/users/:userId
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId", "user ID")
	if err != nil {
		return nil
	}

	var req struct {
		Notes string `json:"notes"`
	}
	_ = c.BodyParser(&req)

	if err := s.adminService.DeleteUser(c.Context(), currentUserID(c), userID, req.Notes); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "User deleted",
	})
}

// AdminDeleteQuestion handles DELETE /api/admin/questions/:questionId
func (s *Server) AdminDeleteQuestion(c *fiber.Ctx) error {
	questionID, err := s.parseID(c, "questionId", "question ID")
	if err != nil {
		return nil
	}

	var req struct {
		Notes string `json:"notes"`
	}
	_ = c.BodyParser(&req)

	if err := s.adminService.DeleteQuestion(c.Context(), currentUserID(c), questionID, req.Notes); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Question deleted",
	})
}

// AdminDeleteAnswer handles DELETE /api/admin/answers/:answerId
func (s *Server) AdminDeleteAnswer(c *fiber.Ctx) error {
	answerID, err := s.parseID(c, "answerId", "answer ID")
	if err != nil {
		return nil
	}

	var req struct {
		Notes string `json:"notes"`
	}
	_ = c.BodyParser(&req)

	if err := s.adminService.DeleteAnswer(c.Context(), currentUserID(c), answerID, req.Notes); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Answer deleted",
	})
}

// AdminCreateTag handles POST /api/admin/tags
func (s *Server) AdminCreateTag(c *fiber.Ctx) error {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	tag, err := s.adminService.CreateTag(c.Context(), currentUserID(c), req.Name, req.Description)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"tag":     tag,
	})
}

// AdminUpdateTag handles PUT /api/admin/tags/:tagId
func (s *Server) AdminUpdateTag(c *fiber.Ctx) error {
	tagID, err := s.parseID(c, "tagId", "tag ID")
	if err != nil {
		return nil
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	tag, err := s.adminService.UpdateTag(c.Context(), currentUserID(c), tagID, req.Name, req.Description)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"tag":     tag,
	})
}

// AdminDeleteTag handles DELETE /api/admin/tags/:tagId
func (s *Server) AdminDeleteTag(c *fiber.Ctx) error {
	tagID, err := s.parseID(c, "tagId", "tag ID")
	if err != nil {
		return nil
	}

	var req struct {
		Notes string `json:"notes"`
	}
	_ = c.BodyParser(&req)

	if err := s.adminService.DeleteTag(c.Context(), currentUserID(c), tagID, req.Notes); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Tag deleted",
	})
}
