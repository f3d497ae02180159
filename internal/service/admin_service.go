package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/parth10-05/verita/internal/middleware"
	"github.com/parth10-05/verita/internal/models"
	"github.com/parth10-05/verita/internal/observability"
	"github.com/parth10-05/verita/internal/repository"
	"github.com/parth10-05/verita/internal/validation"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// cascadeBatchSize bounds how much authored content DeleteUser pulls per
// listing pass while draining an account.
const cascadeBatchSize = 1000

type AdminService struct {
	userRepo     repository.UserRepository
	questionRepo repository.QuestionRepository
	answerRepo   repository.AnswerRepository
	tagRepo      repository.TagRepository
	adminLogRepo repository.AdminLogRepository
	statsRepo    repository.StatsRepository
	questions    *QuestionService
	answers      *AnswerService
	adminSecret  string
}

type CreateAdminInput struct {
	Username string `validate:"required,username"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,password_strength"`
	Secret   string `validate:"-"`
}

func NewAdminService(
	userRepo repository.UserRepository,
	questionRepo repository.QuestionRepository,
	answerRepo repository.AnswerRepository,
	tagRepo repository.TagRepository,
	adminLogRepo repository.AdminLogRepository,
	statsRepo repository.StatsRepository,
	questions *QuestionService,
	answers *AnswerService,
	adminSecret string,
) *AdminService {
	return &AdminService{
		userRepo:     userRepo,
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		tagRepo:      tagRepo,
		adminLogRepo: adminLogRepo,
		statsRepo:    statsRepo,
		questions:    questions,
		answers:      answers,
		adminSecret:  adminSecret,
	}
}

// log appends an AdminLog row. Audit failures are not fatal to the action
// they describe, only logged.
func (s *AdminService) log(ctx context.Context, adminID uint, action models.AdminAction, targetID uint, targetModel, notes string) {
	entry := &models.AdminLog{
		AdminID:     adminID,
		ActionType:  action,
		TargetID:    targetID,
		TargetModel: targetModel,
		Notes:       notes,
	}
	if err := s.adminLogRepo.Create(ctx, entry); err != nil {
		middleware.Logger.WarnContext(ctx, "failed to write admin log",
			"action", action, "target_id", targetID, "error", err)
		return
	}
	observability.AdminActions.WithLabelValues(string(action)).Inc()
}

// CreateAdmin bootstraps an admin account. Guarded by the shared admin
// secret so it can be exposed before any admin exists.
func (s *AdminService) CreateAdmin(ctx context.Context, in CreateAdminInput) (*models.User, error) {
	if s.adminSecret == "" {
		return nil, models.NewForbiddenError("Admin bootstrap is disabled")
	}
	if subtle.ConstantTimeCompare([]byte(in.Secret), []byte(s.adminSecret)) != 1 {
		return nil, models.NewForbiddenError("Invalid admin secret")
	}
	if err := inputValidator.Struct(in); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	if _, err := s.userRepo.GetByEmail(ctx, in.Email); err == nil {
		return nil, models.NewConflictError("An account with this email already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hashed),
		Role:         models.RoleAdmin,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AdminService) Dashboard(ctx context.Context) (*repository.DashboardStats, error) {
	return s.statsRepo.Dashboard(ctx)
}

func (s *AdminService) ListUsers(ctx context.Context, limit, offset int) ([]*models.User, int64, error) {
	return s.userRepo.List(ctx, limit, offset)
}

func (s *AdminService) ListQuestions(ctx context.Context, query string, limit, offset int) ([]*models.Question, int64, error) {
	if strings.TrimSpace(query) != "" {
		return s.questionRepo.Search(ctx, query, limit, offset)
	}
	return s.questionRepo.List(ctx, limit, offset, "")
}

func (s *AdminService) ListLogs(ctx context.Context, limit, offset int) ([]*models.AdminLog, int64, error) {
	return s.adminLogRepo.List(ctx, limit, offset)
}

// SetBanned bans or unbans a user. Admins cannot ban other admins.
func (s *AdminService) SetBanned(ctx context.Context, adminID, userID uint, banned bool, notes string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User not found")
		}
		return nil, err
	}
	if user.Role == models.RoleAdmin {
		return nil, models.NewForbiddenError("Admins cannot be banned")
	}
	if user.IsBanned == banned {
		return user, nil
	}

	if err := s.userRepo.UpdateFields(ctx, userID, map[string]interface{}{"is_banned": banned}); err != nil {
		return nil, err
	}

	action := models.ActionBanUser
	if !banned {
		action = models.ActionUnbanUser
	}
	s.log(ctx, adminID, action, userID, "User", notes)

	return s.userRepo.GetByID(ctx, userID)
}

// DeleteUser removes an account and all content it authored.
func (s *AdminService) DeleteUser(ctx context.Context, adminID, userID uint, notes string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("User not found")
		}
		return err
	}
	if user.Role == models.RoleAdmin {
		return models.NewForbiddenError("Admins cannot be deleted")
	}

	// Cascade through the domain services so answers, comments and votes
	// hanging off each question go with it. Each pass re-lists from offset
	// zero because the deletes shrink the listing until it drains.
	for {
		questions, _, err := s.questionRepo.ListByAuthor(ctx, userID, cascadeBatchSize, 0)
		if err != nil {
			return err
		}
		if len(questions) == 0 {
			break
		}
		for _, q := range questions {
			if err := s.questions.Delete(ctx, adminID, q.ID); err != nil {
				return err
			}
		}
	}

	for {
		answers, _, err := s.answerRepo.ListByUser(ctx, userID, cascadeBatchSize, 0)
		if err != nil {
			return err
		}
		if len(answers) == 0 {
			break
		}
		for _, a := range answers {
			if err := s.answers.Delete(ctx, adminID, a.ID); err != nil {
				return err
			}
		}
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return err
	}

	s.log(ctx, adminID, models.ActionDeleteUser, userID, "User", notes)
	return nil
}

// DeleteQuestion removes a question on behalf of moderation.
func (s *AdminService) DeleteQuestion(ctx context.Context, adminID, questionID uint, notes string) error {
	if err := s.questions.Delete(ctx, adminID, questionID); err != nil {
		return err
	}
	s.log(ctx, adminID, models.ActionDeleteQuestion, questionID, "Question", notes)
	return nil
}

// DeleteAnswer removes an answer on behalf of moderation.
func (s *AdminService) DeleteAnswer(ctx context.Context, adminID, answerID uint, notes string) error {
	if err := s.answers.Delete(ctx, adminID, answerID); err != nil {
		return err
	}
	s.log(ctx, adminID, models.ActionDeleteAnswer, answerID, "Answer", notes)
	return nil
}

// CreateTag creates a tag ahead of any question using it, with an optional
// description.
func (s *AdminService) CreateTag(ctx context.Context, adminID uint, name, description string) (*models.Tag, error) {
	if err := validation.ValidateTagName(name); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	tag, err := s.tagRepo.FindOrCreate(ctx, name)
	if err != nil {
		return nil, err
	}
	if description != "" && tag.Description != description {
		tag.Description = description
		if err := s.tagRepo.Update(ctx, tag); err != nil {
			return nil, err
		}
	}

	s.log(ctx, adminID, models.ActionCreateTag, tag.ID, "Tag", "")
	return tag, nil
}

// UpdateTag renames a tag or changes its description.
func (s *AdminService) UpdateTag(ctx context.Context, adminID, tagID uint, name, description string) (*models.Tag, error) {
	tag, err := s.tagRepo.GetByID(ctx, tagID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Tag not found")
		}
		return nil, err
	}

	if name != "" {
		if err := validation.ValidateTagName(name); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		tag.Name = strings.ToLower(strings.TrimSpace(name))
		tag.Slug = repository.Slugify(tag.Name)
	}
	tag.Description = description

	if err := s.tagRepo.Update(ctx, tag); err != nil {
		return nil, err
	}
	s.log(ctx, adminID, models.ActionEditTag, tagID, "Tag", "")
	return tag, nil
}

// DeleteTag removes a tag and detaches it from every question.
func (s *AdminService) DeleteTag(ctx context.Context, adminID, tagID uint, notes string) error {
	if _, err := s.tagRepo.GetByID(ctx, tagID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Tag not found")
		}
		return err
	}

	if err := s.tagRepo.Delete(ctx, tagID); err != nil {
		return err
	}
	s.log(ctx, adminID, models.ActionDeleteTag, tagID, "Tag", notes)
	return nil
}
