package service

import (
	"context"
	"errors"
	"strings"

	"github.com/parth10-05/verita/internal/models"
	"github.com/parth10-05/verita/internal/observability"
	"github.com/parth10-05/verita/internal/repository"

	"gorm.io/gorm"
)

const maxAnswerContentLen = 50000

type AnswerService struct {
	answerRepo   repository.AnswerRepository
	questionRepo repository.QuestionRepository
	commentRepo  repository.CommentRepository
	voteRepo     repository.VoteRepository
	notifier     *NotificationService
	isAdmin      func(ctx context.Context, userID uint) (bool, error)
}

func NewAnswerService(
	answerRepo repository.AnswerRepository,
	questionRepo repository.QuestionRepository,
	commentRepo repository.CommentRepository,
	voteRepo repository.VoteRepository,
	notifier *NotificationService,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *AnswerService {
	return &AnswerService{
		answerRepo:   answerRepo,
		questionRepo: questionRepo,
		commentRepo:  commentRepo,
		voteRepo:     voteRepo,
		notifier:     notifier,
		isAdmin:      isAdmin,
	}
}

func (s *AnswerService) Create(ctx context.Context, userID, questionID uint, content string) (*models.Answer, error) {
	if strings.TrimSpace(content) == "" {
		return nil, models.NewValidationError("Answer content is required")
	}
	if len(content) > maxAnswerContentLen {
		return nil, models.NewValidationError("Answer too long (max 50000 characters)")
	}

	question, err := s.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Question not found")
		}
		return nil, err
	}

	answer := &models.Answer{
		QuestionID: questionID,
		UserID:     userID,
		Content:    content,
	}
	if err := s.answerRepo.Create(ctx, answer); err != nil {
		return nil, err
	}

	s.notifier.NotifyNewAnswer(ctx, question.AuthorID, userID, answer.ID)
	s.notifier.NotifyMentions(ctx, userID, content, models.ReferenceAnswer, answer.ID)

	return s.answerRepo.GetByID(ctx, answer.ID)
}

func (s *AnswerService) GetByID(ctx context.Context, id uint) (*models.Answer, error) {
	answer, err := s.answerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Answer not found")
		}
		return nil, err
	}
	return answer, nil
}

func (s *AnswerService) ListByQuestion(ctx context.Context, questionID uint, limit, offset int) ([]*models.Answer, int64, error) {
	if _, err := s.questionRepo.GetByID(ctx, questionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, models.NewNotFoundError("Question not found")
		}
		return nil, 0, err
	}
	return s.answerRepo.ListByQuestion(ctx, questionID, limit, offset)
}

func (s *AnswerService) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Answer, int64, error) {
	return s.answerRepo.ListByUser(ctx, userID, limit, offset)
}

func (s *AnswerService) Update(ctx context.Context, userID, answerID uint, content string) (*models.Answer, error) {
	answer, err := s.GetByID(ctx, answerID)
	if err != nil {
		return nil, err
	}
	if answer.UserID != userID {
		return nil, models.NewForbiddenError("You can only edit your own answers")
	}
	if strings.TrimSpace(content) == "" {
		return nil, models.NewValidationError("Answer content is required")
	}
	if len(content) > maxAnswerContentLen {
		return nil, models.NewValidationError("Answer too long (max 50000 characters)")
	}

	answer.Content = content
	if err := s.answerRepo.Update(ctx, answer); err != nil {
		return nil, err
	}
	return answer, nil
}

// Delete removes an answer together with its comments and votes. Allowed for
// the answer's author or an admin.
func (s *AnswerService) Delete(ctx context.Context, userID, answerID uint) error {
	answer, err := s.GetByID(ctx, answerID)
	if err != nil {
		return err
	}

	if answer.UserID != userID {
		admin, err := s.isAdmin(ctx, userID)
		if err != nil {
			return err
		}
		if !admin {
			return models.NewForbiddenError("You can only delete your own answers")
		}
	}

	return s.voteRepo.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.commentRepo.DeleteByAnswer(ctx, tx, answerID); err != nil {
			return err
		}
		if err := s.voteRepo.DeleteByTarget(ctx, tx, models.TargetAnswer, answerID); err != nil {
			return err
		}
		return s.answerRepo.Delete(ctx, tx, answerID)
	})
}

// Accept marks an answer as the accepted one for its question. Only the
// question's author may accept, and at most one answer per question carries
// the flag, so siblings are cleared first in the same transaction.
func (s *AnswerService) Accept(ctx context.Context, userID, answerID uint) (*models.Answer, error) {
	answer, err := s.GetByID(ctx, answerID)
	if err != nil {
		return nil, err
	}

	question, err := s.questionRepo.GetByID(ctx, answer.QuestionID)
	if err != nil {
		return nil, err
	}
	if question.AuthorID != userID {
		return nil, models.NewForbiddenError("Only the question author can accept an answer")
	}

	err = s.voteRepo.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.answerRepo.ClearAccepted(ctx, tx, answer.QuestionID); err != nil {
			return err
		}
		return s.answerRepo.SetAccepted(ctx, tx, answerID, true)
	})
	if err != nil {
		return nil, err
	}

	observability.AnswersAccepted.Inc()
	return s.answerRepo.GetByID(ctx, answerID)
}

// Unaccept clears the accepted flag, under the same authorization as Accept.
func (s *AnswerService) Unaccept(ctx context.Context, userID, answerID uint) (*models.Answer, error) {
	answer, err := s.GetByID(ctx, answerID)
	if err != nil {
		return nil, err
	}

	question, err := s.questionRepo.GetByID(ctx, answer.QuestionID)
	if err != nil {
		return nil, err
	}
	if question.AuthorID != userID {
		return nil, models.NewForbiddenError("Only the question author can unaccept an answer")
	}

	if err := s.answerRepo.SetAccepted(ctx, nil, answerID, false); err != nil {
		return nil, err
	}
	return s.answerRepo.GetByID(ctx, answerID)
}
