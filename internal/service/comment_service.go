package service

import (
	"context"
	"errors"
	"strings"

	"github.com/parth10-05/verita/internal/models"
	"github.com/parth10-05/verita/internal/repository"

	"gorm.io/gorm"
)

const maxCommentLen = 1000

type CommentService struct {
	commentRepo  repository.CommentRepository
	questionRepo repository.QuestionRepository
	answerRepo   repository.AnswerRepository
	notifier     *NotificationService
	isAdmin      func(ctx context.Context, userID uint) (bool, error)
}

type CreateCommentInput struct {
	AuthorID   uint
	Body       string
	QuestionID *uint
	AnswerID   *uint
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	questionRepo repository.QuestionRepository,
	answerRepo repository.AnswerRepository,
	notifier *NotificationService,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *CommentService {
	return &CommentService{
		commentRepo:  commentRepo,
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		notifier:     notifier,
		isAdmin:      isAdmin,
	}
}

func (s *CommentService) Create(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if strings.TrimSpace(in.Body) == "" {
		return nil, models.NewValidationError("Comment body is required")
	}
	if len(in.Body) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 1000 characters)")
	}

	comment := &models.Comment{
		AuthorID:   in.AuthorID,
		Body:       in.Body,
		QuestionID: in.QuestionID,
		AnswerID:   in.AnswerID,
	}
	if !comment.HasSingleParent() {
		return nil, models.NewValidationError("A comment must reference exactly one question or answer")
	}

	// Resolve the parent, both to verify it exists and to find its author
	// for the new_comment notification.
	var parentAuthorID uint
	if in.QuestionID != nil {
		question, err := s.questionRepo.GetByID(ctx, *in.QuestionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, models.NewNotFoundError("Question not found")
			}
			return nil, err
		}
		parentAuthorID = question.AuthorID
	} else {
		answer, err := s.answerRepo.GetByID(ctx, *in.AnswerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, models.NewNotFoundError("Answer not found")
			}
			return nil, err
		}
		parentAuthorID = answer.UserID
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.notifier.NotifyNewComment(ctx, parentAuthorID, in.AuthorID, comment.ID)
	s.notifier.NotifyMentions(ctx, in.AuthorID, in.Body, models.ReferenceComment, comment.ID)

	return s.commentRepo.GetByID(ctx, comment.ID)
}

func (s *CommentService) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment not found")
		}
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) ListByQuestion(ctx context.Context, questionID uint, limit, offset int) ([]*models.Comment, int64, error) {
	return s.commentRepo.ListByQuestion(ctx, questionID, limit, offset)
}

func (s *CommentService) ListByAnswer(ctx context.Context, answerID uint, limit, offset int) ([]*models.Comment, int64, error) {
	return s.commentRepo.ListByAnswer(ctx, answerID, limit, offset)
}

func (s *CommentService) Update(ctx context.Context, userID, commentID uint, body string) (*models.Comment, error) {
	comment, err := s.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != userID {
		admin, err := s.isAdmin(ctx, userID)
		if err != nil {
			return nil, err
		}
		if !admin {
			return nil, models.NewForbiddenError("You can only edit your own comments")
		}
	}
	if strings.TrimSpace(body) == "" {
		return nil, models.NewValidationError("Comment body is required")
	}
	if len(body) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 1000 characters)")
	}

	comment.Body = body
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) Delete(ctx context.Context, userID, commentID uint) error {
	comment, err := s.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.AuthorID != userID {
		admin, err := s.isAdmin(ctx, userID)
		if err != nil {
			return err
		}
		if !admin {
			return models.NewForbiddenError("You can only delete your own comments")
		}
	}
	return s.commentRepo.Delete(ctx, commentID)
}
