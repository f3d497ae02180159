package service

import (
	"context"
	"errors"
	"strings"

	"github.com/parth10-05/verita/internal/models"
	"github.com/parth10-05/verita/internal/observability"
	"github.com/parth10-05/verita/internal/repository"
	"github.com/parth10-05/verita/internal/validation"

	"gorm.io/gorm"
)

const (
	maxQuestionTitleLen = 300
	maxQuestionBodyLen  = 50000
	maxTagsPerQuestion  = 5
)

type QuestionService struct {
	questionRepo repository.QuestionRepository
	answerRepo   repository.AnswerRepository
	commentRepo  repository.CommentRepository
	voteRepo     repository.VoteRepository
	tagRepo      repository.TagRepository
	notifier     *NotificationService
	isAdmin      func(ctx context.Context, userID uint) (bool, error)
}

type CreateQuestionInput struct {
	AuthorID uint
	Title    string
	Body     string
	Tags     []string
}

type UpdateQuestionInput struct {
	UserID     uint
	QuestionID uint
	Title      string
	Body       string
	Tags       []string
}

func NewQuestionService(
	questionRepo repository.QuestionRepository,
	answerRepo repository.AnswerRepository,
	commentRepo repository.CommentRepository,
	voteRepo repository.VoteRepository,
	tagRepo repository.TagRepository,
	notifier *NotificationService,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		commentRepo:  commentRepo,
		voteRepo:     voteRepo,
		tagRepo:      tagRepo,
		notifier:     notifier,
		isAdmin:      isAdmin,
	}
}

func (s *QuestionService) validateContent(title, body string) error {
	if strings.TrimSpace(title) == "" {
		return models.NewValidationError("Title is required")
	}
	if len(title) > maxQuestionTitleLen {
		return models.NewValidationError("Title too long (max 300 characters)")
	}
	if strings.TrimSpace(body) == "" {
		return models.NewValidationError("Body is required")
	}
	if len(body) > maxQuestionBodyLen {
		return models.NewValidationError("Body too long (max 50000 characters)")
	}
	return nil
}

// resolveTags normalizes and resolves every supplied tag name, creating
// missing tags on the way.
func (s *QuestionService) resolveTags(ctx context.Context, names []string) ([]models.Tag, error) {
	if len(names) > maxTagsPerQuestion {
		return nil, models.NewValidationError("A question can have at most 5 tags")
	}
	tags := make([]models.Tag, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if err := validation.ValidateTagName(name); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		normalized := strings.ToLower(strings.TrimSpace(name))
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}

		tag, err := s.tagRepo.FindOrCreate(ctx, normalized)
		if err != nil {
			return nil, err
		}
		tags = append(tags, *tag)
	}
	return tags, nil
}

func (s *QuestionService) Create(ctx context.Context, in CreateQuestionInput) (*models.Question, error) {
	if err := s.validateContent(in.Title, in.Body); err != nil {
		return nil, err
	}

	tags, err := s.resolveTags(ctx, in.Tags)
	if err != nil {
		return nil, err
	}

	question := &models.Question{
		AuthorID: in.AuthorID,
		Title:    strings.TrimSpace(in.Title),
		Body:     in.Body,
		Tags:     tags,
	}
	if err := s.questionRepo.Create(ctx, question); err != nil {
		return nil, err
	}

	observability.QuestionsCreated.Inc()
	s.notifier.NotifyMentions(ctx, in.AuthorID, in.Body, models.ReferenceQuestion, question.ID)

	return s.questionRepo.GetByID(ctx, question.ID)
}

func (s *QuestionService) GetByID(ctx context.Context, id uint) (*models.Question, error) {
	question, err := s.questionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Question not found")
		}
		return nil, err
	}
	return question, nil
}

func (s *QuestionService) List(ctx context.Context, limit, offset int, sort string) ([]*models.Question, int64, error) {
	return s.questionRepo.List(ctx, limit, offset, sort)
}

func (s *QuestionService) ListByTag(ctx context.Context, tagSlug string, limit, offset int) ([]*models.Question, int64, error) {
	if _, err := s.tagRepo.GetBySlug(ctx, tagSlug); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, models.NewNotFoundError("Tag not found")
		}
		return nil, 0, err
	}
	return s.questionRepo.ListByTag(ctx, tagSlug, limit, offset)
}

func (s *QuestionService) ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]*models.Question, int64, error) {
	return s.questionRepo.ListByAuthor(ctx, authorID, limit, offset)
}

func (s *QuestionService) Search(ctx context.Context, query string, limit, offset int) ([]*models.Question, int64, error) {
	if strings.TrimSpace(query) == "" {
		return nil, 0, models.NewValidationError("Search query is required")
	}
	return s.questionRepo.Search(ctx, query, limit, offset)
}

func (s *QuestionService) Update(ctx context.Context, in UpdateQuestionInput) (*models.Question, error) {
	question, err := s.GetByID(ctx, in.QuestionID)
	if err != nil {
		return nil, err
	}
	if question.AuthorID != in.UserID {
		return nil, models.NewForbiddenError("You can only edit your own questions")
	}
	if err := s.validateContent(in.Title, in.Body); err != nil {
		return nil, err
	}

	question.Title = strings.TrimSpace(in.Title)
	question.Body = in.Body
	if err := s.questionRepo.Update(ctx, question); err != nil {
		return nil, err
	}

	if in.Tags != nil {
		tags, err := s.resolveTags(ctx, in.Tags)
		if err != nil {
			return nil, err
		}
		if err := s.questionRepo.ReplaceTags(ctx, question, tags); err != nil {
			return nil, err
		}
	}

	return s.questionRepo.GetByID(ctx, question.ID)
}

// Delete removes a question and cascades to its answers, comments and votes.
// Allowed for the author or an admin.
func (s *QuestionService) Delete(ctx context.Context, userID, questionID uint) error {
	question, err := s.GetByID(ctx, questionID)
	if err != nil {
		return err
	}

	if question.AuthorID != userID {
		admin, err := s.isAdmin(ctx, userID)
		if err != nil {
			return err
		}
		if !admin {
			return models.NewForbiddenError("You can only delete your own questions")
		}
	}

	answerIDs, err := s.answerRepo.IDsByQuestion(ctx, questionID)
	if err != nil {
		return err
	}

	return s.voteRepo.Transaction(ctx, func(tx *gorm.DB) error {
		for _, answerID := range answerIDs {
			if err := s.commentRepo.DeleteByAnswer(ctx, tx, answerID); err != nil {
				return err
			}
			if err := s.voteRepo.DeleteByTarget(ctx, tx, models.TargetAnswer, answerID); err != nil {
				return err
			}
		}
		if err := s.answerRepo.DeleteByQuestion(ctx, tx, questionID); err != nil {
			return err
		}
		if err := s.commentRepo.DeleteByQuestion(ctx, tx, questionID); err != nil {
			return err
		}
		if err := s.voteRepo.DeleteByTarget(ctx, tx, models.TargetQuestion, questionID); err != nil {
			return err
		}
		return s.questionRepo.Delete(ctx, tx, questionID)
	})
}
