package service

import (
	"context"
	"errors"
	"strings"

	"github.com/parth10-05/verita/internal/models"
	"github.com/parth10-05/verita/internal/repository"

	"gorm.io/gorm"
)

const maxBioLen = 500

type UserService struct {
	userRepo     repository.UserRepository
	questionRepo repository.QuestionRepository
	answerRepo   repository.AnswerRepository
}

// UserStats summarizes a user's contribution counts.
type UserStats struct {
	Questions       int64 `json:"questions"`
	Answers         int64 `json:"answers"`
	AcceptedAnswers int64 `json:"acceptedAnswers"`
}

type UpdateProfileInput struct {
	UserID       uint
	Bio          *string
	ProfilePhoto *string
}

func NewUserService(
	userRepo repository.UserRepository,
	questionRepo repository.QuestionRepository,
	answerRepo repository.AnswerRepository,
) *UserService {
	return &UserService{
		userRepo:     userRepo,
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
	}
}

func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User not found")
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User not found")
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context, limit, offset int) ([]*models.User, int64, error) {
	return s.userRepo.List(ctx, limit, offset)
}

func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if in.Bio != nil {
		bio := strings.TrimSpace(*in.Bio)
		if len(bio) > maxBioLen {
			return nil, models.NewValidationError("Bio too long (max 500 characters)")
		}
		fields["bio"] = bio
	}
	var photo string
	if in.ProfilePhoto != nil {
		photo = strings.TrimSpace(*in.ProfilePhoto)
		fields["profile_photo"] = photo
	}
	if len(fields) == 0 {
		return user, nil
	}

	if err := s.userRepo.UpdateFields(ctx, in.UserID, fields); err != nil {
		return nil, err
	}
	if photo != "" && photo != user.ProfilePhoto {
		err := s.userRepo.RecordImage(ctx, &models.Image{
			UploaderID: in.UserID,
			URL:        photo,
		})
		if err != nil {
			return nil, err
		}
	}
	return s.GetByID(ctx, in.UserID)
}

// Stats returns question, answer and accepted-answer counts for a user.
func (s *UserService) Stats(ctx context.Context, userID uint) (*UserStats, error) {
	if _, err := s.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	_, questionCount, err := s.questionRepo.ListByAuthor(ctx, userID, 1, 0)
	if err != nil {
		return nil, err
	}

	answerCount, accepted, err := s.answerRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &UserStats{
		Questions:       questionCount,
		Answers:         answerCount,
		AcceptedAnswers: accepted,
	}, nil
}

// IsAdmin reports whether the user holds the admin role.
func (s *UserService) IsAdmin(ctx context.Context, userID uint) (bool, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return user.Role == models.RoleAdmin, nil
}
