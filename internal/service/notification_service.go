// Package service holds the application's business logic, sitting between
// the HTTP handlers and the repositories.
package service

import (
	"context"
	"regexp"

	"github.com/parth10-05/verita/internal/middleware"
	"github.com/parth10-05/verita/internal/models"
	"github.com/parth10-05/verita/internal/observability"
	"github.com/parth10-05/verita/internal/repository"
)

var mentionRegex = regexp.MustCompile(`@(\w+)`)

// ExtractMentions returns the unique usernames mentioned in text with the
// @name syntax, in order of first appearance.
func ExtractMentions(text string) []string {
	matches := mentionRegex.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(matches))
	usernames := make([]string, 0, len(matches))
	for _, m := range matches {
		name := m[1]
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		usernames = append(usernames, name)
	}
	return usernames
}

type NotificationService struct {
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
}

func NewNotificationService(
	notificationRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
	}
}

// Notify creates a single notification. Failures are logged and swallowed so
// a notification problem never fails the operation that triggered it.
func (s *NotificationService) Notify(ctx context.Context, n *models.Notification) {
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		middleware.Logger.WarnContext(ctx, "failed to create notification",
			"type", n.Type,
			"recipient_id", n.RecipientID,
			"error", err,
		)
		return
	}
	observability.NotificationsCreated.WithLabelValues(string(n.Type)).Inc()
}

// NotifyMentions fans out mention notifications for every existing user
// @-mentioned in body. Self-mentions and unknown usernames are skipped.
func (s *NotificationService) NotifyMentions(ctx context.Context, senderID uint, body string, refKind models.ReferenceKind, refID uint) {
	usernames := ExtractMentions(body)
	if len(usernames) == 0 {
		return
	}

	users, err := s.userRepo.GetByUsernames(ctx, usernames)
	if err != nil {
		middleware.Logger.WarnContext(ctx, "failed to resolve mentioned users", "error", err)
		return
	}

	sender := senderID
	for _, u := range users {
		if u.ID == senderID {
			continue
		}
		s.Notify(ctx, &models.Notification{
			RecipientID:   u.ID,
			Type:          models.NotificationMention,
			ReferenceKind: refKind,
			ReferenceID:   refID,
			SenderID:      &sender,
		})
	}
}

// NotifyNewAnswer tells the question author their question was answered.
func (s *NotificationService) NotifyNewAnswer(ctx context.Context, questionAuthorID, answererID, answerID uint) {
	if questionAuthorID == answererID {
		return
	}
	sender := answererID
	s.Notify(ctx, &models.Notification{
		RecipientID:   questionAuthorID,
		Type:          models.NotificationNewAnswer,
		ReferenceKind: models.ReferenceAnswer,
		ReferenceID:   answerID,
		SenderID:      &sender,
	})
}

// NotifyNewComment tells the parent post's author about a new comment.
func (s *NotificationService) NotifyNewComment(ctx context.Context, parentAuthorID, commenterID, commentID uint) {
	if parentAuthorID == commenterID {
		return
	}
	sender := commenterID
	s.Notify(ctx, &models.Notification{
		RecipientID:   parentAuthorID,
		Type:          models.NotificationNewComment,
		ReferenceKind: models.ReferenceComment,
		ReferenceID:   commentID,
		SenderID:      &sender,
	})
}

func (s *NotificationService) List(ctx context.Context, userID uint, unreadOnly bool, limit, offset int) ([]*models.Notification, int64, error) {
	return s.notificationRepo.ListByRecipient(ctx, userID, unreadOnly, limit, offset)
}

func (s *NotificationService) CountUnread(ctx context.Context, userID uint) (int64, error) {
	return s.notificationRepo.CountUnread(ctx, userID)
}

// MarkRead marks a notification read. Only the recipient may do so.
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID uint) error {
	n, err := s.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		return models.NewNotFoundError("Notification not found")
	}
	if n.RecipientID != userID {
		return models.NewForbiddenError("You can only manage your own notifications")
	}
	return s.notificationRepo.MarkRead(ctx, notificationID)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint) error {
	return s.notificationRepo.MarkAllRead(ctx, userID)
}

// Delete removes a notification. Only the recipient may do so.
func (s *NotificationService) Delete(ctx context.Context, userID, notificationID uint) error {
	n, err := s.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		return models.NewNotFoundError("Notification not found")
	}
	if n.RecipientID != userID {
		return models.NewForbiddenError("You can only manage your own notifications")
	}
	return s.notificationRepo.Delete(ctx, notificationID)
}
