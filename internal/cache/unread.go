package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

const (
	UnreadCountKeyPrefix = "notifications:unread:%d"
	UserKeyPrefix        = "user:%d"
	QuestionKeyPrefix    = "question:%d"
)

const (
	UnreadCountTTL = 5 * time.Minute
	UserTTL        = 5 * time.Minute
	QuestionTTL    = 10 * time.Minute
)

func UnreadCountKey(userID uint) string {
	return fmt.Sprintf(UnreadCountKeyPrefix, userID)
}

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func QuestionKey(questionID uint) string {
	return fmt.Sprintf(QuestionKeyPrefix, questionID)
}

// GetUnreadCount returns the cached unread notification count for the user.
// The second return value reports whether a cached value was present.
func GetUnreadCount(ctx context.Context, userID uint) (int64, bool) {
	if client == nil {
		return 0, false
	}
	val, err := client.Get(ctx, UnreadCountKey(userID)).Result()
	if err != nil {
		return 0, false
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// SetUnreadCount stores the unread notification count for the user.
func SetUnreadCount(ctx context.Context, userID uint, count int64) {
	if client == nil {
		return
	}
	client.Set(ctx, UnreadCountKey(userID), count, UnreadCountTTL)
}

// InvalidateUnreadCount drops the cached unread count after a notification
// is created or marked read.
func InvalidateUnreadCount(ctx context.Context, userID uint) {
	Invalidate(ctx, UnreadCountKey(userID))
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateQuestion(ctx context.Context, questionID uint) {
	Invalidate(ctx, QuestionKey(questionID))
}
