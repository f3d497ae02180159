package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/parth10-05/verita/internal/models"
)

// getObject loads and unmarshals a cached JSON value into dest. Returns false
// on miss, unreachable Redis, or a payload that no longer unmarshals.
func getObject(ctx context.Context, key string, dest interface{}) bool {
	if client == nil {
		return false
	}
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, dest) == nil
}

func setObject(ctx context.Context, key string, v interface{}, ttl time.Duration) {
	if client == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	client.Set(ctx, key, data, ttl)
}

// GetUser returns the cached user for the ID, if present. Fields excluded
// from JSON (password hash, reset OTP) do not survive the round trip, so
// cached reads must never feed credential checks.
func GetUser(ctx context.Context, userID uint) (*models.User, bool) {
	var user models.User
	if !getObject(ctx, UserKey(userID), &user) {
		return nil, false
	}
	return &user, true
}

// SetUser stores the user under its ID key.
func SetUser(ctx context.Context, user *models.User) {
	setObject(ctx, UserKey(user.ID), user, UserTTL)
}

// GetQuestion returns the cached question for the ID, if present.
func GetQuestion(ctx context.Context, questionID uint) (*models.Question, bool) {
	var question models.Question
	if !getObject(ctx, QuestionKey(questionID), &question) {
		return nil, false
	}
	return &question, true
}

// SetQuestion stores the question, with its preloaded author and tags, under
// its ID key.
func SetQuestion(ctx context.Context, question *models.Question) {
	setObject(ctx, QuestionKey(question.ID), question, QuestionTTL)
}
