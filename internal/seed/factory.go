package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/parth10-05/verita/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedPassword is the password every generated user gets, so seeded accounts
// can be logged into during development.
const SeedPassword = "Password123!dev"

// Factory builds domain entities and persists them. Intended for development
// and testing only.
type Factory struct {
	db  *gorm.DB
	rng *rand.Rand
	// one bcrypt hash shared by all seed users; hashing per user is slow
	passwordHash string
}

// NewFactory creates a Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	hash, _ := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.MinCost)
	return &Factory{
		db:           db,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
		passwordHash: string(hash),
	}
}

// pastTime returns a time up to maxDays in the past, for realistic spread.
func (f *Factory) pastTime(maxDays int) time.Time {
	return time.Now().
		Add(-time.Duration(f.rng.Intn(maxDays*24)) * time.Hour).
		Add(-time.Duration(f.rng.Intn(60)) * time.Minute)
}

// CreateUser persists a generated user. Overrides run before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username:     fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(10, 999)),
		Email:        gofakeit.Email(),
		PasswordHash: f.passwordHash,
		Role:         models.RoleUser,
		Bio:          gofakeit.Sentence(10),
		ProfilePhoto: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}
	user.CreatedAt = f.pastTime(180)

	for _, override := range overrides {
		override(user)
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// questionTitles are templates a generated noun/verb pair is slotted into so
// titles read like real questions rather than lorem ipsum.
var questionTitles = []string{
	"How do I %s a %s?",
	"Why does my %s fail when I %s it?",
	"What is the idiomatic way to %s a %s?",
	"Best practice for %s in a %s?",
	"%s keeps breaking my %s, what am I missing?",
}

// CreateQuestion persists a generated question carrying 1-3 of the given tags.
func (f *Factory) CreateQuestion(author *models.User, tags []models.Tag, overrides ...func(*models.Question)) (*models.Question, error) {
	template := questionTitles[f.rng.Intn(len(questionTitles))]
	question := &models.Question{
		AuthorID: author.ID,
		Title:    fmt.Sprintf(template, gofakeit.VerbAction(), gofakeit.NounConcrete()),
		Body:     gofakeit.Paragraph(2, 4, 8, "\n\n"),
		Tags:     pickTags(f.rng, tags, 1+f.rng.Intn(3)),
	}
	question.CreatedAt = f.pastTime(90)

	for _, override := range overrides {
		override(question)
	}
	if err := f.db.Create(question).Error; err != nil {
		return nil, err
	}
	return question, nil
}

// CreateAnswer persists a generated answer.
func (f *Factory) CreateAnswer(author *models.User, question *models.Question, overrides ...func(*models.Answer)) (*models.Answer, error) {
	answer := &models.Answer{
		QuestionID: question.ID,
		UserID:     author.ID,
		Content:    gofakeit.Paragraph(1, 3, 10, "\n\n"),
	}
	answer.CreatedAt = question.CreatedAt.Add(time.Duration(1+f.rng.Intn(72)) * time.Hour)

	for _, override := range overrides {
		override(answer)
	}
	if err := f.db.Create(answer).Error; err != nil {
		return nil, err
	}
	return answer, nil
}

// CreateComment attaches a generated comment to a question or an answer.
// Exactly one of questionID/answerID must be non-nil.
func (f *Factory) CreateComment(author *models.User, questionID, answerID *uint) (*models.Comment, error) {
	comment := &models.Comment{
		AuthorID:   author.ID,
		Body:       gofakeit.Sentence(12),
		QuestionID: questionID,
		AnswerID:   answerID,
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateVote records a vote and bumps the denormalized counter on the target,
// mirroring what the vote service does at runtime.
func (f *Factory) CreateVote(voter *models.User, kind models.TargetKind, targetID uint, value int) error {
	vote := &models.Vote{
		UserID:     voter.ID,
		TargetKind: kind,
		TargetID:   targetID,
		Value:      value,
	}
	return f.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(vote).Error; err != nil {
			return err
		}
		column := "upvotes"
		if value == models.VoteDown {
			column = "downvotes"
		}
		table := "questions"
		if kind == models.TargetAnswer {
			table = "answers"
		}
		return tx.Table(table).
			Where("id = ?", targetID).
			UpdateColumn(column, gorm.Expr(column+" + 1")).Error
	})
}

func pickTags(rng *rand.Rand, tags []models.Tag, n int) []models.Tag {
	if len(tags) == 0 {
		return nil
	}
	if n > len(tags) {
		n = len(tags)
	}
	picked := make([]models.Tag, 0, n)
	for _, i := range rng.Perm(len(tags))[:n] {
		picked = append(picked, tags[i])
	}
	return picked
}
