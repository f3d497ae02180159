package seed

import (
	"fmt"
	"log"

	"github.com/parth10-05/verita/internal/models"

	"gorm.io/gorm"
)

// Options controls how much data Run generates.
type Options struct {
	Users     int
	Questions int
}

// DefaultOptions are sensible volumes for a local development database.
var DefaultOptions = Options{
	Users:     25,
	Questions: 60,
}

// Seeder populates a database with generated development data.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db)}
}

// ClearAll empties every seedable table. Destructive; development only.
// Tables are listed child first so the plain-DELETE path never trips a
// foreign key.
func (s *Seeder) ClearAll() error {
	tables := []string{
		"admin_logs", "notifications", "votes", "comments",
		"question_tags", "answers", "questions", "tags", "users",
	}
	dialect := s.db.Dialector.Name()
	for _, table := range tables {
		if err := s.db.Exec(clearStatement(dialect, table)).Error; err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	return nil
}

// clearStatement picks the emptying statement for the dialect. Postgres gets
// TRUNCATE with identity reset; SQLite has neither, so it falls back to a
// plain DELETE.
func clearStatement(dialect, table string) string {
	if dialect == "postgres" {
		return fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)
	}
	return fmt.Sprintf("DELETE FROM %s", table)
}

// Run generates users, questions, answers, comments and votes. Built-in tags
// are upserted first so questions have something to be tagged with.
func (s *Seeder) Run(opts Options) error {
	tags, err := Tags(s.db)
	if err != nil {
		return fmt.Errorf("seeding tags: %w", err)
	}
	log.Printf("🏷️  upserted %d built-in tags", len(tags))

	users := make([]*models.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return fmt.Errorf("seeding user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("👤 created %d users (password %q)", len(users), SeedPassword)

	questions := make([]*models.Question, 0, opts.Questions)
	answers := make([]*models.Answer, 0, opts.Questions*2)
	for i := 0; i < opts.Questions; i++ {
		author := users[s.factory.rng.Intn(len(users))]
		question, err := s.factory.CreateQuestion(author, tags)
		if err != nil {
			return fmt.Errorf("seeding question: %w", err)
		}
		questions = append(questions, question)

		for j := 0; j < s.factory.rng.Intn(4); j++ {
			answerer := users[s.factory.rng.Intn(len(users))]
			if answerer.ID == author.ID {
				continue
			}
			answer, err := s.factory.CreateAnswer(answerer, question)
			if err != nil {
				return fmt.Errorf("seeding answer: %w", err)
			}
			answers = append(answers, answer)
		}
	}
	log.Printf("❓ created %d questions with %d answers", len(questions), len(answers))

	comments := 0
	for _, question := range questions {
		if s.factory.rng.Intn(3) != 0 {
			continue
		}
		commenter := users[s.factory.rng.Intn(len(users))]
		id := question.ID
		if _, err := s.factory.CreateComment(commenter, &id, nil); err != nil {
			return fmt.Errorf("seeding comment: %w", err)
		}
		comments++
	}
	for _, answer := range answers {
		if s.factory.rng.Intn(4) != 0 {
			continue
		}
		commenter := users[s.factory.rng.Intn(len(users))]
		id := answer.ID
		if _, err := s.factory.CreateComment(commenter, nil, &id); err != nil {
			return fmt.Errorf("seeding comment: %w", err)
		}
		comments++
	}
	log.Printf("💬 created %d comments", comments)

	votes, err := s.seedVotes(users, questions, answers)
	if err != nil {
		return err
	}
	log.Printf("🗳️  created %d votes", votes)

	return nil
}

// seedVotes casts random votes while honoring the runtime rules: no self
// votes and at most one vote per (user, target) pair.
func (s *Seeder) seedVotes(users []*models.User, questions []*models.Question, answers []*models.Answer) (int, error) {
	type target struct {
		kind     models.TargetKind
		id       uint
		authorID uint
	}
	targets := make([]target, 0, len(questions)+len(answers))
	for _, q := range questions {
		targets = append(targets, target{models.TargetQuestion, q.ID, q.AuthorID})
	}
	for _, a := range answers {
		targets = append(targets, target{models.TargetAnswer, a.ID, a.UserID})
	}

	seen := make(map[string]bool)
	count := 0
	for _, t := range targets {
		for i := 0; i < s.factory.rng.Intn(5); i++ {
			voter := users[s.factory.rng.Intn(len(users))]
			if voter.ID == t.authorID {
				continue
			}
			key := fmt.Sprintf("%d:%s:%d", voter.ID, t.kind, t.id)
			if seen[key] {
				continue
			}
			seen[key] = true

			value := models.VoteUp
			// upvotes dominate, roughly 4:1
			if s.factory.rng.Intn(5) == 0 {
				value = models.VoteDown
			}
			if err := s.factory.CreateVote(voter, t.kind, t.id, value); err != nil {
				return count, fmt.Errorf("seeding vote: %w", err)
			}
			count++
		}
	}
	return count, nil
}
