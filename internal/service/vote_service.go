package service

import (
	"context"
	"errors"

	"github.com/parth10-05/verita/internal/models"
	"github.com/parth10-05/verita/internal/observability"
	"github.com/parth10-05/verita/internal/repository"

	"gorm.io/gorm"
)

// voteTarget abstracts the votable entities so the state machine is written
// once. Resolve returns the target's author (for the self-vote check) and
// Adjust applies counter deltas inside the vote transaction.
type voteTarget struct {
	Resolve func(ctx context.Context, id uint) (authorID uint, err error)
	Adjust  func(ctx context.Context, tx *gorm.DB, id uint, upDelta, downDelta int) error
}

type VoteService struct {
	voteRepo repository.VoteRepository
	targets  map[models.TargetKind]voteTarget
}

// VoteResult reports the state transition applied by CastVote.
type VoteResult struct {
	// Outcome is one of "created", "removed", "switched".
	Outcome string `json:"outcome"`
	// Value is the vote value now in effect, 0 when the vote was removed.
	Value int `json:"value"`
}

func NewVoteService(
	voteRepo repository.VoteRepository,
	questionRepo repository.QuestionRepository,
	answerRepo repository.AnswerRepository,
) *VoteService {
	return &VoteService{
		voteRepo: voteRepo,
		targets: map[models.TargetKind]voteTarget{
			models.TargetQuestion: {
				Resolve: func(ctx context.Context, id uint) (uint, error) {
					q, err := questionRepo.GetByID(ctx, id)
					if err != nil {
						return 0, err
					}
					return q.AuthorID, nil
				},
				Adjust: questionRepo.AdjustVoteCounters,
			},
			models.TargetAnswer: {
				Resolve: func(ctx context.Context, id uint) (uint, error) {
					a, err := answerRepo.GetByID(ctx, id)
					if err != nil {
						return 0, err
					}
					return a.UserID, nil
				},
				Adjust: answerRepo.AdjustVoteCounters,
			},
		},
	}
}

// counterDelta translates a vote value change into (upvotes, downvotes) deltas.
func counterDelta(value, sign int) (int, int) {
	if value == models.VoteUp {
		return sign, 0
	}
	return 0, sign
}

// CastVote applies one step of the per-(user, target) vote state machine:
//   - no existing vote: create it and increment the matching counter
//   - same direction repeated: remove the vote and decrement the counter
//   - opposite direction: flip the vote, decrementing the old counter and
//     incrementing the new one in the same transaction
func (s *VoteService) CastVote(ctx context.Context, userID uint, kind models.TargetKind, targetID uint, value int) (*VoteResult, error) {
	if !kind.Valid() {
		return nil, models.NewValidationError("Invalid vote target")
	}
	if value != models.VoteUp && value != models.VoteDown {
		return nil, models.NewValidationError("Vote value must be 1 or -1")
	}

	target := s.targets[kind]
	authorID, err := target.Resolve(ctx, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Vote target not found")
		}
		return nil, err
	}
	if authorID == userID {
		return nil, models.NewForbiddenError("You cannot vote on your own post")
	}

	existing, err := s.voteRepo.Get(ctx, userID, kind, targetID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var result VoteResult
	txErr := s.voteRepo.Transaction(ctx, func(tx *gorm.DB) error {
		switch {
		case existing == nil:
			vote := &models.Vote{
				UserID:     userID,
				TargetKind: kind,
				TargetID:   targetID,
				Value:      value,
			}
			if err := s.voteRepo.Create(ctx, tx, vote); err != nil {
				return err
			}
			up, down := counterDelta(value, 1)
			if err := target.Adjust(ctx, tx, targetID, up, down); err != nil {
				return err
			}
			result = VoteResult{Outcome: "created", Value: value}

		case existing.Value == value:
			rows, err := s.voteRepo.Delete(ctx, tx, existing.ID)
			if err != nil {
				return err
			}
			// Zero rows means a concurrent request removed the vote first;
			// adjusting again would drift the counter.
			if rows > 0 {
				up, down := counterDelta(value, -1)
				if err := target.Adjust(ctx, tx, targetID, up, down); err != nil {
					return err
				}
			}
			result = VoteResult{Outcome: "removed", Value: 0}

		default:
			rows, err := s.voteRepo.UpdateValue(ctx, tx, existing.ID, existing.Value, value)
			if err != nil {
				return err
			}
			if rows > 0 {
				oldUp, oldDown := counterDelta(existing.Value, -1)
				newUp, newDown := counterDelta(value, 1)
				if err := target.Adjust(ctx, tx, targetID, oldUp+newUp, oldDown+newDown); err != nil {
					return err
				}
			}
			result = VoteResult{Outcome: "switched", Value: value}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	observability.VotesCast.WithLabelValues(string(kind), result.Outcome).Inc()
	return &result, nil
}

// GetVote returns the caller's current vote value for a target, 0 when none.
func (s *VoteService) GetVote(ctx context.Context, userID uint, kind models.TargetKind, targetID uint) (int, error) {
	if !kind.Valid() {
		return 0, models.NewValidationError("Invalid vote target")
	}
	vote, err := s.voteRepo.Get(ctx, userID, kind, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return vote.Value, nil
}
