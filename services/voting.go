package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/alex-pricope/simple-polls/logging"
	"github.com/alex-pricope/simple-polls/storage"
)

type VoteResult struct {
	QuestionID uint
	ChoiceID   uint
	Votes      int
}

type VotingService struct {
	questions storage.QuestionStorage
	votes     storage.VoteStorage
}

func NewVotingService(questions storage.QuestionStorage, votes storage.VoteStorage) *VotingService {
	return &VotingService{questions: questions, votes: votes}
}

// CastVote records a single vote for the caller. A second vote on the same
// question fails with ErrAlreadyVoted and leaves every tally untouched.
func (s *VotingService) CastVote(ctx context.Context, id Identity, questionID, choiceID uint) (*VoteResult, error) {
	if err := requireIdentity(id); err != nil {
		return nil, err
	}
	if _, err := s.questions.Get(ctx, questionID); err != nil {
		return nil, translate(err)
	}
	if choiceID == 0 {
		return nil, invalid("choice", "you didn't select a choice")
	}

	choice, err := s.votes.Cast(ctx, &storage.Vote{
		UserID:     id.UserID,
		QuestionID: questionID,
		ChoiceID:   choiceID,
	})
	if err != nil {
		err = translate(err)
		if errors.Is(err, ErrAlreadyVoted) {
			logging.Log.Warnf("VOTE: %s tried to vote twice on question %d", id.Username, questionID)
			return nil, err
		}
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("cast vote: %w", err)
	}

	return &VoteResult{QuestionID: questionID, ChoiceID: choice.ID, Votes: choice.Votes}, nil
}

func (s *VotingService) HasVoted(ctx context.Context, id Identity, questionID uint) (bool, error) {
	if err := requireIdentity(id); err != nil {
		return false, err
	}
	return s.votes.Exists(ctx, id.UserID, questionID)
}
