package storage

import (
	"context"
	"errors"

	"github.com/alex-pricope/simple-polls/logging"
	"gorm.io/gorm"
)

type VoteStorage interface {
	Cast(ctx context.Context, vote *Vote) (*Choice, error)
	Exists(ctx context.Context, userID, questionID uint) (bool, error)
}

type GormVoteStorage struct {
	DB *gorm.DB
}

// Cast records the vote and bumps the choice tally in one transaction.
// It returns ErrNotFound when the choice is not part of the question and
// ErrDuplicateVote when the user already voted on it, including when a
// concurrent request wins the race to the unique index.
func (s *GormVoteStorage) Cast(ctx context.Context, vote *Vote) (*Choice, error) {
	var choice Choice
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("id = ? AND question_id = ?", vote.ChoiceID, vote.QuestionID).First(&choice).Error
		if err != nil {
			return notFound(err)
		}

		var existing int64
		err = tx.Model(&Vote{}).
			Where("user_id = ? AND question_id = ?", vote.UserID, vote.QuestionID).
			Count(&existing).Error
		if err != nil {
			return err
		}
		if existing > 0 {
			return ErrDuplicateVote
		}

		if err := tx.Create(vote).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicateVote
			}
			return err
		}

		err = tx.Model(&Choice{}).
			Where("id = ?", choice.ID).
			UpdateColumn("votes", gorm.Expr("votes + ?", 1)).Error
		if err != nil {
			return err
		}
		return tx.First(&choice, choice.ID).Error
	})
	if err != nil {
		if !errors.Is(err, ErrNotFound) && !errors.Is(err, ErrDuplicateVote) {
			logging.Log.Errorf("VOTE: failed to cast vote: %v", err)
		}
		return nil, err
	}
	logging.Log.Infof("VOTE: user %d voted for choice %d on question %d", vote.UserID, vote.ChoiceID, vote.QuestionID)
	return &choice, nil
}

func (s *GormVoteStorage) Exists(ctx context.Context, userID, questionID uint) (bool, error) {
	var count int64
	err := s.DB.WithContext(ctx).Model(&Vote{}).
		Where("user_id = ? AND question_id = ?", userID, questionID).
		Count(&count).Error
	if err != nil {
		logging.Log.Errorf("VOTE: exists check failed: %v", err)
		return false, err
	}
	return count > 0, nil
}
