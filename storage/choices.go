package storage

import (
	"context"
	"errors"

	"github.com/alex-pricope/simple-polls/logging"
	"gorm.io/gorm"
)

type ChoiceStorage interface {
	Get(ctx context.Context, id uint) (*Choice, error)
	Create(ctx context.Context, choice *Choice, maxChoices int) error
	UpdateText(ctx context.Context, id uint, text string) error
	Delete(ctx context.Context, id uint) error
}

type GormChoiceStorage struct {
	DB *gorm.DB
}

func (s *GormChoiceStorage) Get(ctx context.Context, id uint) (*Choice, error) {
	var choice Choice
	if err := s.DB.WithContext(ctx).First(&choice, id).Error; err != nil {
		err = notFound(err)
		if !errors.Is(err, ErrNotFound) {
			logging.Log.Errorf("CHOICE: get %d failed: %v", id, err)
		}
		return nil, err
	}
	return &choice, nil
}

// Create adds a choice unless the parent question already holds maxChoices of them.
// The count and the insert share a transaction.
func (s *GormChoiceStorage) Create(ctx context.Context, choice *Choice, maxChoices int) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Choice{}).Where("question_id = ?", choice.QuestionID).Count(&count).Error; err != nil {
			return err
		}
		if maxChoices > 0 && int(count) >= maxChoices {
			return ErrChoiceLimit
		}
		choice.Votes = 0
		return tx.Create(choice).Error
	})
	if err != nil {
		if !errors.Is(err, ErrChoiceLimit) {
			logging.Log.Errorf("CHOICE: create for question %d failed: %v", choice.QuestionID, err)
		}
		return err
	}
	logging.Log.Infof("CHOICE: created %d on question %d", choice.ID, choice.QuestionID)
	return nil
}

// UpdateText changes only the label; the tally is untouched.
func (s *GormChoiceStorage) UpdateText(ctx context.Context, id uint, text string) error {
	res := s.DB.WithContext(ctx).Model(&Choice{}).Where("id = ?", id).Update("choice_text", text)
	if res.Error != nil {
		logging.Log.Errorf("CHOICE: update %d failed: %v", id, res.Error)
		return res.Error
	}
	return nil
}

// Delete removes the choice and the votes that selected it.
func (s *GormChoiceStorage) Delete(ctx context.Context, id uint) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("choice_id = ?", id).Delete(&Vote{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&Choice{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			logging.Log.Errorf("CHOICE: delete %d failed: %v", id, err)
		}
		return err
	}
	logging.Log.Infof("CHOICE: deleted %d", id)
	return nil
}
