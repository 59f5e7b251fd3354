package storage

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/alex-pricope/simple-polls/logging"
	"gorm.io/gorm"
)

type QuestionStorage interface {
	Get(ctx context.Context, id uint) (*Question, error)
	Latest(ctx context.Context, now time.Time, limit int) ([]*Question, error)
	Search(ctx context.Context, keyword string) ([]*Question, error)
	Create(ctx context.Context, question *Question) error
	ReplaceChoices(ctx context.Context, id uint, text string, choices []*Choice) (*Question, error)
	Delete(ctx context.Context, id uint) error
}

type GormQuestionStorage struct {
	DB *gorm.DB
}

// Get loads a question with its owner and choices ordered by id.
func (s *GormQuestionStorage) Get(ctx context.Context, id uint) (*Question, error) {
	var question Question
	err := s.DB.WithContext(ctx).
		Preload("User").
		Preload("Choices", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		First(&question, id).Error
	if err != nil {
		err = notFound(err)
		if !errors.Is(err, ErrNotFound) {
			logging.Log.Errorf("QUESTION: get %d failed: %v", id, err)
		}
		return nil, err
	}
	return &question, nil
}

func (s *GormQuestionStorage) Latest(ctx context.Context, now time.Time, limit int) ([]*Question, error) {
	var questions []*Question
	err := s.DB.WithContext(ctx).
		Preload("User").
		Where("pub_date <= ?", now).
		Order("pub_date DESC").Order("id DESC").
		Limit(limit).
		Find(&questions).Error
	if err != nil {
		logging.Log.Errorf("QUESTION: latest query failed: %v", err)
		return nil, err
	}
	return questions, nil
}

// Search matches keyword as a case-insensitive substring of the question text.
// Both sides are lowercased in Go so non-ASCII letters match too. The keyword
// is always passed as a bound parameter; LIKE wildcards in it are escaped.
func (s *GormQuestionStorage) Search(ctx context.Context, keyword string) ([]*Question, error) {
	var questions []*Question
	err := s.DB.WithContext(ctx).
		Preload("User").
		Where("search_text LIKE ? ESCAPE '!'", "%"+escapeLike(foldText(keyword))+"%").
		Order("pub_date DESC").Order("id DESC").
		Find(&questions).Error
	if err != nil {
		logging.Log.Errorf("QUESTION: search failed: %v", err)
		return nil, err
	}
	return questions, nil
}

// Create inserts the question and any attached choices in one transaction.
func (s *GormQuestionStorage) Create(ctx context.Context, question *Question) error {
	question.SearchText = foldText(question.Text)
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit("User").Create(question).Error
	})
	if err != nil {
		logging.Log.Errorf("QUESTION: create failed: %v", err)
		return err
	}
	logging.Log.Infof("QUESTION: created %d with %d choices", question.ID, len(question.Choices))
	return nil
}

// ReplaceChoices updates the question text and swaps the whole choice set.
// Old choices go away together with their tallies and the votes cast on them.
func (s *GormQuestionStorage) ReplaceChoices(ctx context.Context, id uint, text string, choices []*Choice) (*Question, error) {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&Question{}).Where("id = ?", id).Updates(map[string]interface{}{
			"question_text": text,
			"search_text":   foldText(text),
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&Question{}).Where("id = ?", id).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return ErrNotFound
			}
		}
		if err := tx.Where("question_id = ?", id).Delete(&Vote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", id).Delete(&Choice{}).Error; err != nil {
			return err
		}
		for _, c := range choices {
			c.ID = 0
			c.QuestionID = id
			c.Votes = 0
		}
		if len(choices) > 0 {
			return tx.Create(&choices).Error
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			logging.Log.Errorf("QUESTION: replace choices for %d failed: %v", id, err)
		}
		return nil, err
	}
	logging.Log.Infof("QUESTION: replaced choices for %d (%d new)", id, len(choices))
	return s.Get(ctx, id)
}

// Delete removes the question, its choices and every vote cast on it.
func (s *GormQuestionStorage) Delete(ctx context.Context, id uint) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", id).Delete(&Vote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", id).Delete(&Choice{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&Question{}, id)
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
			logging.Log.Errorf("QUESTION: delete %d failed: %v", id, err)
		}
		return err
	}
	logging.Log.Infof("QUESTION: deleted %d", id)
	return nil
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func foldText(s string) string {
	return strings.ToLower(s)
}
