package storage

import (
	"context"
	"time"

	"github.com/alex-pricope/simple-polls/logging"
	"gorm.io/gorm"
)

type LoginAttemptStorage interface {
	Create(ctx context.Context, attempt *LoginAttempt) error
	CountFailedSince(ctx context.Context, username string, since time.Time) (int, error)
	DeleteFailed(ctx context.Context, username string) error
}

type GormLoginAttemptStorage struct {
	DB *gorm.DB
}

func (s *GormLoginAttemptStorage) Create(ctx context.Context, attempt *LoginAttempt) error {
	if err := s.DB.WithContext(ctx).Create(attempt).Error; err != nil {
		logging.Log.Errorf("LOGIN: failed to record attempt for %q: %v", attempt.Username, err)
		return err
	}
	return nil
}

func (s *GormLoginAttemptStorage) CountFailedSince(ctx context.Context, username string, since time.Time) (int, error) {
	var count int64
	err := s.DB.WithContext(ctx).Model(&LoginAttempt{}).
		Where("username = ? AND success = ? AND created_at >= ?", username, false, since).
		Count(&count).Error
	if err != nil {
		logging.Log.Errorf("LOGIN: failed to count attempts for %q: %v", username, err)
		return 0, err
	}
	return int(count), nil
}

func (s *GormLoginAttemptStorage) DeleteFailed(ctx context.Context, username string) error {
	res := s.DB.WithContext(ctx).Where("username = ? AND success = ?", username, false).Delete(&LoginAttempt{})
	if res.Error != nil {
		logging.Log.Errorf("LOGIN: failed to purge attempts for %q: %v", username, res.Error)
		return res.Error
	}
	if res.RowsAffected > 0 {
		logging.Log.Infof("LOGIN: purged %d failed attempts for %q", res.RowsAffected, username)
	}
	return nil
}
