package storage

import (
	"context"
	"errors"

	"github.com/alex-pricope/simple-polls/logging"
	"gorm.io/gorm"
)

type UserStorage interface {
	Get(ctx context.Context, id uint) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	Create(ctx context.Context, user *User) error
}

type GormUserStorage struct {
	DB *gorm.DB
}

func (s *GormUserStorage) Get(ctx context.Context, id uint) (*User, error) {
	var user User
	if err := s.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (s *GormUserStorage) GetByUsername(ctx context.Context, username string) (*User, error) {
	var user User
	if err := s.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		err = notFound(err)
		if !errors.Is(err, ErrNotFound) {
			logging.Log.Errorf("USER: lookup of %q failed: %v", username, err)
		}
		return nil, err
	}
	return &user, nil
}

func (s *GormUserStorage) Create(ctx context.Context, user *User) error {
	if err := s.DB.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			logging.Log.Warnf("USER: username %q already exists", user.Username)
			return ErrUsernameTaken
		}
		logging.Log.Errorf("USER: failed to create user: %v", err)
		return err
	}
	logging.Log.Infof("USER: created %d (%s)", user.ID, user.Username)
	return nil
}
