// Package storagetest opens throwaway databases for tests.
package storagetest

import (
	"context"
	"testing"
	"time"

	"github.com/alex-pricope/simple-polls/storage"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewDatabase returns a migrated in-memory SQLite database private to the test.
func NewDatabase(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := storage.OpenDatabase("sqlite", ":memory:")
	require.NoError(t, err, "failed to open sqlite")
	require.NoError(t, storage.Migrate(db), "failed to migrate")

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// CreateUser inserts a user with a placeholder password hash.
func CreateUser(t *testing.T, db *gorm.DB, username string) *storage.User {
	t.Helper()

	user := &storage.User{Username: username, PasswordHash: "x"}
	require.NoError(t, db.Create(user).Error, "failed to create user %s", username)
	return user
}

// CreateQuestion inserts a question owned by owner (nil for a legacy row) with the given choices.
func CreateQuestion(t *testing.T, db *gorm.DB, owner *storage.User, text string, choices ...string) *storage.Question {
	t.Helper()

	q := &storage.Question{Text: text, PubDate: time.Now().UTC()}
	var creator uint
	if owner != nil {
		q.UserID = &owner.ID
		creator = owner.ID
	}
	for _, c := range choices {
		q.Choices = append(q.Choices, &storage.Choice{Text: c, UserID: creator})
	}
	s := &storage.GormQuestionStorage{DB: db}
	require.NoError(t, s.Create(context.Background(), q), "failed to create question")
	return q
}
