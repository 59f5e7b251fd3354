package services

import (
	"context"
	"time"

	"github.com/alex-pricope/simple-polls/logging"
	"github.com/alex-pricope/simple-polls/storage"
)

// LoginThrottle blocks a username after too many failed logins inside a trailing window.
type LoginThrottle struct {
	attempts    storage.LoginAttemptStorage
	maxFailures int
	window      time.Duration
	now         func() time.Time
}

func NewLoginThrottle(attempts storage.LoginAttemptStorage, maxFailures int, window time.Duration) *LoginThrottle {
	return &LoginThrottle{
		attempts:    attempts,
		maxFailures: maxFailures,
		window:      window,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// RecordAttempt appends the attempt. A success wipes the failure history.
func (t *LoginThrottle) RecordAttempt(ctx context.Context, username string, success bool) error {
	err := t.attempts.Create(ctx, &storage.LoginAttempt{
		Username:  username,
		Success:   success,
		CreatedAt: t.now(),
	})
	if err != nil {
		return err
	}
	if success {
		return t.attempts.DeleteFailed(ctx, username)
	}
	return nil
}

func (t *LoginThrottle) IsThrottled(ctx context.Context, username string) (bool, error) {
	failed, err := t.attempts.CountFailedSince(ctx, username, t.now().Add(-t.window))
	if err != nil {
		return false, err
	}
	if failed >= t.maxFailures {
		logging.Log.Warnf("AUTH: %q throttled after %d failed attempts", username, failed)
		return true, nil
	}
	return false, nil
}
