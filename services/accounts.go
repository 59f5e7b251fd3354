package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/alex-pricope/simple-polls/auth"
	"github.com/alex-pricope/simple-polls/logging"
	"github.com/alex-pricope/simple-polls/storage"
)

const minPasswordLength = 8

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

// Session is an issued login token.
type Session struct {
	Token     string
	Identity  Identity
	ExpiresAt time.Time
}

type AccountService struct {
	users     storage.UserStorage
	sessions  storage.SessionStorage
	throttle  *LoginThrottle
	tokens    *auth.TokenIssuer
	dummyHash string
	now       func() time.Time
}

func NewAccountService(users storage.UserStorage, sessions storage.SessionStorage, throttle *LoginThrottle, tokens *auth.TokenIssuer) (*AccountService, error) {
	// Unknown usernames are checked against this hash so they cost the same as real ones.
	dummy, err := auth.HashPassword("not-a-real-password")
	if err != nil {
		return nil, fmt.Errorf("prepare dummy hash: %w", err)
	}
	return &AccountService{
		users:     users,
		sessions:  sessions,
		throttle:  throttle,
		tokens:    tokens,
		dummyHash: dummy,
		now:       time.Now,
	}, nil
}

func (s *AccountService) Register(ctx context.Context, username, password, passwordConfirm string) (*Session, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if utf8.RuneCountInString(password) < minPasswordLength {
		return nil, invalid("password1", "this password is too short, it must contain at least %d characters", minPasswordLength)
	}
	// bcrypt rejects anything longer.
	if len(password) > 72 {
		return nil, invalid("password1", "this password is too long, it must be at most 72 bytes")
	}
	if password != passwordConfirm {
		return nil, invalid("password2", "the two password fields didn't match")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &storage.User{Username: username, PasswordHash: hash}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, storage.ErrUsernameTaken) {
			return nil, invalid("username", "a user with that username already exists")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	logging.Log.Infof("AUTH: registered %s", username)
	return s.issue(user)
}

// Login checks the throttle before touching credentials, so a blocked
// username gets the same answer whether or not it exists.
func (s *AccountService) Login(ctx context.Context, username, password string) (*Session, error) {
	if username == "" || password == "" {
		return nil, invalid("", "username and password are required")
	}

	throttled, err := s.throttle.IsThrottled(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("check throttle: %w", err)
	}
	if throttled {
		return nil, ErrThrottled
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	hash := s.dummyHash
	if user != nil {
		hash = user.PasswordHash
	}
	if err := auth.CheckPassword(hash, password); err != nil || user == nil {
		if err := s.throttle.RecordAttempt(ctx, username, false); err != nil {
			return nil, fmt.Errorf("record attempt: %w", err)
		}
		logging.Log.Warnf("AUTH: failed login for %q", username)
		return nil, ErrInvalidCredentials
	}

	if err := s.throttle.RecordAttempt(ctx, username, true); err != nil {
		return nil, fmt.Errorf("record attempt: %w", err)
	}
	logging.Log.Infof("AUTH: %s logged in", username)
	return s.issue(user)
}

// Logout revokes the caller's token until it would have expired.
func (s *AccountService) Logout(ctx context.Context, id Identity) error {
	if err := requireIdentity(id); err != nil {
		return err
	}
	if err := s.sessions.Revoke(ctx, id.TokenID, id.ExpiresAt.Sub(s.now())); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	logging.Log.Infof("AUTH: %s logged out", id.Username)
	return nil
}

// Authenticate resolves a session token into an identity.
func (s *AccountService) Authenticate(ctx context.Context, token string) (Identity, error) {
	if token == "" {
		return Identity{}, ErrUnauthenticated
	}
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return Identity{}, ErrUnauthenticated
	}
	revoked, err := s.sessions.IsRevoked(ctx, claims.ID)
	if err != nil {
		return Identity{}, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return Identity{}, ErrUnauthenticated
	}
	userID, err := claims.UserID()
	if err != nil {
		return Identity{}, ErrUnauthenticated
	}
	return Identity{
		UserID:    userID,
		Username:  claims.Username,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func (s *AccountService) issue(user *storage.User) (*Session, error) {
	token, claims, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, err
	}
	return &Session{
		Token: token,
		Identity: Identity{
			UserID:    user.ID,
			Username:  user.Username,
			TokenID:   claims.ID,
			ExpiresAt: claims.ExpiresAt.Time,
		},
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func validateUsername(username string) error {
	if username == "" {
		return invalid("username", "this field is required")
	}
	if utf8.RuneCountInString(username) > 150 {
		return invalid("username", "ensure this value has at most 150 characters")
	}
	if !usernamePattern.MatchString(username) {
		return invalid("username", "enter a valid username; only letters, numbers and @/./+/-/_ are allowed")
	}
	return nil
}
