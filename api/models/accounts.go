package models

import (
	"github.com/alex-pricope/simple-polls/services"
	"time"
)

type RegisterRequest struct {
	Username  string `json:"username" form:"username"`
	Password1 string `json:"password1" form:"password1"`
	Password2 string `json:"password2" form:"password2"`
}

type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
	Next     string `json:"next" form:"next"`
}

type SessionResponse struct {
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Next      string    `json:"next,omitempty"`
}

func TransformSession(s *services.Session, next string) SessionResponse {
	return SessionResponse{
		UserID:    s.Identity.UserID,
		Username:  s.Identity.Username,
		Token:     s.Token,
		ExpiresAt: s.ExpiresAt,
		Next:      next,
	}
}
