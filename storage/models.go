package storage

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:150;uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Question is a poll. UserID is nil for questions created before ownership was tracked.
type Question struct {
	ID      uint      `gorm:"primaryKey" json:"id"`
	Text    string    `gorm:"column:question_text;size:200;not null" json:"question_text"`
	PubDate time.Time `gorm:"column:pub_date;not null;index" json:"pub_date"`
	UserID  *uint     `gorm:"index" json:"user_id"`
	User    *User     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Choices []*Choice `gorm:"constraint:OnDelete:CASCADE" json:"choices,omitempty"`

	// SearchText is Text lowercased in Go; SQLite's LOWER only folds ASCII.
	SearchText string `gorm:"column:search_text;size:400;not null;default:''" json:"-"`
}

type Choice struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	QuestionID uint   `gorm:"index;not null" json:"question_id"`
	Text       string `gorm:"column:choice_text;size:200;not null" json:"choice_text"`
	Votes      int    `gorm:"not null;default:0" json:"votes"`
	UserID     uint   `gorm:"not null" json:"user_id"`
}

// Vote records that a user picked a choice. The (user_id, question_id) index
// is what guarantees one vote per user per question.
type Vote struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"uniqueIndex:idx_vote_user_question;not null" json:"user_id"`
	QuestionID uint      `gorm:"uniqueIndex:idx_vote_user_question;index;not null" json:"question_id"`
	ChoiceID   uint      `gorm:"index;not null" json:"choice_id"`
	CreatedAt  time.Time `json:"created_at"`
}

type LoginAttempt struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:150;not null;index:idx_login_attempt_user_time" json:"username"`
	Success   bool      `gorm:"not null" json:"success"`
	CreatedAt time.Time `gorm:"index:idx_login_attempt_user_time" json:"created_at"`
}

// TotalVotes sums the tallies of the loaded choices.
func (q *Question) TotalVotes() int {
	total := 0
	for _, c := range q.Choices {
		total += c.Votes
	}
	return total
}

// OwnedBy reports whether userID created the question. Ownerless questions are owned by nobody.
func (q *Question) OwnedBy(userID uint) bool {
	return q.UserID != nil && userID != 0 && *q.UserID == userID
}
