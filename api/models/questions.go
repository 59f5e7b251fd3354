package models

import (
	"github.com/alex-pricope/simple-polls/services"
	"github.com/alex-pricope/simple-polls/storage"
	"github.com/dustin/go-humanize"
	"time"
)

// RecentWindow is how long a question counts as freshly published.
const RecentWindow = 24 * time.Hour

type QuestionRequest struct {
	QuestionText string   `json:"question_text" form:"question_text"`
	Choices      []string `json:"choices" form:"choice"`
}

type QuestionResponse struct {
	ID           uint             `json:"id"`
	QuestionText string           `json:"question_text"`
	PubDate      time.Time        `json:"pub_date"`
	PublishedAgo string           `json:"published_ago"`
	Recent       bool             `json:"recent"`
	Owner        string           `json:"owner,omitempty"`
	Choices      []ChoiceResponse `json:"choices,omitempty"`
	TotalVotes   int              `json:"total_votes"`
	HasVoted     bool             `json:"has_voted"`
}

// QuestionFormResponse backs the add and edit pages.
type QuestionFormResponse struct {
	Question      *QuestionResponse `json:"question,omitempty"`
	MaxChoices    int               `json:"max_choices"`
	MaxTextLength int               `json:"max_text_length"`
}

type DeleteConfirmationResponse struct {
	Message  string            `json:"message"`
	Question *QuestionResponse `json:"question,omitempty"`
	Choice   *ChoiceResponse   `json:"choice,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// WasPublishedRecently is true for questions published within the last day and not in the future.
func WasPublishedRecently(pubDate, now time.Time) bool {
	return !pubDate.After(now) && !pubDate.Before(now.Add(-RecentWindow))
}

func TransformQuestionFromStorage(q *storage.Question, now time.Time) QuestionResponse {
	resp := QuestionResponse{
		ID:           q.ID,
		QuestionText: q.Text,
		PubDate:      q.PubDate,
		PublishedAgo: humanize.RelTime(q.PubDate, now, "ago", "from now"),
		Recent:       WasPublishedRecently(q.PubDate, now),
		TotalVotes:   q.TotalVotes(),
	}
	if q.User != nil {
		resp.Owner = q.User.Username
	}
	if len(q.Choices) > 0 {
		resp.Choices = make([]ChoiceResponse, 0, len(q.Choices))
		for _, c := range q.Choices {
			resp.Choices = append(resp.Choices, TransformChoiceFromStorage(c))
		}
	}
	return resp
}

func TransformQuestionDetail(d *services.QuestionDetail, now time.Time) QuestionResponse {
	resp := TransformQuestionFromStorage(d.Question, now)
	resp.HasVoted = d.HasVoted
	return resp
}

func TransformQuestionsFromStorage(questions []*storage.Question, now time.Time) []QuestionResponse {
	responses := make([]QuestionResponse, 0, len(questions))
	for _, q := range questions {
		responses = append(responses, TransformQuestionFromStorage(q, now))
	}
	return responses
}
