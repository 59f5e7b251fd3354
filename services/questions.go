package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alex-pricope/simple-polls/logging"
	"github.com/alex-pricope/simple-polls/storage"
)

// Policy holds the configurable poll limits.
type Policy struct {
	MaxChoices int
	IndexSize  int
}

func DefaultPolicy() Policy {
	return Policy{MaxChoices: 10, IndexSize: 5}
}

// QuestionDetail is a question with its choices and the caller's vote state.
type QuestionDetail struct {
	Question *storage.Question
	HasVoted bool
}

// QuestionService manages questions and their choices. Mutations are limited to the question owner.
type QuestionService struct {
	questions storage.QuestionStorage
	choices   storage.ChoiceStorage
	votes     storage.VoteStorage
	policy    Policy
	now       func() time.Time
}

func NewQuestionService(questions storage.QuestionStorage, choices storage.ChoiceStorage, votes storage.VoteStorage, policy Policy) *QuestionService {
	return &QuestionService{
		questions: questions,
		choices:   choices,
		votes:     votes,
		policy:    policy,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *QuestionService) Policy() Policy {
	return s.policy
}

// ListLatest returns the most recently published questions, newest first.
func (s *QuestionService) ListLatest(ctx context.Context, id Identity) ([]*storage.Question, error) {
	if err := requireIdentity(id); err != nil {
		return nil, err
	}
	return s.questions.Latest(ctx, s.now(), s.policy.IndexSize)
}

func (s *QuestionService) GetQuestion(ctx context.Context, id Identity, questionID uint) (*QuestionDetail, error) {
	if err := requireIdentity(id); err != nil {
		return nil, err
	}
	q, err := s.load(ctx, questionID)
	if err != nil {
		return nil, err
	}
	voted, err := s.votes.Exists(ctx, id.UserID, q.ID)
	if err != nil {
		return nil, err
	}
	return &QuestionDetail{Question: q, HasVoted: voted}, nil
}

// Results is the detail view with tallies; any authenticated user may see them.
func (s *QuestionService) Results(ctx context.Context, id Identity, questionID uint) (*QuestionDetail, error) {
	return s.GetQuestion(ctx, id, questionID)
}

func (s *QuestionService) CreateQuestion(ctx context.Context, id Identity, text string, choiceTexts []string) (*storage.Question, error) {
	if err := requireIdentity(id); err != nil {
		return nil, err
	}
	text, err := requireText("question_text", text)
	if err != nil {
		return nil, err
	}
	texts, err := cleanChoices(choiceTexts, s.policy.MaxChoices)
	if err != nil {
		return nil, err
	}

	owner := id.UserID
	q := &storage.Question{
		Text:    text,
		PubDate: s.now(),
		UserID:  &owner,
		Choices: s.buildChoices(id, texts),
	}
	if err := s.questions.Create(ctx, q); err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}
	logging.Log.Infof("POLLS: %s created question %d", id.Username, q.ID)
	// Reload so the owner is populated.
	return s.load(ctx, q.ID)
}

// EditQuestion replaces the text and the whole choice set. Existing choices,
// their tallies and the votes cast on them are discarded.
func (s *QuestionService) EditQuestion(ctx context.Context, id Identity, questionID uint, text string, choiceTexts []string) (*storage.Question, error) {
	if _, err := s.owned(ctx, id, questionID); err != nil {
		return nil, err
	}
	text, err := requireText("question_text", text)
	if err != nil {
		return nil, err
	}
	texts, err := cleanChoices(choiceTexts, s.policy.MaxChoices)
	if err != nil {
		return nil, err
	}

	q, err := s.questions.ReplaceChoices(ctx, questionID, text, s.buildChoices(id, texts))
	if err != nil {
		return nil, translate(err)
	}
	logging.Log.Infof("POLLS: %s edited question %d", id.Username, questionID)
	return q, nil
}

func (s *QuestionService) DeleteQuestion(ctx context.Context, id Identity, questionID uint) error {
	if _, err := s.owned(ctx, id, questionID); err != nil {
		return err
	}
	if err := s.questions.Delete(ctx, questionID); err != nil {
		return translate(err)
	}
	logging.Log.Infof("POLLS: %s deleted question %d", id.Username, questionID)
	return nil
}

// OwnedQuestion loads a question for an owner-only page (edit form, delete confirmation).
func (s *QuestionService) OwnedQuestion(ctx context.Context, id Identity, questionID uint) (*storage.Question, error) {
	return s.owned(ctx, id, questionID)
}

func (s *QuestionService) AddChoice(ctx context.Context, id Identity, questionID uint, text string) (*storage.Choice, error) {
	if _, err := s.owned(ctx, id, questionID); err != nil {
		return nil, err
	}
	text, err := requireText("choice_text", text)
	if err != nil {
		return nil, err
	}

	choice := &storage.Choice{QuestionID: questionID, Text: text, UserID: id.UserID}
	if err := s.choices.Create(ctx, choice, s.policy.MaxChoices); err != nil {
		if errors.Is(err, storage.ErrChoiceLimit) {
			return nil, invalid("choice_text", "a question can have at most %d choices", s.policy.MaxChoices)
		}
		return nil, fmt.Errorf("add choice: %w", err)
	}
	return choice, nil
}

// GetChoice returns a choice of a question the caller owns.
func (s *QuestionService) GetChoice(ctx context.Context, id Identity, choiceID uint) (*storage.Choice, error) {
	return s.ownedChoice(ctx, id, choiceID)
}

// EditChoice renames a choice; its tally is kept.
func (s *QuestionService) EditChoice(ctx context.Context, id Identity, choiceID uint, text string) (*storage.Choice, error) {
	choice, err := s.ownedChoice(ctx, id, choiceID)
	if err != nil {
		return nil, err
	}
	text, err = requireText("choice_text", text)
	if err != nil {
		return nil, err
	}
	if err := s.choices.UpdateText(ctx, choiceID, text); err != nil {
		return nil, fmt.Errorf("edit choice: %w", err)
	}
	choice.Text = text
	return choice, nil
}

func (s *QuestionService) DeleteChoice(ctx context.Context, id Identity, choiceID uint) (*storage.Choice, error) {
	choice, err := s.ownedChoice(ctx, id, choiceID)
	if err != nil {
		return nil, err
	}
	if err := s.choices.Delete(ctx, choiceID); err != nil {
		return nil, translate(err)
	}
	logging.Log.Infof("POLLS: %s deleted choice %d of question %d", id.Username, choiceID, choice.QuestionID)
	return choice, nil
}

func (s *QuestionService) buildChoices(id Identity, texts []string) []*storage.Choice {
	choices := make([]*storage.Choice, 0, len(texts))
	for _, t := range texts {
		choices = append(choices, &storage.Choice{Text: t, UserID: id.UserID})
	}
	return choices
}

func (s *QuestionService) load(ctx context.Context, questionID uint) (*storage.Question, error) {
	q, err := s.questions.Get(ctx, questionID)
	if err != nil {
		return nil, translate(err)
	}
	return q, nil
}

// owned authenticates the caller, loads the question and checks ownership, in that order.
func (s *QuestionService) owned(ctx context.Context, id Identity, questionID uint) (*storage.Question, error) {
	if err := requireIdentity(id); err != nil {
		return nil, err
	}
	q, err := s.load(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if !q.OwnedBy(id.UserID) {
		logging.Log.Warnf("POLLS: %s denied access to question %d", id.Username, questionID)
		return nil, ErrPermissionDenied
	}
	return q, nil
}

func (s *QuestionService) ownedChoice(ctx context.Context, id Identity, choiceID uint) (*storage.Choice, error) {
	if err := requireIdentity(id); err != nil {
		return nil, err
	}
	choice, err := s.choices.Get(ctx, choiceID)
	if err != nil {
		return nil, translate(err)
	}
	if _, err := s.owned(ctx, id, choice.QuestionID); err != nil {
		return nil, err
	}
	return choice, nil
}

// translate maps storage sentinels onto the service error taxonomy.
func translate(err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, storage.ErrDuplicateVote):
		return ErrAlreadyVoted
	default:
		return err
	}
}
