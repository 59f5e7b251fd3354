package services

import (
	"context"
	"strings"

	"github.com/alex-pricope/simple-polls/storage"
)

type SearchService struct {
	questions storage.QuestionStorage
}

func NewSearchService(questions storage.QuestionStorage) *SearchService {
	return &SearchService{questions: questions}
}

// Search finds questions whose text contains keyword, ignoring case.
func (s *SearchService) Search(ctx context.Context, id Identity, keyword string) ([]*storage.Question, error) {
	if err := requireIdentity(id); err != nil {
		return nil, err
	}
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return []*storage.Question{}, nil
	}
	return s.questions.Search(ctx, keyword)
}
