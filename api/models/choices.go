package models

import "github.com/alex-pricope/simple-polls/storage"

type ChoiceRequest struct {
	ChoiceText string `json:"choice_text" form:"choice_text"`
}

type ChoiceResponse struct {
	ID         uint   `json:"id"`
	QuestionID uint   `json:"question_id"`
	ChoiceText string `json:"choice_text"`
	Votes      int    `json:"votes"`
}

type VoteRequest struct {
	Choice uint `json:"choice" form:"choice"`
}

type VoteResponse struct {
	QuestionID uint   `json:"question_id"`
	ChoiceID   uint   `json:"choice_id"`
	Votes      int    `json:"votes"`
	ResultsURL string `json:"results_url"`
}

func TransformChoiceFromStorage(c *storage.Choice) ChoiceResponse {
	return ChoiceResponse{
		ID:         c.ID,
		QuestionID: c.QuestionID,
		ChoiceText: c.Text,
		Votes:      c.Votes,
	}
}
