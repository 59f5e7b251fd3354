package controllers

import (
	"github.com/alex-pricope/simple-polls/api/models"
	"github.com/alex-pricope/simple-polls/api/transport"
	"github.com/alex-pricope/simple-polls/services"
	"github.com/gin-gonic/gin"
	"net/http"
)

type VotingController struct {
	voting *services.VotingService
}

func NewVotingController(voting *services.VotingService) *VotingController {
	return &VotingController{voting: voting}
}

func (c *VotingController) RegisterRoutes(engine *gin.Engine, auth gin.HandlerFunc) {
	engine.POST("/polls/:id/vote/", auth, c.vote)
}

// vote godoc
// @Security SessionToken
// @Summary Cast a vote
// @Description One vote per user per question. On success the caller is sent to the results.
// @Tags voting
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param id path int true "Question ID"
// @Param vote body models.VoteRequest true "Selected choice"
// @Success 303 {object} models.VoteResponse "Vote counted"
// @Failure 400 {object} models.ErrorResponse "No choice selected"
// @Failure 401 {object} models.UnauthenticatedResponse
// @Failure 404 {object} models.ErrorResponse "Question or choice not found"
// @Failure 409 {object} models.ErrorResponse "Already voted"
// @Failure 500 {object} models.ErrorResponse "Unexpected internal error"
// @Router /polls/{id}/vote/ [post]
func (c *VotingController) vote(g *gin.Context) {
	id, ok := pathID(g, "id")
	if !ok {
		return
	}
	var req models.VoteRequest
	if err := g.ShouldBind(&req); err != nil {
		g.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request format", Field: "choice"})
		return
	}

	result, err := c.voting.CastVote(g.Request.Context(), transport.CurrentIdentity(g), id, req.Choice)
	if err != nil {
		respondError(g, "VOTE: failed to cast vote", err)
		return
	}

	location := resultsURL(result.QuestionID)
	g.Header("Location", location)
	g.JSON(http.StatusSeeOther, models.VoteResponse{
		QuestionID: result.QuestionID,
		ChoiceID:   result.ChoiceID,
		Votes:      result.Votes,
		ResultsURL: location,
	})
}
