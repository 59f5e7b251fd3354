package controllers

import (
	"github.com/alex-pricope/simple-polls/api/models"
	"github.com/alex-pricope/simple-polls/api/transport"
	"github.com/alex-pricope/simple-polls/services"
	"github.com/gin-gonic/gin"
	"net/http"
	"time"
)

type QuestionController struct {
	questions *services.QuestionService
}

func NewQuestionController(questions *services.QuestionService) *QuestionController {
	return &QuestionController{questions: questions}
}

func (c *QuestionController) RegisterRoutes(engine *gin.Engine, auth gin.HandlerFunc) {
	group := engine.Group("/polls", auth)

	group.GET("/", c.index)
	group.GET("/:id/", c.detail)
	group.GET("/:id/results/", c.results)
	group.GET("/add/", c.addForm)
	group.POST("/add/", c.create)
	group.GET("/:id/edit/", c.editForm)
	group.POST("/:id/edit/", c.edit)
	group.GET("/:id/delete/", c.confirmDelete)
	group.POST("/:id/delete/", c.delete)
}

// @Security SessionToken
// @Summary Latest questions
// @Description The most recently published questions, newest first
// @Tags polls
// @Produce json
// @Success 200 {array} models.QuestionResponse
// @Failure 401 {object} models.UnauthenticatedResponse
// @Router /polls/ [get]
func (c *QuestionController) index(g *gin.Context) {
	questions, err := c.questions.ListLatest(g.Request.Context(), transport.CurrentIdentity(g))
	if err != nil {
		respondError(g, "POLLS: failed to list questions", err)
		return
	}
	g.JSON(http.StatusOK, models.TransformQuestionsFromStorage(questions, time.Now().UTC()))
}

// @Security SessionToken
// @Summary Question detail
// @Description Redirects to the results once the caller has voted
// @Tags polls
// @Produce json
// @Param id path int true "Question ID"
// @Success 200 {object} models.QuestionResponse
// @Success 303 "Already voted, see results"
// @Failure 401 {object} models.UnauthenticatedResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /polls/{id}/ [get]
func (c *QuestionController) detail(g *gin.Context) {
	id, ok := pathID(g, "id")
	if !ok {
		return
	}
	detail, err := c.questions.GetQuestion(g.Request.Context(), transport.CurrentIdentity(g), id)
	if err != nil {
		respondError(g, "POLLS: failed to load question", err)
		return
	}
	if detail.HasVoted {
		g.Redirect(http.StatusSeeOther, resultsURL(id))
		return
	}
	g.JSON(http.StatusOK, models.TransformQuestionDetail(detail, time.Now().UTC()))
}

// @Security SessionToken
// @Summary Question results
// @Tags polls
// @Produce json
// @Param id path int true "Question ID"
// @Success 200 {object} models.QuestionResponse
// @Failure 401 {object} models.UnauthenticatedResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /polls/{id}/results/ [get]
func (c *QuestionController) results(g *gin.Context) {
	id, ok := pathID(g, "id")
	if !ok {
		return
	}
	detail, err := c.questions.Results(g.Request.Context(), transport.CurrentIdentity(g), id)
	if err != nil {
		respondError(g, "POLLS: failed to load results", err)
		return
	}
	g.JSON(http.StatusOK, models.TransformQuestionDetail(detail, time.Now().UTC()))
}

// @Security SessionToken
// @Summary New question form
// @Tags polls
// @Produce json
// @Success 200 {object} models.QuestionFormResponse
// @Router /polls/add/ [get]
func (c *QuestionController) addForm(g *gin.Context) {
	g.JSON(http.StatusOK, c.form(nil))
}

// @Security SessionToken
// @Summary Create a question
// @Description Blank choices are ignored
// @Tags polls
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param question body models.QuestionRequest true "Question with choices"
// @Success 201 {object} models.QuestionResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.UnauthenticatedResponse
// @Router /polls/add/ [post]
func (c *QuestionController) create(g *gin.Context) {
	var req models.QuestionRequest
	if err := g.ShouldBind(&req); err != nil {
		g.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request format"})
		return
	}
	q, err := c.questions.CreateQuestion(g.Request.Context(), transport.CurrentIdentity(g), req.QuestionText, req.Choices)
	if err != nil {
		respondError(g, "POLLS: failed to create question", err)
		return
	}
	g.JSON(http.StatusCreated, models.TransformQuestionFromStorage(q, time.Now().UTC()))
}

// @Security SessionToken
// @Summary Edit question form
// @Tags polls
// @Produce json
// @Param id path int true "Question ID"
// @Success 200 {object} models.QuestionFormResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /polls/{id}/edit/ [get]
func (c *QuestionController) editForm(g *gin.Context) {
	id, ok := pathID(g, "id")
	if !ok {
		return
	}
	q, err := c.questions.OwnedQuestion(g.Request.Context(), transport.CurrentIdentity(g), id)
	if err != nil {
		respondError(g, "POLLS: failed to load question for edit", err)
		return
	}
	resp := models.TransformQuestionFromStorage(q, time.Now().UTC())
	g.JSON(http.StatusOK, c.form(&resp))
}

// @Security SessionToken
// @Summary Edit a question
// @Description Replaces the text and every choice. Existing tallies and votes are discarded.
// @Tags polls
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param id path int true "Question ID"
// @Param question body models.QuestionRequest true "New text and choices"
// @Success 200 {object} models.QuestionResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /polls/{id}/edit/ [post]
func (c *QuestionController) edit(g *gin.Context) {
	id, ok := pathID(g, "id")
	if !ok {
		return
	}
	var req models.QuestionRequest
	if err := g.ShouldBind(&req); err != nil {
		g.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request format"})
		return
	}
	q, err := c.questions.EditQuestion(g.Request.Context(), transport.CurrentIdentity(g), id, req.QuestionText, req.Choices)
	if err != nil {
		respondError(g, "POLLS: failed to edit question", err)
		return
	}
	g.JSON(http.StatusOK, models.TransformQuestionFromStorage(q, time.Now().UTC()))
}

// @Security SessionToken
// @Summary Confirm question deletion
// @Description Read-only; nothing is deleted
// @Tags polls
// @Produce json
// @Param id path int true "Question ID"
// @Success 200 {object} models.DeleteConfirmationResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /polls/{id}/delete/ [get]
func (c *QuestionController) confirmDelete(g *gin.Context) {
	id, ok := pathID(g, "id")
	if !ok {
		return
	}
	q, err := c.questions.OwnedQuestion(g.Request.Context(), transport.CurrentIdentity(g), id)
	if err != nil {
		respondError(g, "POLLS: failed to load question for delete", err)
		return
	}
	resp := models.TransformQuestionFromStorage(q, time.Now().UTC())
	g.JSON(http.StatusOK, models.DeleteConfirmationResponse{
		Message:  "POST to this URL to delete the question and all of its votes",
		Question: &resp,
	})
}

// @Security SessionToken
// @Summary Delete a question
// @Tags polls
// @Produce json
// @Param id path int true "Question ID"
// @Success 200 {object} models.MessageResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /polls/{id}/delete/ [post]
func (c *QuestionController) delete(g *gin.Context) {
	id, ok := pathID(g, "id")
	if !ok {
		return
	}
	if err := c.questions.DeleteQuestion(g.Request.Context(), transport.CurrentIdentity(g), id); err != nil {
		respondError(g, "POLLS: failed to delete question", err)
		return
	}
	g.JSON(http.StatusOK, models.MessageResponse{Message: "question deleted"})
}

func (c *QuestionController) form(q *models.QuestionResponse) models.QuestionFormResponse {
	return models.QuestionFormResponse{
		Question:      q,
		MaxChoices:    c.questions.Policy().MaxChoices,
		MaxTextLength: services.MaxTextLength,
	}
}
