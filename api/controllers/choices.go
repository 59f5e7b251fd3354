package controllers

import (
	"github.com/alex-pricope/simple-polls/api/models"
	"github.com/alex-pricope/simple-polls/api/transport"
	"github.com/alex-pricope/simple-polls/services"
	"github.com/gin-gonic/gin"
	"net/http"
	"time"
)

type ChoiceController struct {
	questions *services.QuestionService
}

func NewChoiceController(questions *services.QuestionService) *ChoiceController {
	return &ChoiceController{questions: questions}
}

func (c *ChoiceController) RegisterRoutes(engine *gin.Engine, auth gin.HandlerFunc) {
	group := engine.Group("/polls", auth)

	group.GET("/:id/add_choice/", c.addForm)
	group.POST("/:id/add_choice/", c.add)
	group.GET("/choice/:id/edit/", c.editForm)
	group.POST("/choice/:id/edit/", c.edit)
	group.GET("/choice/:id/delete/", c.confirmDelete)
	group.POST("/choice/:id/delete/", c.delete)
}

// @Security SessionToken
// @Summary Add choice form
// @Tags choices
// @Produce json
// @Param id path int true "Question ID"
// @Success 200 {object} models.QuestionFormResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /polls/{id}/add_choice/ [get]
func (c *ChoiceController) addForm(g *gin.Context) {
	id, ok := pathID(g, "id")
	if !ok {
		return
	}
	q, err := c.questions.OwnedQuestion(g.Request.Context(), transport.CurrentIdentity(g), id)
	if err != nil {
		respondError(g, "CHOICE: failed to load question", err)
		return
	}
	resp := models.TransformQuestionFromStorage(q, time.Now().UTC())
	g.JSON(http.StatusOK, models.QuestionFormResponse{
		Question:      &resp,
		MaxChoices:    c.questions.Policy().MaxChoices,
		MaxTextLength: services.MaxTextLength,
	})
}

// @Security SessionToken
// @Summary Add a choice to a question
// @Tags choices
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param id path int true "Question ID"
// @Param choice body models.ChoiceRequest true "Choice text"
// @Success 201 {object} models.ChoiceResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /polls/{id}/add_choice/ [post]
func (c *ChoiceController) add(g *gin.Context) {
	id, ok := pathID(g, "id")
	if !ok {
		return
	}
	var req models.ChoiceRequest
	if err := g.ShouldBind(&req); err != nil {
		g.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request format"})
		return
	}
	choice, err := c.questions.AddChoice(g.Request.Context(), transport.CurrentIdentity(g), id, req.ChoiceText)
	if err != nil {
		respondError(g, "CHOICE: failed to add choice", err)
		return
	}
	g.JSON(http.StatusCreated, models.TransformChoiceFromStorage(choice))
}

// @Security SessionToken
// @Summary Edit choice form
// @Tags choices
// @Produce json
// @Param id path int true "Choice ID"
// @Success 200 {object} models.ChoiceResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /polls/choice/{id}/edit/ [get]
func (c *ChoiceController) editForm(g *gin.Context) {
	id, ok := pathID(g, "id")
	if !ok {
		return
	}
	choice, err := c.questions.GetChoice(g.Request.Context(), transport.CurrentIdentity(g), id)
	if err != nil {
		respondError(g, "CHOICE: failed to load choice", err)
		return
	}
	g.JSON(http.StatusOK, models.TransformChoiceFromStorage(choice))
}

// @Security SessionToken
// @Summary Rename a choice
// @Description The tally is kept
// @Tags choices
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param id path int true "Choice ID"
// @Param choice body models.ChoiceRequest true "Choice text"
// @Success 200 {object} models.ChoiceResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /polls/choice/{id}/edit/ [post]
func (c *ChoiceController) edit(g *gin.Context) {
	id, ok := pathID(g, "id")
	if !ok {
		return
	}
	var req models.ChoiceRequest
	if err := g.ShouldBind(&req); err != nil {
		g.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request format"})
		return
	}
	choice, err := c.questions.EditChoice(g.Request.Context(), transport.CurrentIdentity(g), id, req.ChoiceText)
	if err != nil {
		respondError(g, "CHOICE: failed to edit choice", err)
		return
	}
	g.JSON(http.StatusOK, models.TransformChoiceFromStorage(choice))
}

// @Security SessionToken
// @Summary Confirm choice deletion
// @Description Read-only; nothing is deleted
// @Tags choices
// @Produce json
// @Param id path int true "Choice ID"
// @Success 200 {object} models.DeleteConfirmationResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /polls/choice/{id}/delete/ [get]
func (c *ChoiceController) confirmDelete(g *gin.Context) {
	id, ok := pathID(g, "id")
	if !ok {
		return
	}
	choice, err := c.questions.GetChoice(g.Request.Context(), transport.CurrentIdentity(g), id)
	if err != nil {
		respondError(g, "CHOICE: failed to load choice", err)
		return
	}
	resp := models.TransformChoiceFromStorage(choice)
	g.JSON(http.StatusOK, models.DeleteConfirmationResponse{
		Message: "POST to this URL to delete the choice and the votes cast for it",
		Choice:  &resp,
	})
}

// @Security SessionToken
// @Summary Delete a choice
// @Tags choices
// @Produce json
// @Param id path int true "Choice ID"
// @Success 200 {object} models.MessageResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /polls/choice/{id}/delete/ [post]
func (c *ChoiceController) delete(g *gin.Context) {
	id, ok := pathID(g, "id")
	if !ok {
		return
	}
	if _, err := c.questions.DeleteChoice(g.Request.Context(), transport.CurrentIdentity(g), id); err != nil {
		respondError(g, "CHOICE: failed to delete choice", err)
		return
	}
	g.JSON(http.StatusOK, models.MessageResponse{Message: "choice deleted"})
}
