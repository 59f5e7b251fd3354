package controllers

import (
	"github.com/alex-pricope/simple-polls/api/models"
	"github.com/alex-pricope/simple-polls/api/transport"
	"github.com/alex-pricope/simple-polls/services"
	"github.com/gin-gonic/gin"
	"net/http"
	"time"
)

type SearchController struct {
	search *services.SearchService
}

func NewSearchController(search *services.SearchService) *SearchController {
	return &SearchController{search: search}
}

func (c *SearchController) RegisterRoutes(engine *gin.Engine, auth gin.HandlerFunc) {
	engine.GET("/polls/search/", auth, c.find)
}

// @Security SessionToken
// @Summary Search questions
// @Description Case-insensitive substring match on the question text
// @Tags polls
// @Produce json
// @Param keyword query string false "Text to look for"
// @Success 200 {array} models.QuestionResponse
// @Failure 401 {object} models.UnauthenticatedResponse
// @Router /polls/search/ [get]
func (c *SearchController) find(g *gin.Context) {
	questions, err := c.search.Search(g.Request.Context(), transport.CurrentIdentity(g), g.Query("keyword"))
	if err != nil {
		respondError(g, "SEARCH: failed to search", err)
		return
	}
	g.JSON(http.StatusOK, models.TransformQuestionsFromStorage(questions, time.Now().UTC()))
}
